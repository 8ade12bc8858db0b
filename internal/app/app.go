package app

import (
	"go.uber.org/fx"

	"github.com/sukab-restaurant/tableside/internal/cache"
	"github.com/sukab-restaurant/tableside/internal/config"
	"github.com/sukab-restaurant/tableside/internal/cooktime"
	"github.com/sukab-restaurant/tableside/internal/database"
	"github.com/sukab-restaurant/tableside/internal/logger"
	"github.com/sukab-restaurant/tableside/internal/messaging"
	"github.com/sukab-restaurant/tableside/internal/observability"
	repositorymenu "github.com/sukab-restaurant/tableside/internal/repository/menu"
	repositoryorder "github.com/sukab-restaurant/tableside/internal/repository/order"
	httpserver "github.com/sukab-restaurant/tableside/internal/server/http"
	serviceorder "github.com/sukab-restaurant/tableside/internal/service/order"
	transporthttp "github.com/sukab-restaurant/tableside/internal/transport/http"
	"github.com/sukab-restaurant/tableside/internal/worker"
	workerkitchen "github.com/sukab-restaurant/tableside/internal/worker/kitchen"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	logger.Module,
	database.Module,
	cache.Module,
	messaging.Module,
	observability.Module,
	cooktime.Module,
	repositoryorder.Module,
	repositorymenu.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes the kitchen feed consumer.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerkitchen.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
