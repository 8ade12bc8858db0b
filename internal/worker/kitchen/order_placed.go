// Package kitchen consumes the order event feed and surfaces new orders to
// the kitchen display.
package kitchen

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sukab-restaurant/tableside/internal/config"
	"github.com/sukab-restaurant/tableside/internal/messaging"
	ordersvc "github.com/sukab-restaurant/tableside/internal/service/order"
	"github.com/sukab-restaurant/tableside/internal/worker"
)

var workerTracer = otel.Tracer("github.com/sukab-restaurant/tableside/worker/kitchen")

// Module registers the kitchen feed handler.
var Module = fx.Module("worker_kitchen",
	fx.Provide(
		fx.Annotate(
			NewOrderPlacedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderPlacedHandler builds the handler that announces placed orders to
// the kitchen.
func NewOrderPlacedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "kitchen.orderPlaced", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderPlacedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order placed event", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		logger.Info("order sent to kitchen",
			zap.Int64("order_id", event.OrderID),
			zap.Int("table_number", event.TableNumber),
			zap.String("menu_name", event.MenuName),
			zap.Int("cook_time", event.CookTime),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
