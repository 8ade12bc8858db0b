package main

import (
	"go.uber.org/fx"

	"github.com/sukab-restaurant/tableside/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
