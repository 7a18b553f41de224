package main

import (
	"context"

	"plek/config"
	"plek/di"
	"plek/shared/logger"
)

// @title       Plek API
// @version     1.0
// @description Booking reservation and payment settlement service.
// @BasePath    /v1

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Dispatcher.Run(ctx)

	app.HTTP.Serve()
}
