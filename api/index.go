package handler

import (
	"context"
	"net/http"
	"sync"

	"plek/config"
	"plek/di"
	"plek/shared/logger"
)

var (
	once sync.Once
	app  *di.Application
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		app = di.InitializeService()

		go app.Dispatcher.Run(context.Background())
	})

	app.HTTP.Handler().ServeHTTP(w, r)
}
