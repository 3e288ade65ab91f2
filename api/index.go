// Package handler is the serverless entrypoint. The dependency graph is built
// on the first request and reused by warm invocations.
package handler

import (
	"net/http"
	"sync"

	"rentopia/config"
	"rentopia/di"
	"rentopia/shared/logger"
	httpTransport "rentopia/transport/http"
)

var (
	once    sync.Once
	service *httpTransport.HTTP
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
