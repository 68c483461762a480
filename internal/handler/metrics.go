package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// NewMetricsHandler exposes the Prometheus registry at GET /metrics by
// adapting promhttp's net/http handler onto fasthttp.
func NewMetricsHandler() fiber.Handler {
	adapted := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		adapted(c.RequestCtx())
		return nil
	}
}
