package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-shipping-go/internal/config"
	"service-shipping-go/internal/gateway/shipper"
	"service-shipping-go/internal/http/handlers"
	"service-shipping-go/internal/http/router"
	"service-shipping-go/internal/logx"
	"service-shipping-go/internal/metrics"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithConfigLoader sets the config loading function
func (b *ContainerBuilder) WithConfigLoader(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// Build assembles the DI container: config, logger, provider gateway,
// handlers, router and the HTTP server. ctx bounds the app lifetime.
func (b *ContainerBuilder) Build(ctx context.Context) *dig.Container {
	c := dig.New()

	b.provide(c, func() context.Context { return ctx })
	b.provide(c, b.loadConfig)
	b.provide(c, NewLogger)
	b.provide(c, newShipperCounters)
	b.provide(c, newShipperClient)
	b.provide(c, func(gw *shipper.Client, logger logx.Logger) *handlers.Handlers {
		return handlers.New(gw, logger)
	})
	b.provide(c, router.New)
	b.provide(c, newHTTPServer)

	return c
}

func (b *ContainerBuilder) provide(c *dig.Container, constructor any) {
	if err := c.Provide(constructor); err != nil {
		b.logFatalf("di provide error: %v", err)
	}
}

type shipperCounters struct {
	Calls  prometheus.Counter
	Errors prometheus.Counter
}

func newShipperCounters() shipperCounters {
	return shipperCounters{
		Calls:  registerCounter(metrics.NewShipperCallsTotal()),
		Errors: registerCounter(metrics.NewShipperErrorsTotal()),
	}
}

// registerCounter registers cnt, reusing the existing collector when tests
// build several containers against the default registry.
func registerCounter(cnt prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(cnt); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return cnt
}

func newShipperClient(cfg *config.Config, logger logx.Logger, counters shipperCounters) *shipper.Client {
	return shipper.New(
		cfg.Shipper.APIKey,
		cfg.Shipper.BaseURL,
		cfg.Shipper.Sandbox,
		logger,
		shipper.WithHTTPClient(&http.Client{Timeout: cfg.Shipper.HTTPTimeout}),
		shipper.WithCallCounter(counters.Calls),
		shipper.WithErrorCounter(counters.Errors),
	)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
