package platform

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/museflow/call-links/internal/calls"
	"github.com/museflow/call-links/internal/web"
	"github.com/museflow/call-links/pkg/bus"
	"github.com/museflow/call-links/pkg/config"
	"github.com/museflow/call-links/pkg/httpserver"
	"github.com/museflow/call-links/pkg/logging"
	"github.com/museflow/call-links/pkg/observability"
)

const metricsNamespace = "calllinks"

// RunCallService loads configuration, connects optional dependencies and serves
// the call-link API until SIGINT or SIGTERM.
func RunCallService(serviceName string) error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.AppName, cfg.ServiceName, cfg.Env, cfg.LogLevel)
	for _, warning := range cfg.Warnings() {
		logger.Warn().Msg(warning)
	}

	var publisher bus.Publisher
	if cfg.NATSURL != "" {
		nc, err := bus.Connect(cfg.NATSURL, cfg.AppName+"-"+cfg.ServiceName, logger)
		if err != nil {
			return err
		}
		defer nc.Close()
		publisher = nc
		logger.Info().Str("url", cfg.NATSURL).Msg("publishing call events")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics(metricsNamespace, cfg.ServiceName)
	handler := NewHandler(cfg, logger, metrics, publisher)
	return httpserver.Run(ctx, logger, cfg.HTTPPort, handler, cfg.ShutdownTimeout)
}

// NewHandler assembles the HTTP surface: diagnostics, the call API and the form.
func NewHandler(cfg config.Config, logger zerolog.Logger, metrics *observability.Metrics, publisher bus.Publisher) http.Handler {
	rooms := calls.NewDailyClient(cfg.DailyAPIURL, cfg.DailyAPIKey, cfg.ProviderTimeout)
	svc := calls.NewService(rooms, publisher, calls.Settings{
		ManagerPass: cfg.ManagerPass,
		Domain:      cfg.DailyDomain,
	}, logger, metrics)

	r := httpserver.NewRouter(logger, metrics)
	calls.NewHandler(svc, logger).Register(r)
	r.Handle("/*", web.Handler())
	return r
}
