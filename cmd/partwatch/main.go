package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stavrou/partwatch/internal/config"
	"github.com/stavrou/partwatch/internal/kafka"
	"github.com/stavrou/partwatch/internal/monitor"
	"github.com/stavrou/partwatch/internal/routes"
	"github.com/stavrou/partwatch/internal/tracing"
)

func main() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("instance_id", uuid.NewString()).
		Logger()

	cfg, err := config.Load(os.Getenv("PARTWATCH_CONFIG"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	level, err := cfg.ParseLogLevel()
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to info log level")
	}
	logger = logger.Level(level)

	shutdownTracer := tracing.InitTracer()
	defer shutdownTracer(context.Background())

	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Version = sarama.V2_8_0_0
	if cfg.KafkaVersion != "" {
		version, err := sarama.ParseKafkaVersion(cfg.KafkaVersion)
		if err != nil {
			logger.Fatal().Err(err).Str("version", cfg.KafkaVersion).Msg("invalid kafka version")
		}
		saramaCfg.Version = version
	}

	admin, err := kafka.NewAdmin(cfg.Brokers, saramaCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect admin client")
	}

	// Downstream the signal would drive task redistribution; here the
	// boundary is a log line plus the reconfigurations counter bumped by
	// the monitor itself.
	onChange := func() {
		logger.Info().Msg("topology changed, downstream reconfiguration requested")
	}

	mon, err := monitor.New(cfg.Monitor, admin, onChange, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build partition monitor")
	}
	if err := mon.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start partition monitor")
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: routes.NewMux(mon, logger),
	}
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("signal received, shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Monitor.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown")
	}
	mon.Shutdown()
}
