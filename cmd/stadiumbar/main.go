package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stadium-bar/venue"
	"stadium-bar/venue/application"
	"stadium-bar/venue/domain"
	"stadium-bar/venue/infra"

	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		newLogger(slog.LevelInfo).Error("config error", "err", err)
		os.Exit(1)
	}
	lvl, _ := cfg.level()
	logger := newLogger(lvl)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("simulation stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(lvl slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	}))
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	newGate, err := infra.GateConstructor(cfg.Gate)
	if err != nil {
		return err
	}
	bar, err := application.NewVenue(cfg.Capacity, newGate)
	if err != nil {
		return err
	}

	mem := infra.NewMemoryStatsStore()
	stores := []domain.StatsStore{mem}
	if cfg.redisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.StatsRedisAddr,
			Password: cfg.StatsRedisPassword,
			DB:       cfg.StatsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			return fmt.Errorf("redis stats ping: %w", err)
		}

		stores = append(stores, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.StatsPrefix),
			infra.WithStatsTTL(cfg.StatsTTL),
			infra.WithStatsBucket(cfg.StatsBucket),
		))
	}

	recorder := venue.NewAsyncRecorder(fanout(stores), cfg.StatsBuffer, venue.WithRecorderLogger(logger))
	bar.Subscribe(venue.LogSubscriber(logger))
	bar.Subscribe(recorder.Subscriber())

	trigger, err := application.NewClosureTrigger(bar, cfg.CloseProbability,
		application.WithInterval(cfg.CloseInterval),
		application.WithCleaning(cfg.CleaningDuration),
	)
	if err != nil {
		return err
	}

	sourceOpts := []infra.VisitorSourceOption{
		infra.WithArrivalDelay(cfg.ArrivalDelayMin, cfg.ArrivalDelayMax),
		infra.WithDwell(cfg.DwellMin, cfg.DwellMax),
	}
	if cfg.Seed != 0 {
		sourceOpts = append(sourceOpts, infra.WithSeed(cfg.Seed))
	}
	driver := application.NewArrivalDriver(bar, infra.NewRandomVisitorSource(sourceOpts...),
		application.WithArrivalEvery(cfg.ArrivalEvery),
	)

	recDone := make(chan error, 1)
	go func() { recDone <- recorder.Run(context.Background()) }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreCanceled(driver.Run(gctx)) })
	g.Go(func() error { return ignoreCanceled(trigger.Run(gctx)) })

	if cfg.StatusAddr != "" {
		srv := &http.Server{
			Addr:              cfg.StatusAddr,
			Handler:           venue.StatusHandler(bar, mem),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
		}
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		g.Go(func() error {
			logger.Info("status listening", "addr", cfg.StatusAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server: %w", err)
			}
			return nil
		})
	}

	logger.Info("bar open",
		"capacity", cfg.Capacity,
		"gate", cfg.Gate,
		"close_probability", cfg.CloseProbability,
		"close_interval", cfg.CloseInterval,
		"cleaning", cfg.CleaningDuration,
		"arrival_every", cfg.ArrivalEvery,
		"redis_stats", cfg.redisEnabled(),
	)

	err = g.Wait()

	// torcedores já dentro terminam a permanência antes de fechar as estatísticas.
	driver.Wait()
	recorder.Close()
	<-recDone

	c := driver.Counters()
	total := mem.Total()
	logger.Info("simulation finished",
		"admitted", c.Admitted,
		"denied", c.Denied,
		"canceled", c.Canceled,
		"closures", trigger.Cycles(),
		"peak_occupancy", mem.PeakOccupancy(),
		"events_entered", total.Entered,
		"stats_dropped", recorder.Dropped(),
		"stats_failed", recorder.Failed(),
	)
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// fanout grava o evento em todos os stores.
type fanout []domain.StatsStore

func (f fanout) Record(ctx context.Context, ev domain.Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
