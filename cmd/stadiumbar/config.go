package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stadium-bar/venue/infra"

	"github.com/caarlos0/env/v11"
)

type config struct {
	Capacity         int           `env:"VENUE_CAPACITY" envDefault:"10"`
	Gate             string        `env:"VENUE_GATE" envDefault:"semaphore"`
	CloseProbability int           `env:"CLOSE_PROBABILITY" envDefault:"20"`
	CloseInterval    time.Duration `env:"CLOSE_INTERVAL" envDefault:"1500ms"`
	CleaningDuration time.Duration `env:"CLEANING_DURATION" envDefault:"3s"`
	ArrivalEvery     time.Duration `env:"ARRIVAL_EVERY" envDefault:"200ms"`
	ArrivalDelayMin  time.Duration `env:"ARRIVAL_DELAY_MIN" envDefault:"350ms"`
	ArrivalDelayMax  time.Duration `env:"ARRIVAL_DELAY_MAX" envDefault:"3s"`
	DwellMin         time.Duration `env:"DWELL_MIN" envDefault:"450ms"`
	DwellMax         time.Duration `env:"DWELL_MAX" envDefault:"1250ms"`
	Seed             uint64        `env:"VISITOR_SEED"`

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	StatusAddr string `env:"STATUS_ADDR"`

	StatsBuffer        int           `env:"STATS_BUFFER" envDefault:"1024"`
	StatsRedisAddr     string        `env:"STATS_REDIS_ADDR"`
	StatsRedisPassword string        `env:"STATS_REDIS_PASSWORD"`
	StatsRedisDB       int           `env:"STATS_REDIS_DB" envDefault:"0"`
	StatsPrefix        string        `env:"STATS_PREFIX" envDefault:"stadiumbar:stats"`
	StatsTTL           time.Duration `env:"STATS_TTL" envDefault:"24h"`
	StatsBucket        string        `env:"STATS_BUCKET" envDefault:"minute"`
}

func readConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Capacity <= 0 {
		return config{}, errors.New("VENUE_CAPACITY must be > 0")
	}
	if _, err := infra.GateConstructor(cfg.Gate); err != nil {
		return config{}, fmt.Errorf("VENUE_GATE: %w", err)
	}
	if cfg.CloseProbability < 0 || cfg.CloseProbability > 100 {
		return config{}, errors.New("CLOSE_PROBABILITY must be between 0 and 100")
	}
	if cfg.CloseInterval <= 0 {
		return config{}, errors.New("CLOSE_INTERVAL must be > 0")
	}
	if cfg.CleaningDuration < 0 {
		return config{}, errors.New("CLEANING_DURATION must be >= 0")
	}
	if cfg.ArrivalDelayMin < 0 || cfg.DwellMin < 0 {
		return config{}, errors.New("ARRIVAL_DELAY_MIN and DWELL_MIN must be >= 0")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.StatsBucket)) {
	case "minute", "none":
	default:
		return config{}, errors.New("STATS_BUCKET must be minute or none")
	}
	if _, err := cfg.level(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

func (c config) redisEnabled() bool { return strings.TrimSpace(c.StatsRedisAddr) != "" }
