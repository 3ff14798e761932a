package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"leaderboard/domain"
)

// Config is the process-wide runtime configuration, assembled from the
// environment once at startup.
type Config struct {
	Addr           string
	AllowedOrigins []string
	SnapshotDir    string
	ReapPeriod     time.Duration
	Room           domain.Config
	Debug          bool
}

// Load reads every setting from the environment. ALLOWED_ORIGINS is
// required; everything else has a default matching the original
// deployment.
func Load() (Config, error) {
	origins, exists := os.LookupEnv("ALLOWED_ORIGINS")
	if !exists {
		return Config{}, fmt.Errorf("missing allowed origins")
	}

	cfg := Config{
		Addr:           envOr("ADDR", ":8081"),
		AllowedOrigins: strings.Split(origins, ","),
		SnapshotDir:    envOr("SNAPSHOT_DIR", "data"),
		ReapPeriod:     time.Second * 120,
		Room: domain.Config{
			PlayersPerRoom:   8,
			MaxBotsPerClient: 4,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	if period, err := envInt("REAP_PERIOD_SECONDS"); err != nil {
		return Config{}, err
	} else if period > 0 {
		cfg.ReapPeriod = time.Duration(period) * time.Second
	}

	if players, err := envInt("PLAYERS_PER_ROOM"); err != nil {
		return Config{}, err
	} else if players > 0 {
		cfg.Room.PlayersPerRoom = players
	}

	if bots, err := envInt("MAX_BOTS_PER_CLIENT"); err != nil {
		return Config{}, err
	} else if bots > 0 {
		cfg.Room.MaxBotsPerClient = bots
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func envInt(key string) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
