// Package config loads the environment-driven settings of spec.md §6 using
// viper, the same binding-plus-SetDefault idiom the pack's other viper-based
// config loaders use (Chaksack-apm, elchinoo-stormdb, lookatitude-beluga-ai,
// kdeps-kdeps). Only this package and examples/ read the environment;
// internal/dispatch, internal/breaker and internal/retry always take their
// settings as constructor parameters.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ORMMode selects which repository implementation the application wires up.
type ORMMode string

const (
	ORMPrimary   ORMMode = "primary"
	ORMSecondary ORMMode = "secondary"
	ORMDual      ORMMode = "dual"
)

// Config is the fully resolved, typed configuration spec.md §6 describes.
type Config struct {
	ORM ORMMode

	DatabaseURL string

	MongoURI    string
	MongoDBName string

	FailureThreshold    uint32
	RecoveryTimeoutSec  int
	RetryMaxAttempts    int
	RetryBaseDelaySec   float64
	ParallelTimeoutSec  float64
	PingTimeoutSec      float64
}

// RecoveryTimeout returns RecoveryTimeoutSec as a time.Duration.
func (c Config) RecoveryTimeout() time.Duration {
	return time.Duration(c.RecoveryTimeoutSec) * time.Second
}

// RetryBaseDelay returns RetryBaseDelaySec as a time.Duration.
func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelaySec * float64(time.Second))
}

// ParallelTimeout returns ParallelTimeoutSec as a time.Duration.
func (c Config) ParallelTimeout() time.Duration {
	return time.Duration(c.ParallelTimeoutSec * float64(time.Second))
}

// PingTimeout returns PingTimeoutSec as a time.Duration.
func (c Config) PingTimeout() time.Duration {
	return time.Duration(c.PingTimeoutSec * float64(time.Second))
}

// Load reads the process environment into a Config, applying spec.md §3's
// defaults for every tunable that is unset.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.SetDefault("orm", string(ORMDual))
	v.SetDefault("database_url", "")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_db_name", "")
	v.SetDefault("cb_failure_threshold", 3)
	v.SetDefault("cb_recovery_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 2)
	v.SetDefault("retry_base_delay_sec", 0.5)
	v.SetDefault("parallel_timeout_sec", 10.0)
	v.SetDefault("ping_timeout_sec", 3.0)

	for _, key := range []string{
		"orm", "database_url", "mongo_uri", "mongo_db_name",
		"cb_failure_threshold", "cb_recovery_timeout_sec",
		"retry_max_attempts", "retry_base_delay_sec",
		"parallel_timeout_sec", "ping_timeout_sec",
	} {
		_ = v.BindEnv(key)
	}

	orm := ORMMode(v.GetString("orm"))
	switch orm {
	case ORMPrimary, ORMSecondary, ORMDual:
	default:
		return Config{}, fmt.Errorf("config: invalid ORM %q, want primary|secondary|dual", orm)
	}

	return Config{
		ORM:                orm,
		DatabaseURL:        v.GetString("database_url"),
		MongoURI:           v.GetString("mongo_uri"),
		MongoDBName:        v.GetString("mongo_db_name"),
		FailureThreshold:   uint32(v.GetInt("cb_failure_threshold")),
		RecoveryTimeoutSec: v.GetInt("cb_recovery_timeout_sec"),
		RetryMaxAttempts:   v.GetInt("retry_max_attempts"),
		RetryBaseDelaySec:  v.GetFloat64("retry_base_delay_sec"),
		ParallelTimeoutSec: v.GetFloat64("parallel_timeout_sec"),
		PingTimeoutSec:     v.GetFloat64("ping_timeout_sec"),
	}, nil
}
