package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeArchiver runs the callback delivery archiver.
	ServiceModeArchiver ServiceMode = "archiver"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeArchiver,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeArchiver:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, archiver)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// ArchiverConfig contains callback delivery archiver configuration.
type ArchiverConfig struct {
	// Interval is the archiver tick interval.
	Interval time.Duration `env:"ARCHIVER_INTERVAL" envDefault:"1h"`

	// Retention is the age past which callback deliveries are moved to the
	// archive store and removed from the database.
	Retention time.Duration `env:"ARCHIVER_RETENTION" envDefault:"2160h"` // 90 days

	// BatchSize is the maximum number of rows to archive per tick.
	// Batching prevents long locks and I/O spikes on large tables.
	BatchSize int `env:"ARCHIVER_BATCH_SIZE" envDefault:"500"`

	// Store selects the archive backend: "s3" or "memory".
	// The memory driver exists for development and tests.
	Store string `env:"ARCHIVER_STORE" envDefault:"s3"`

	// S3Bucket is the destination bucket when Store is "s3".
	S3Bucket string `env:"ARCHIVER_S3_BUCKET"`

	// S3Prefix is prepended to every archive object key.
	S3Prefix string `env:"ARCHIVER_S3_PREFIX" envDefault:"callbacks/"`
}

// Sanitize applies guardrails to archiver configuration values.
func (a *ArchiverConfig) Sanitize() {
	// Enforce minimum intervals to prevent excessive database load
	if a.Interval < 1*time.Minute {
		a.Interval = 1 * time.Minute
	}
	if a.Retention < 24*time.Hour {
		a.Retention = 24 * time.Hour
	}

	// Enforce batch size bounds to prevent excessive locks or inefficiency
	if a.BatchSize < 1 {
		a.BatchSize = 1
	}
	if a.BatchSize > 10000 {
		a.BatchSize = 10000
	}

	a.Store = strings.ToLower(strings.TrimSpace(a.Store))
	if a.Store == "" {
		a.Store = "s3"
	}
}
