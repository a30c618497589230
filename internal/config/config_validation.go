// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// MinSessionSecretLength is the shortest HMAC key accepted for session tokens.
const MinSessionSecretLength = 32

const (
	defaultLogLevel       = "debug"
	defaultObjectsRegion  = "auto"
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills optional fields that were left empty by every source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = defaultLogLevel
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.Objects.Enabled() && cfg.Storage.Objects.Region == "" {
		cfg.Storage.Objects.Region = defaultObjectsRegion
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A missing or short session secret is reported as [ErrInvalidAppConfigs];
// the server must refuse to start rather than sign tokens with a weak key.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("%w: session secret must be at least %d bytes", ErrInvalidAppConfigs, MinSessionSecretLength)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	objects := cfg.Storage.Objects
	if objects.Enabled() {
		if objects.Endpoint == "" || objects.AccessKeyID == "" || objects.SecretAccessKey == "" || objects.PublicBaseURL == "" {
			return fmt.Errorf("%w: bucket %q is set but endpoint, credentials or public base url are missing",
				ErrInvalidObjectStorageConfigs, objects.Bucket)
		}
	}

	return nil
}
