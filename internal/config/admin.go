// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AdminConfig is the configuration of the admin bootstrap command.
type AdminConfig struct {
	// DB falls back to STORAGE_DB_DATABASE_URI when -d is not given.
	DB       DB `envPrefix:"STORAGE_DB_"`
	Name     string
	Password string
}

// GetAdminConfig parses the admin command line:
//
//	-d database DSN
//	-name account name
//	-password account password, needed only when the account is created
func GetAdminConfig(args []string) (*AdminConfig, error) {
	cfg := &AdminConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	fs := flag.NewFlagSet("remy-admin", flag.ContinueOnError)
	dsn := fs.String("d", "", "Database DSN")
	fs.StringVar(&cfg.Name, "name", "", "Account name")
	fs.StringVar(&cfg.Password, "password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if *dsn != "" {
		cfg.DB.DSN = *dsn
	}

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: -name is required", ErrInvalidAppConfigs)
	}

	return cfg, nil
}
