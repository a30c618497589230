// Package config provides configuration loading, merging, and validation
// for the remy-site server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. It fails when the session
// secret is shorter than [MinSessionSecretLength] bytes.
package config
