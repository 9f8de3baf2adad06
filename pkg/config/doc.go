// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (reading .env files) and
// github.com/caarlos0/env/v11 (parsing `env` struct tags). Load caches each
// configuration type after the first successful parse; Parse always reads
// fresh values and supports a variable-name prefix.
//
// # Usage
//
//	var cfg graph.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client := graph.NewFromConfig(cfg)
//
//	// Two applications side by side: STAGING_GRAPH_APP_ID, STAGING_GRAPH_APP_SECRET, ...
//	staging, err := config.Parse[sessioncookie.Config]("STAGING_")
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig together with the underlying env error
// (for example a missing required variable). Load rejects non-struct types
// with ErrInvalidConfigType.
package config
