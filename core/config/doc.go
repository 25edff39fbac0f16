// Package config assembles the application configuration from
// environment variables and an optional .env file.
//
// Defaults come from 'default' struct tags on the per-package Config
// structs; a reflective binder registers every key with Viper so
// AutomaticEnv picks up overrides such as SERVER_PORT or SOURCE_DIR.
package config
