package server

import (
	"errors"
	"strings"
)

// ErrEmptyPort reports a blank server port.
var ErrEmptyPort = errors.New("server port must not be empty")

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Validate checks the server configuration for obvious mistakes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return ErrEmptyPort
	}
	return nil
}
