// Package middleware groups the HTTP middleware used by the import
// service: rayid assigns per-request correlation IDs consumed by the
// logger, and auth enforces the configured API key.
package middleware
