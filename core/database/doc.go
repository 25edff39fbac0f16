// Package database manages the connection to the target repository's
// node index database.
//
// It supports mysql for production deployments and sqlite (including
// in-memory) for local runs and tests, selected via Config.Driver.
// The inspector exposes table column definitions so the repository
// layer can verify its schema before an import run.
package database
