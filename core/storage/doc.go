// Package storage provides the object storage client backing the
// target repository's content store.
//
// The Client interface wraps the subset of Minio operations the
// importer needs, so tests can substitute a mock (see the mocks
// subpackage) without a running storage service.
package storage
