// Package bulkimport exposes the bulk filesystem import job: an HTTP
// surface to initiate, stop and inspect a run, and the service that
// scans the source directory and streams each item's version history
// into the repository.
package bulkimport
