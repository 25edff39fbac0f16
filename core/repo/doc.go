// Package repo models the target content repository: a node index in
// a relational database plus a content store in object storage.
//
// The import core consumes two narrow boundaries from here. Resolver
// answers non-creating path lookups (an absent result means a child
// item arrived before its parent folder), and ContentWriter streams a
// version's content into the store with advisory MIME type and
// encoding guessing.
//
// Repository is the gorm-backed Store implementation; ObjectWriter is
// the Minio-backed ContentWriter. CachedResolver layers a
// singleflight-guarded memoization over any Resolver for the duration
// of one import run.
package repo
