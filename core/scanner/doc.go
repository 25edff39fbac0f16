// Package scanner walks an import source directory and groups its
// files into per-item batches for the reconciliation core.
//
// The naming convention pairs each content file with an optional
// metadata sidecar and an optional numeric version suffix; grouping
// is purely by name, so the entries of one item may arrive in any
// order and the fold downstream reassembles them.
package scanner
