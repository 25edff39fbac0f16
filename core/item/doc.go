// Package item reconciles flat batches of source files into logical,
// version-ordered import items.
//
// A logical item is a name plus an ordered set of versions. The
// source scanner delivers raw file entries (content files and
// metadata sidecars tagged with a version label) in arbitrary order;
// New folds them into one Item, collapsing entries that share a
// label into a single Version with both slots filled.
//
// Version numbers compare as exact decimals, so "1.10" sorts after
// "1.9". The entry without a label is the unversioned head and always
// sorts last.
//
// Construction is single-threaded per item. Afterwards an Item is
// read-only and safe for concurrent readers; the only guarded state
// is each Version's memoized metadata load.
package item
