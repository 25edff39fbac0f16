// Package metadata defines the metadata record produced from sidecar
// files and the loader boundary that parses them.
//
// The reconciliation core treats loaders as opaque: it calls Load at
// most once per item version and propagates parse failures unchanged.
// JSONLoader is the shipped implementation for *.metadata.json
// sidecars.
package metadata
