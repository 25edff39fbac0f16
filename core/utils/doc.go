// Package utils provides loose-type conversion helpers.
//
// Metadata sidecar files carry loosely typed scalar values (JSON
// numbers, quoted booleans, byte slices), and these helpers normalize
// them without panicking on unexpected shapes.
package utils
