// Package codec converts between wire formats and value.Value.
//
// Decoders preserve the source order of object fields; that order is what
// the sorter normalizes. Encoders write fields in stored order.
//
// Supported formats: JSON, YAML and MessagePack in both directions, CUE
// for input only.
package codec
