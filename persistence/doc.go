// Package persistence defines the binary snapshot format for fitted models,
// so a transform and basis fitted in one process can serve out-of-sample
// prediction in another.
//
// A snapshot is a fixed header (magic, version, compression codec) followed
// by length-prefixed sections and a trailing CRC32 over everything before
// it. Section payloads may be LZ4 or ZSTD block compressed.
package persistence
