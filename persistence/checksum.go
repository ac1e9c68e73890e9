package persistence

import (
	"hash"
	"hash/crc32"
	"io"
)

// CRC32 (IEEE) guards snapshots against accidental corruption. It is not a
// tamper-detection mechanism.

var crcTable = crc32.MakeTable(crc32.IEEE)

// Checksum computes the CRC32 checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}

// ChecksumWriter wraps an io.Writer and keeps a running CRC32 of all bytes
// written through it.
type ChecksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

// NewChecksumWriter creates a checksumming writer.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w, hash: crc32.New(crcTable)}
}

// Write implements io.Writer.
func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		_, _ = cw.hash.Write(p[:n])
	}
	return n, err
}

// Sum returns the checksum of everything written so far.
func (cw *ChecksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}
