package persistence

import "errors"

const (
	// MagicNumber identifies dimred model snapshots (ASCII: "DRM1").
	MagicNumber = 0x44524D31
	// Version is the current snapshot format version (v1.0.0).
	Version = 0x00010000
)

// Section identifiers. A snapshot carries any subset, each at most once.
const (
	SectionMeta      uint8 = 1 // method name + flags
	SectionTransform uint8 = 2 // preprocess.Transform record
	SectionBasis     uint8 = 3 // eigen.Basis record
	SectionEmbedding uint8 = 4 // training embedding matrix
)

var (
	ErrInvalidMagic     = errors.New("invalid magic number")
	ErrInvalidVersion   = errors.New("unsupported snapshot version")
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
)
