package persistence

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block codec applied to section payloads.
type Compression uint8

const (
	// CompressionNone stores sections uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 is fast with a modest ratio.
	CompressionLZ4 Compression = 1
	// CompressionZSTD trades speed for a better ratio.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

func (c Compression) valid() bool { return c <= CompressionZSTD }

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compressBlock compresses src with the codec. For CompressionNone (or when
// compression does not shrink the payload) it returns src and false.
func compressBlock(src []byte, codec Compression) ([]byte, bool) {
	switch codec {
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(src)))
		var c lz4.Compressor
		n, err := c.CompressBlock(src, dst)
		if err != nil || n == 0 || n >= len(src) {
			return src, false
		}
		return dst[:n], true
	case CompressionZSTD:
		enc := getZstdEncoder()
		dst := enc.EncodeAll(src, nil)
		zstdEncoderPool.Put(enc)
		if len(dst) >= len(src) {
			return src, false
		}
		return dst, true
	default:
		return src, false
	}
}

// decompressBlock reverses compressBlock given the uncompressed size.
func decompressBlock(src []byte, codec Compression, uncompressedSize int) ([]byte, error) {
	switch codec {
	case CompressionLZ4:
		dst := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorruptSnapshot, err)
		}
		if n != uncompressedSize {
			return nil, fmt.Errorf("%w: lz4 size mismatch", ErrCorruptSnapshot)
		}
		return dst, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		dst, err := dec.DecodeAll(src, nil)
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorruptSnapshot, err)
		}
		if len(dst) != uncompressedSize {
			return nil, fmt.Errorf("%w: zstd size mismatch", ErrCorruptSnapshot)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression codec %d", ErrCorruptSnapshot, uint8(codec))
	}
}
