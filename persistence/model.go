package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/preprocess"
)

// ModelRecord is the persisted form of a fitted model. Transform, Basis and
// Embedding are each optional; Method names the reduction that produced it.
type ModelRecord struct {
	Method    string
	Transform *preprocess.Transform
	Basis     *eigen.Basis
	Embedding *mat.Dense
}

type encodeOptions struct {
	compression Compression
}

// EncodeOption configures EncodeModel.
type EncodeOption func(*encodeOptions)

// WithCompression selects the section codec (default CompressionNone).
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = c
	}
}

// EncodeModel writes rec as a snapshot:
// [magic:u32][version:u32][codec:u8][sections:u8][pad:u16] section* [crc:u32]
// with each section laid out as [id:u8][uncompLen:u32][compLen:u32][payload]
// (compLen 0 means the payload is stored raw). All integers little-endian.
func EncodeModel(w io.Writer, rec *ModelRecord, opts ...EncodeOption) error {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.compression.valid() {
		return fmt.Errorf("unknown compression codec %d", uint8(o.compression))
	}
	if rec == nil {
		return fmt.Errorf("nil model record")
	}

	type section struct {
		id      uint8
		payload []byte
	}
	sections := []section{{SectionMeta, encodeMeta(rec.Method)}}
	if rec.Transform != nil {
		payload, err := rec.Transform.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode transform: %w", err)
		}
		sections = append(sections, section{SectionTransform, payload})
	}
	if rec.Basis != nil {
		payload, err := rec.Basis.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode basis: %w", err)
		}
		sections = append(sections, section{SectionBasis, payload})
	}
	if rec.Embedding != nil {
		sections = append(sections, section{SectionEmbedding, encodeMatrix(rec.Embedding)})
	}

	cw := NewChecksumWriter(w)
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], MagicNumber)
	binary.LittleEndian.PutUint32(header[4:8], Version)
	header[8] = uint8(o.compression)
	header[9] = uint8(len(sections))
	if _, err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range sections {
		compressed, didCompress := compressBlock(s.payload, o.compression)
		sh := make([]byte, 9)
		sh[0] = s.id
		binary.LittleEndian.PutUint32(sh[1:5], uint32(len(s.payload)))
		if didCompress {
			binary.LittleEndian.PutUint32(sh[5:9], uint32(len(compressed)))
		}
		if _, err := cw.Write(sh); err != nil {
			return err
		}
		if _, err := cw.Write(compressed); err != nil {
			return err
		}
	}

	trailer := make([]byte, 4)
	binary.LittleEndian.PutUint32(trailer, cw.Sum())
	_, err := w.Write(trailer)
	return err
}

// DecodeModel reads a snapshot written by EncodeModel, verifying magic,
// version and checksum before any section is parsed.
func DecodeModel(r io.Reader) (*ModelRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, ErrCorruptSnapshot
	}

	body, trailer := data[:len(data)-4], data[len(data)-4:]
	if Checksum(body) != binary.LittleEndian.Uint32(trailer) {
		return nil, ErrChecksumMismatch
	}
	if binary.LittleEndian.Uint32(body[0:4]) != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if binary.LittleEndian.Uint32(body[4:8]) != Version {
		return nil, ErrInvalidVersion
	}
	codec := Compression(body[8])
	count := int(body[9])

	rec := &ModelRecord{}
	rest := body[12:]
	for s := 0; s < count; s++ {
		if len(rest) < 9 {
			return nil, ErrCorruptSnapshot
		}
		id := rest[0]
		uncompLen := int(binary.LittleEndian.Uint32(rest[1:5]))
		compLen := int(binary.LittleEndian.Uint32(rest[5:9]))
		rest = rest[9:]

		stored := uncompLen
		if compLen > 0 {
			stored = compLen
		}
		if len(rest) < stored {
			return nil, ErrCorruptSnapshot
		}
		payload := rest[:stored]
		rest = rest[stored:]

		if compLen > 0 {
			payload, err = decompressBlock(payload, codec, uncompLen)
			if err != nil {
				return nil, err
			}
		}

		switch id {
		case SectionMeta:
			rec.Method, err = decodeMeta(payload)
		case SectionTransform:
			rec.Transform = &preprocess.Transform{}
			err = rec.Transform.UnmarshalBinary(payload)
		case SectionBasis:
			rec.Basis = &eigen.Basis{}
			err = rec.Basis.UnmarshalBinary(payload)
		case SectionEmbedding:
			rec.Embedding, err = decodeMatrix(payload)
		default:
			err = fmt.Errorf("%w: unknown section %d", ErrCorruptSnapshot, id)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: section %d: %w", ErrCorruptSnapshot, id, err)
		}
	}
	if len(rest) != 0 {
		return nil, ErrCorruptSnapshot
	}
	return rec, nil
}

func encodeMeta(method string) []byte {
	b := make([]byte, 0, 2+len(method))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(method)))
	return append(b, method...)
}

func decodeMeta(b []byte) (string, error) {
	if len(b) < 2 {
		return "", fmt.Errorf("meta section too short")
	}
	n := int(binary.LittleEndian.Uint16(b[0:2]))
	if len(b) != 2+n {
		return "", fmt.Errorf("meta section truncated")
	}
	return string(b[2 : 2+n]), nil
}

func encodeMatrix(m *mat.Dense) []byte {
	r, c := m.Dims()
	b := make([]byte, 0, 8+8*r*c)
	b = binary.LittleEndian.AppendUint32(b, uint32(r))
	b = binary.LittleEndian.AppendUint32(b, uint32(c))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			b = binary.LittleEndian.AppendUint64(b, math.Float64bits(m.At(i, j)))
		}
	}
	return b
}

func decodeMatrix(b []byte) (*mat.Dense, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("matrix section too short")
	}
	r := int(binary.LittleEndian.Uint32(b[0:4]))
	c := int(binary.LittleEndian.Uint32(b[4:8]))
	if r < 1 || c < 1 || len(b) != 8+8*r*c {
		return nil, fmt.Errorf("matrix section has invalid dimensions")
	}
	raw := make([]float64, r*c)
	for i := range raw {
		raw[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8+8*i:]))
	}
	return mat.NewDense(r, c, raw), nil
}
