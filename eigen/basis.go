package eigen

import (
	"encoding/binary"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Basis is a p x d projection basis selected from a generalized
// eigenproblem. It is immutable after Solve.
type Basis struct {
	vectors *mat.Dense
	values  []float64
}

// Dims returns the input width p and the target dimension d.
func (b *Basis) Dims() (p, d int) {
	return b.vectors.Dims()
}

// Values returns the selected eigenvalues in column order.
func (b *Basis) Values() []float64 {
	out := make([]float64, len(b.values))
	copy(out, b.values)
	return out
}

// Vectors returns a copy of the basis matrix.
func (b *Basis) Vectors() *mat.Dense {
	return mat.DenseCopyOf(b.vectors)
}

// Project maps the rows of x (n x p) into embedded space (n x d).
func (b *Basis) Project(x mat.Matrix) (*mat.Dense, error) {
	_, c := x.Dims()
	p, _ := b.vectors.Dims()
	if c != p {
		return nil, &InvalidDimensionError{D: c, P: p}
	}
	var out mat.Dense
	out.Mul(x, b.vectors)
	return &out, nil
}

// ProjectRow maps a single p-length row into embedded space.
func (b *Basis) ProjectRow(row []float64) ([]float64, error) {
	p, d := b.vectors.Dims()
	if len(row) != p {
		return nil, &InvalidDimensionError{D: len(row), P: p}
	}
	out := make([]float64, d)
	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < p; i++ {
			sum += row[i] * b.vectors.At(i, j)
		}
		out[j] = sum
	}
	return out, nil
}

// Binary layout (little-endian):
// [p:u32][d:u32][values:d*f64][vectors:p*d*f64 row-major]
const basisHeaderSize = 8

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *Basis) MarshalBinary() ([]byte, error) {
	p, d := b.vectors.Dims()
	out := make([]byte, 0, basisHeaderSize+8*d+8*p*d)
	out = binary.LittleEndian.AppendUint32(out, uint32(p))
	out = binary.LittleEndian.AppendUint32(out, uint32(d))
	for _, v := range b.values {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
	}
	for i := 0; i < p; i++ {
		for j := 0; j < d; j++ {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(b.vectors.At(i, j)))
		}
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Basis) UnmarshalBinary(data []byte) error {
	if len(data) < basisHeaderSize {
		return errors.New("basis record too short")
	}
	p := int(binary.LittleEndian.Uint32(data[0:4]))
	d := int(binary.LittleEndian.Uint32(data[4:8]))
	if p < 1 || d < 1 {
		return errors.New("basis record has invalid dimensions")
	}
	want := basisHeaderSize + 8*d + 8*p*d
	if len(data) != want {
		return errors.New("basis record has truncated payload")
	}

	off := basisHeaderSize
	b.values = make([]float64, d)
	for j := 0; j < d; j++ {
		b.values[j] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}
	raw := make([]float64, p*d)
	for i := range raw {
		raw[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}
	b.vectors = mat.NewDense(p, d, raw)
	return nil
}
