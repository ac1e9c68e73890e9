package preprocess

import (
	"encoding/binary"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/internal/matutil"
)

// Transform is the record produced by Fit. It holds the fitted affine map
// y = ((x - mean) / scale) * proj and replays it on unseen rows of matching
// width. A Transform is immutable after Fit.
type Transform struct {
	mode  Mode
	dim   int
	mean  []float64 // nil unless the mode centers
	scale []float64 // nil unless the mode scales per column
	proj  *mat.Dense // nil unless the mode rotates (p x p)
}

// Mode returns the mode the transform was fitted with.
func (t *Transform) Mode() Mode { return t.mode }

// Dim returns the input width p the transform expects.
func (t *Transform) Dim() int { return t.dim }

// Apply maps a single out-of-sample row through the fitted transform.
// The input row is not mutated.
func (t *Transform) Apply(row []float64) ([]float64, error) {
	if len(row) != t.dim {
		return nil, &DimensionMismatchError{Expected: t.dim, Actual: len(row)}
	}
	if matutil.SliceHasNonFinite(row) {
		return nil, errors.Join(ErrInvalidInput, errors.New("row contains NaN or Inf"))
	}

	out := make([]float64, t.dim)
	copy(out, row)
	if t.mean != nil {
		for j := range out {
			out[j] -= t.mean[j]
		}
	}
	if t.scale != nil {
		for j := range out {
			out[j] /= t.scale[j]
		}
	}
	if t.proj != nil {
		rotated := make([]float64, t.dim)
		v := mat.NewVecDense(t.dim, out)
		r := mat.NewVecDense(t.dim, rotated)
		r.MulVec(t.proj.T(), v)
		return rotated, nil
	}
	return out, nil
}

// ApplyMatrix maps every row of x through the fitted transform.
func (t *Transform) ApplyMatrix(x *mat.Dense) (*mat.Dense, error) {
	n, p := x.Dims()
	if p != t.dim {
		return nil, &DimensionMismatchError{Expected: t.dim, Actual: p}
	}

	out := mat.NewDense(n, p, nil)
	out.Copy(x)
	if t.mean != nil {
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				out.Set(i, j, out.At(i, j)-t.mean[j])
			}
		}
	}
	if t.scale != nil {
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				out.Set(i, j, out.At(i, j)/t.scale[j])
			}
		}
	}
	if t.proj != nil {
		var rotated mat.Dense
		rotated.Mul(out, t.proj)
		return &rotated, nil
	}
	return out, nil
}

// Binary layout (little-endian):
// [mode:u8][flags:u8][dim:u32][mean?][scale?][proj?]
// where each optional section is dim (or dim*dim) float64 values and flags
// records which sections are present.
const (
	flagMean  = 1 << 0
	flagScale = 1 << 1
	flagProj  = 1 << 2
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Transform) MarshalBinary() ([]byte, error) {
	var flags byte
	size := 6
	if t.mean != nil {
		flags |= flagMean
		size += 8 * t.dim
	}
	if t.scale != nil {
		flags |= flagScale
		size += 8 * t.dim
	}
	if t.proj != nil {
		flags |= flagProj
		size += 8 * t.dim * t.dim
	}

	b := make([]byte, 0, size)
	b = append(b, byte(t.mode), flags)
	b = binary.LittleEndian.AppendUint32(b, uint32(t.dim))
	b = appendFloats(b, t.mean)
	b = appendFloats(b, t.scale)
	if t.proj != nil {
		b = appendFloats(b, t.proj.RawMatrix().Data)
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Transform) UnmarshalBinary(data []byte) error {
	if len(data) < 6 {
		return errors.New("transform record too short")
	}
	mode := Mode(data[0])
	if !mode.valid() {
		return errors.New("transform record has unknown mode")
	}
	flags := data[1]
	dim := int(binary.LittleEndian.Uint32(data[2:6]))
	if dim < 1 {
		return errors.New("transform record has invalid dimension")
	}

	rest := data[6:]
	want := 0
	if flags&flagMean != 0 {
		want += 8 * dim
	}
	if flags&flagScale != 0 {
		want += 8 * dim
	}
	if flags&flagProj != 0 {
		want += 8 * dim * dim
	}
	if len(rest) != want {
		return errors.New("transform record has truncated payload")
	}

	t.mode = mode
	t.dim = dim
	t.mean = nil
	t.scale = nil
	t.proj = nil
	if flags&flagMean != 0 {
		t.mean, rest = consumeFloats(rest, dim)
	}
	if flags&flagScale != 0 {
		t.scale, rest = consumeFloats(rest, dim)
	}
	if flags&flagProj != 0 {
		var raw []float64
		raw, _ = consumeFloats(rest, dim*dim)
		t.proj = mat.NewDense(dim, dim, raw)
	}
	return nil
}

func appendFloats(b []byte, vals []float64) []byte {
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}

func consumeFloats(b []byte, n int) ([]float64, []byte) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return out, b[8*n:]
}
