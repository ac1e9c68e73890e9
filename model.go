package dimred

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/blobstore"
	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/persistence"
	"github.com/hupe1980/dimred/preprocess"
	"github.com/hupe1980/dimred/reduction"
)

// Model is a fitted reduction: the training embedding plus whatever the
// method exposes for out-of-sample prediction (preprocessing transform and
// projection basis). Models are immutable; concurrent Predict calls are
// safe.
type Model struct {
	// Method is the short name of the reduction that produced the model.
	Method string

	// Transform replays the fitted preprocessing map. Nil for methods
	// without one.
	Transform *preprocess.Transform

	// Basis is the fitted projection. Nil for embedding-only methods.
	Basis *eigen.Basis

	// Embedding is the training embedding (n x d).
	Embedding *mat.Dense

	logger  *Logger
	metrics MetricsCollector
}

// Fit runs r.FitTransform on x and wraps the result in a Model.
func Fit(ctx context.Context, r reduction.Reducer, x *mat.Dense, opts ...Option) (*Model, error) {
	o := applyOptions(opts)

	rows, cols := 0, 0
	if x != nil {
		rows, cols = x.Dims()
	}

	start := time.Now()
	embedding, err := r.FitTransform(x)
	elapsed := time.Since(start)
	o.logger.LogFit(ctx, r.Method(), rows, cols, r.OutputDim(), elapsed, err)
	o.metrics.RecordFit(r.Method(), elapsed, err)
	if err != nil {
		return nil, translateError(err)
	}

	m := &Model{
		Method:    r.Method(),
		Embedding: embedding,
		logger:    o.logger,
		metrics:   o.metrics,
	}
	if p, ok := r.(reduction.Projector); ok {
		m.Transform = p.FittedTransform()
		m.Basis = p.ProjectionBasis()
	}
	return m, nil
}

// Predict maps a single out-of-sample row into the embedded space.
func (m *Model) Predict(row []float64) ([]float64, error) {
	start := time.Now()
	out, err := m.predict(row)
	m.metrics.RecordPredict(m.Method, 1, time.Since(start), err)
	return out, err
}

func (m *Model) predict(row []float64) ([]float64, error) {
	if m.Basis == nil {
		return nil, fmt.Errorf("%w: method %q", ErrNoProjection, m.Method)
	}
	x := row
	if m.Transform != nil {
		var err error
		x, err = m.Transform.Apply(row)
		if err != nil {
			return nil, translateError(err)
		}
	}
	out, err := m.Basis.ProjectRow(x)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// PredictBatch maps many out-of-sample rows, fanning the work out across
// workers. Row order is preserved.
func (m *Model) PredictBatch(ctx context.Context, rows [][]float64) ([][]float64, error) {
	start := time.Now()
	out := make([][]float64, len(rows))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			y, err := m.predict(row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = y
			return nil
		})
	}
	err := g.Wait()
	m.logger.LogPredict(ctx, m.Method, len(rows), err)
	m.metrics.RecordPredict(m.Method, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save writes the model as a binary snapshot.
func (m *Model) Save(w io.Writer, opts ...persistence.EncodeOption) error {
	rec := &persistence.ModelRecord{
		Method:    m.Method,
		Transform: m.Transform,
		Basis:     m.Basis,
		Embedding: m.Embedding,
	}
	return persistence.EncodeModel(w, rec, opts...)
}

// SaveTo writes the model snapshot into a blob store under name.
func (m *Model) SaveTo(ctx context.Context, store blobstore.BlobStore, name string, opts ...persistence.EncodeOption) error {
	var buf bytes.Buffer
	if err := m.Save(&buf, opts...); err != nil {
		m.logger.LogSnapshot(ctx, "save", name, err)
		return err
	}
	err := store.Put(ctx, name, buf.Bytes())
	m.logger.LogSnapshot(ctx, "save", name, err)
	return err
}

// LoadModel reads a model snapshot written by Save.
func LoadModel(r io.Reader, opts ...Option) (*Model, error) {
	o := applyOptions(opts)
	rec, err := persistence.DecodeModel(r)
	if err != nil {
		return nil, err
	}
	return &Model{
		Method:    rec.Method,
		Transform: rec.Transform,
		Basis:     rec.Basis,
		Embedding: rec.Embedding,
		logger:    o.logger,
		metrics:   o.metrics,
	}, nil
}

// LoadModelFrom reads a model snapshot from a blob store.
func LoadModelFrom(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Model, error) {
	o := applyOptions(opts)
	blob, err := store.Open(ctx, name)
	if err != nil {
		o.logger.LogSnapshot(ctx, "load", name, err)
		return nil, err
	}
	defer blob.Close()

	m, err := LoadModel(blob, opts...)
	o.logger.LogSnapshot(ctx, "load", name, err)
	return m, err
}
