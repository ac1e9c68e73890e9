package graph

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// ClassIndex maps class labels to bitmaps of row indices. It backs the
// label-gated rule and is handy for supervised callers that need fast
// same-class membership tests.
type ClassIndex struct {
	classes map[int]*roaring.Bitmap
	byRow   []int
}

// NewClassIndex builds the index from a length-n label vector.
func NewClassIndex(labels []int) *ClassIndex {
	ix := &ClassIndex{
		classes: make(map[int]*roaring.Bitmap),
		byRow:   make([]int, len(labels)),
	}
	copy(ix.byRow, labels)
	for i, label := range labels {
		bm, ok := ix.classes[label]
		if !ok {
			bm = roaring.New()
			ix.classes[label] = bm
		}
		bm.Add(uint32(i))
	}
	return ix
}

// Len returns the number of labeled rows.
func (ix *ClassIndex) Len() int { return len(ix.byRow) }

// Labels returns the distinct labels in ascending order.
func (ix *ClassIndex) Labels() []int {
	out := make([]int, 0, len(ix.classes))
	for label := range ix.classes {
		out = append(out, label)
	}
	sort.Ints(out)
	return out
}

// Count returns the number of rows carrying label.
func (ix *ClassIndex) Count(label int) int {
	bm, ok := ix.classes[label]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// SameClass reports whether rows i and j carry the same label.
func (ix *ClassIndex) SameClass(i, j int) bool {
	return ix.classes[ix.byRow[i]].Contains(uint32(j))
}

// Members returns the row indices carrying label, ascending.
func (ix *ClassIndex) Members(label int) []uint32 {
	bm, ok := ix.classes[label]
	if !ok {
		return nil
	}
	return bm.ToArray()
}

// Validate fails with a DegenerateClassError for the smallest label whose
// class has fewer than 2 members.
func (ix *ClassIndex) Validate() error {
	for _, label := range ix.Labels() {
		if c := ix.Count(label); c < 2 {
			return &DegenerateClassError{Label: label, Count: c}
		}
	}
	return nil
}
