package reconciler_test

import (
	"testing"

	"github.com/boljen/go-bitmap"
	"github.com/stretchr/testify/assert"

	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/reconciler"
	"github.com/dargueta/imgfsck/report"
)

func sb() layout.Superblock {
	return layout.Superblock{
		FirstDataBlock: layout.FirstDataBlock,
		TotalBlocks:    layout.TotalBlocks,
	}
}

func TestReconcileClean(t *testing.T) {
	bm := bitmap.New(int(layout.TotalBlocks - layout.FirstDataBlock))
	bm.Set(0, true)
	refCounts := make([]uint32, layout.TotalBlocks-layout.FirstDataBlock)
	refCounts[0] = 1

	r := report.New()
	reconciler.Check(bm, sb(), refCounts, r)

	assert.Empty(t, r.Findings())
}

func TestReconcileUnusedBlock(t *testing.T) {
	bm := bitmap.New(int(layout.TotalBlocks - layout.FirstDataBlock))
	bm.Set(1, true) // block FirstDataBlock+1, never referenced

	refCounts := make([]uint32, layout.TotalBlocks-layout.FirstDataBlock)

	r := report.New()
	reconciler.Check(bm, sb(), refCounts, r)

	if assert.Len(t, r.Findings(), 1) {
		f, ok := r.Findings()[0].(report.UnusedBlock)
		if assert.True(t, ok) {
			assert.EqualValues(t, layout.FirstDataBlock+1, f.Block)
		}
	}
}

func TestReconcileMissingBitmap(t *testing.T) {
	bm := bitmap.New(int(layout.TotalBlocks - layout.FirstDataBlock))

	refCounts := make([]uint32, layout.TotalBlocks-layout.FirstDataBlock)
	refCounts[2] = 3

	r := report.New()
	reconciler.Check(bm, sb(), refCounts, r)

	if assert.Len(t, r.Findings(), 1) {
		f, ok := r.Findings()[0].(report.MissingBitmap)
		if assert.True(t, ok) {
			assert.EqualValues(t, layout.FirstDataBlock+2, f.Block)
			assert.EqualValues(t, 3, f.Count)
		}
	}
}
