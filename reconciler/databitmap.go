// Package reconciler compares, after the block reference walker has
// finished, the on-disk data bitmap against the accumulated reference-count
// array and reports both directions of disagreement.
package reconciler

import (
	"github.com/boljen/go-bitmap"

	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

// Check compares bitmapBlock (the raw bytes of the data-bitmap block)
// against refCounts (indexed by block - FirstDataBlock, as produced by the
// walker), appending one finding per disagreement to r, in ascending
// block-number order.
func Check(bitmapBlock []byte, sb layout.Superblock, refCounts []uint32, r *report.Reporter) {
	bm := bitmap.Bitmap(bitmapBlock)

	for idx, count := range refCounts {
		block := sb.FirstDataBlock + uint32(idx)
		allocated := bm.Get(idx)

		switch {
		case allocated && count == 0:
			r.Add(report.UnusedBlock{Block: block})
		case !allocated && count > 0:
			r.Add(report.MissingBitmap{Block: block, Count: count})
		}
	}
}
