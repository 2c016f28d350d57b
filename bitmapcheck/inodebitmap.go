// Package bitmapcheck implements a per-entry comparison of the on-disk
// inode bitmap against each loaded inode's liveness predicate.
package bitmapcheck

import (
	"github.com/boljen/go-bitmap"

	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

// Check compares bitmapBlock (the raw bytes of the inode-bitmap block)
// against the liveness of each inode in inodes, appending one finding per
// disagreement to r, in ascending inode-number order.
//
// The on-disk convention is little-endian within each byte: bit 0 of byte k
// represents inode 8k. github.com/boljen/go-bitmap stores bits in exactly
// this order, so the raw block bytes can be interpreted directly as a
// bitmap.Bitmap with no repacking.
func Check(bitmapBlock []byte, inodes []layout.Inode, r *report.Reporter) {
	bm := bitmap.Bitmap(bitmapBlock)

	for i, inode := range inodes {
		allocated := bm.Get(i)
		shouldBeAllocated := inode.IsLive()

		switch {
		case allocated && !shouldBeAllocated:
			r.Add(report.InodeBitmapExtra{
				Inode:   i,
				Links:   inode.HardLinks,
				DelTime: inode.DelTime,
			})
		case !allocated && shouldBeAllocated:
			r.Add(report.InodeBitmapMissing{
				Inode: i,
				Links: inode.HardLinks,
			})
		}
	}
}
