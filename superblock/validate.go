// Package superblock implements a thin predicate that checks block 0
// against the fixed layout constants and aborts the whole run on the first
// mismatch, since every other check depends on the superblock's geometry
// being correct.
package superblock

import (
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

// Validate checks sb's fields against the fixed layout constants in field
// order, returning the first mismatch as a finding. A nil finding means sb
// is valid and the pipeline may continue.
func Validate(sb layout.Superblock) *report.SuperblockError {
	checks := []struct {
		field    string
		actual   uint64
		expected uint64
	}{
		{"magic", uint64(sb.Magic), uint64(layout.MagicNumber)},
		{"block_size", uint64(sb.BlockSize), uint64(layout.BlockSize)},
		{"total_blocks", uint64(sb.TotalBlocks), uint64(layout.TotalBlocks)},
		{"inode_bitmap_block", uint64(sb.InodeBitmapBlock), uint64(layout.InodeBitmapBlock)},
		{"data_bitmap_block", uint64(sb.DataBitmapBlock), uint64(layout.DataBitmapBlock)},
		{"inode_table_start", uint64(sb.InodeTableStart), uint64(layout.InodeTableStart)},
		{"first_data_block", uint64(sb.FirstDataBlock), uint64(layout.FirstDataBlock)},
		{"inode_size", uint64(sb.InodeSize), uint64(layout.InodeSize)},
	}

	for _, c := range checks {
		if c.actual != c.expected {
			return &report.SuperblockError{Field: c.field, Actual: c.actual, Expected: c.expected}
		}
	}

	return nil
}
