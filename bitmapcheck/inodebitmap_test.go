package bitmapcheck_test

import (
	"testing"

	"github.com/boljen/go-bitmap"
	"github.com/stretchr/testify/assert"

	"github.com/dargueta/imgfsck/bitmapcheck"
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

func TestCheckAllAgree(t *testing.T) {
	bm := bitmap.New(8)
	bm.Set(0, true)

	inodes := make([]layout.Inode, 8)
	inodes[0] = layout.Inode{HardLinks: 1}

	r := report.New()
	bitmapcheck.Check(bm, inodes, r)

	assert.Empty(t, r.Findings())
}

func TestCheckExtraAllocation(t *testing.T) {
	bm := bitmap.New(8)
	bm.Set(3, true)

	inodes := make([]layout.Inode, 8)
	inodes[3] = layout.Inode{HardLinks: 0, DelTime: 12345}

	r := report.New()
	bitmapcheck.Check(bm, inodes, r)

	if assert.Len(t, r.Findings(), 1) {
		f, ok := r.Findings()[0].(report.InodeBitmapExtra)
		if assert.True(t, ok) {
			assert.Equal(t, 3, f.Inode)
			assert.EqualValues(t, 12345, f.DelTime)
		}
	}
}

func TestCheckMissingAllocation(t *testing.T) {
	bm := bitmap.New(8)

	inodes := make([]layout.Inode, 8)
	inodes[5] = layout.Inode{HardLinks: 2}

	r := report.New()
	bitmapcheck.Check(bm, inodes, r)

	if assert.Len(t, r.Findings(), 1) {
		f, ok := r.Findings()[0].(report.InodeBitmapMissing)
		if assert.True(t, ok) {
			assert.Equal(t, 5, f.Inode)
			assert.EqualValues(t, 2, f.Links)
		}
	}
}
