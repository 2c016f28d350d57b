package checker_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/imgfsck/checker"
	"github.com/dargueta/imgfsck/fsimage/fsimagetest"
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

func TestCheckCleanImage(t *testing.T) {
	b := fsimagetest.New(1)
	b.SetInode(0, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{8}})
	b.SetInodeBitmapBit(0, true)
	b.SetDataBitmapBit(8, true)

	result, err := checker.Run(b.Stream())
	require.NoError(t, err)
	assert.False(t, result.SuperblockFailed)
	assert.Empty(t, result.Reporter.Findings())
	require.Len(t, result.Inodes, 1)
	assert.True(t, result.Inodes[0].IsLive())
}

func TestCheckIsIdempotent(t *testing.T) {
	b := fsimagetest.New(2)
	b.SetInode(0, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{8}})
	b.SetInode(1, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{8}})
	b.SetInodeBitmapBit(0, true)
	b.SetInodeBitmapBit(1, true)
	b.SetDataBitmapBit(8, true)

	before := append([]byte(nil), b.Bytes()...)

	result1, err := checker.Run(b.Stream())
	require.NoError(t, err)
	result2, err := checker.Run(b.Stream())
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, result1.Reporter.WriteText(&buf1))
	require.NoError(t, result2.Reporter.WriteText(&buf2))

	assert.Equal(t, buf1.String(), buf2.String(), "running the checker twice must produce identical output")
	assert.Equal(t, before, b.Bytes(), "the checker must never mutate the image")
}

func TestCheckSuperblockFailureAbortsRun(t *testing.T) {
	b := fsimagetest.New(1)
	b.CorruptSuperblockField(0, 0xBAD) // magic is the first field

	result, err := checker.Run(b.Stream())
	require.NoError(t, err)
	assert.True(t, result.SuperblockFailed)
	require.Len(t, result.Reporter.Findings(), 1)
	_, ok := result.Reporter.Findings()[0].(report.SuperblockError)
	assert.True(t, ok)
}

func TestCheckMixedFindings(t *testing.T) {
	b := fsimagetest.New(4)

	// inode 0: live, clean reference to block 8
	b.SetInode(0, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{8}})
	b.SetInodeBitmapBit(0, true)
	b.SetDataBitmapBit(8, true)

	// inode 1: duplicates inode 0's block 8
	b.SetInode(1, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{8}})
	b.SetInodeBitmapBit(1, true)

	// inode 2: references an out-of-range block
	b.SetInode(2, layout.Inode{HardLinks: 1, NoBlocks: 1, Direct: [12]uint32{100}})
	b.SetInodeBitmapBit(2, true)

	// inode 3: dead but still marked allocated in the bitmap
	b.SetInode(3, layout.Inode{HardLinks: 0, DelTime: 999})
	b.SetInodeBitmapBit(3, true)

	// block 9 marked used but never referenced
	b.SetDataBitmapBit(9, true)

	result, err := checker.Run(b.Stream())
	require.NoError(t, err)

	var tags []string
	for _, f := range result.Reporter.Findings() {
		tags = append(tags, f.Tag())
	}

	assert.Contains(t, tags, "DUPLICATE")
	assert.Contains(t, tags, "BADBLOCK")
	assert.Contains(t, tags, "INODE_BITMAP_EXTRA")
	assert.Contains(t, tags, "UNUSED_BLOCK")
}
