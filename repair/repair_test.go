package repair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/imgfsck/fsimage/fsimagetest"
	"github.com/dargueta/imgfsck/image"
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/repair"
)

func TestClearInodeBit(t *testing.T) {
	b := fsimagetest.New(1)
	b.SetInodeBitmapBit(13, true)

	stream := b.Stream()
	require.NoError(t, repair.ClearInodeBit(stream, 13))

	reader := image.NewRaw(stream)
	bitmapBlock, err := reader.ReadBlock(layout.InodeBitmapBlock)
	require.NoError(t, err)

	assert.Zero(t, bitmapBlock[1]&(1<<5), "byte 1 bit 5 (inode 13) should now be clear")
}

func TestClearInodeBitRejectsNegative(t *testing.T) {
	b := fsimagetest.New(1)
	assert.Error(t, repair.ClearInodeBit(b.Stream(), -1))
}
