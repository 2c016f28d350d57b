// Package fsimagetest builds in-memory filesystem images for tests.
package fsimagetest

import (
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"

	"github.com/dargueta/imgfsck/layout"
)

// Builder assembles a complete, fixed-geometry image in memory, one region
// at a time, for use as a test fixture.
type Builder struct {
	buf []byte
}

// New allocates a zeroed image of the fixed geometry (TotalBlocks blocks of
// BlockSize bytes each) and writes a valid superblock naming inodeCount
// inode records.
func New(inodeCount uint32) *Builder {
	b := &Builder{buf: make([]byte, int(layout.TotalBlocks)*int(layout.BlockSize))}

	sb := layout.Superblock{
		Magic:            layout.MagicNumber,
		BlockSize:        layout.BlockSize,
		TotalBlocks:      layout.TotalBlocks,
		InodeBitmapBlock: layout.InodeBitmapBlock,
		DataBitmapBlock:  layout.DataBitmapBlock,
		InodeTableStart:  layout.InodeTableStart,
		FirstDataBlock:   layout.FirstDataBlock,
		InodeSize:        layout.InodeSize,
		InodeCount:       inodeCount,
	}

	writer := bytewriter.New(b.buf[0:layout.SuperblockWireSize])
	if _, err := writer.Write(layout.EncodeSuperblock(sb)); err != nil {
		panic(err) // writing into a pre-sized in-memory slice cannot fail
	}

	return b
}

// CorruptSuperblockField overwrites a single superblock field with a
// different value, for exercising the validator's failure path. It always
// writes value as 4 little-endian bytes starting at offset, so offset should
// be the start of a field; for the 2-byte magic at offset 0 this also
// overwrites the low two bytes of block_size.
func (b *Builder) CorruptSuperblockField(offset int, value uint32) {
	buf := make([]byte, 4)
	for i := 0; i < 4; i++ {
		buf[i] = byte(value >> (8 * i))
	}
	copy(b.buf[offset:offset+4], buf)
}

// SetInode writes one inode record at its fixed position in the inode
// table.
func (b *Builder) SetInode(inodeNum int, inode layout.Inode) {
	offset := int(layout.InodeTableStart)*int(layout.BlockSize) + inodeNum*int(layout.InodeSize)
	copy(b.buf[offset:offset+int(layout.InodeSize)], layout.EncodeInode(inode))
}

// SetInodeBitmapBit sets or clears bit inodeNum of the inode bitmap.
func (b *Builder) SetInodeBitmapBit(inodeNum int, allocated bool) {
	block := b.block(layout.InodeBitmapBlock)
	bitmap.Bitmap(block).Set(inodeNum, allocated)
}

// SetDataBitmapBit sets or clears the data-bitmap bit for absolute block
// number blockAbs.
func (b *Builder) SetDataBitmapBit(blockAbs uint32, allocated bool) {
	block := b.block(layout.DataBitmapBlock)
	idx := int(blockAbs - layout.FirstDataBlock)
	bitmap.Bitmap(block).Set(idx, allocated)
}

// SetIndirectBlock writes pointers as the 32-bit little-endian pointer
// array occupying absolute block blockAbs.
func (b *Builder) SetIndirectBlock(blockAbs uint32, pointers []uint32) {
	encoded := layout.EncodeBlockPointers(pointers)
	copy(b.block(blockAbs), encoded)
}

func (b *Builder) block(blockAbs uint32) []byte {
	offset := int(blockAbs) * int(layout.BlockSize)
	return b.buf[offset : offset+int(layout.BlockSize)]
}

// Bytes returns the raw image contents.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Stream returns a fresh, independent read-write-seekable view over the
// built image: an io.ReadWriteSeeker backed by an in-memory byte slice
// rather than a real file.
func (b *Builder) Stream() io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(b.buf)
}
