// Package image provides a random-access, byte-addressable view over a
// filesystem image file. It never writes; every method here is read-only,
// matching the checker's non-mutation guarantee.
package image

import (
	"fmt"
	"io"

	"github.com/dargueta/imgfsck/fsckerr"
	"github.com/dargueta/imgfsck/layout"
)

// Reader is a random-access view over an image, addressed in fixed-size
// blocks.
type Reader struct {
	stream      io.ReadSeeker
	blockSize   uint32
	totalBlocks uint32
}

// New wraps stream as a Reader using the image's own geometry. Before the
// superblock has been validated, callers should use NewRaw with the fixed
// layout constants instead.
func New(stream io.ReadSeeker, blockSize, totalBlocks uint32) *Reader {
	return &Reader{stream: stream, blockSize: blockSize, totalBlocks: totalBlocks}
}

// NewRaw wraps stream using the fixed layout constants, for use before a
// superblock has been parsed and validated.
func NewRaw(stream io.ReadSeeker) *Reader {
	return New(stream, layout.BlockSize, layout.TotalBlocks)
}

// BlockSize reports the configured block size in bytes.
func (r *Reader) BlockSize() uint32 {
	return r.blockSize
}

// TotalBlocks reports the configured number of blocks in the image.
func (r *Reader) TotalBlocks() uint32 {
	return r.totalBlocks
}

// InBounds reports whether blockIndex names a block within [0, TotalBlocks).
func (r *Reader) InBounds(blockIndex uint32) bool {
	return blockIndex < r.totalBlocks
}

// ReadBlock reads one full block at the given index.
func (r *Reader) ReadBlock(blockIndex uint32) ([]byte, error) {
	if !r.InBounds(blockIndex) {
		return nil, fsckerr.ErrIO.WithMessage(
			fmt.Sprintf("block %d out of range [0, %d)", blockIndex, r.totalBlocks))
	}
	return r.ReadStructAt(int64(blockIndex)*int64(r.blockSize), int(r.blockSize))
}

// ReadStructAt reads size bytes starting at the given absolute byte offset.
// On a short read or seek failure it returns an fsckerr.ErrIO /
// fsckerr.ErrShortRead wrapped error; the caller decides whether to abandon
// just the current check or the whole run.
func (r *Reader) ReadStructAt(offset int64, size int) ([]byte, error) {
	if _, err := r.stream.Seek(offset, io.SeekStart); err != nil {
		return nil, fsckerr.ErrIO.Wrap(err)
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(r.stream, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, fsckerr.ErrShortRead.WithMessage(
				fmt.Sprintf("read %d of %d bytes at offset %d", n, size, offset))
		}
		return nil, fsckerr.ErrIO.Wrap(err)
	}

	return buf, nil
}
