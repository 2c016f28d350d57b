// Package repair implements a single illustrative repair operation:
// clearing one bit of the on-disk inode bitmap. It is a companion to the
// checker, not part of it — it performs no consistency checks of its own,
// and mutates the image in place.
package repair

import (
	"io"

	"github.com/boljen/go-bitmap"

	"github.com/dargueta/imgfsck/fsckerr"
	"github.com/dargueta/imgfsck/layout"
)

// ClearInodeBit clears bit inodeNum of the on-disk inode bitmap (block 1)
// and writes only the modified byte back to stream. stream must be
// read-writable and seekable, and already positioned over a valid image
// (callers are expected to have run the checker first).
func ClearInodeBit(stream io.ReadWriteSeeker, inodeNum int) error {
	if inodeNum < 0 {
		return fsckerr.ErrArgument.WithMessage("inode number must be non-negative")
	}

	byteOffset := inodeNum / 8
	blockOffset := int64(layout.InodeBitmapBlock)*int64(layout.BlockSize) + int64(byteOffset)

	if _, err := stream.Seek(blockOffset, io.SeekStart); err != nil {
		return fsckerr.ErrIO.Wrap(err)
	}

	var byteBuf [1]byte
	if _, err := io.ReadFull(stream, byteBuf[:]); err != nil {
		return fsckerr.ErrShortRead.Wrap(err)
	}

	bm := bitmap.Bitmap(byteBuf[:])
	bm.Set(inodeNum%8, false)

	if _, err := stream.Seek(blockOffset, io.SeekStart); err != nil {
		return fsckerr.ErrIO.Wrap(err)
	}
	if _, err := stream.Write(byteBuf[:]); err != nil {
		return fsckerr.ErrIO.Wrap(err)
	}

	return nil
}
