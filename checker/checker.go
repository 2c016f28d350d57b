// Package checker wires the full consistency-check pipeline together:
// image reader, superblock validator, inode table loader, inode bitmap
// checker, block reference walker, and data bitmap reconciler, in that
// order. It owns the operational-error aggregation policy: one failed
// independent step never aborts the steps that don't depend on it.
package checker

import (
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/dargueta/imgfsck/bitmapcheck"
	"github.com/dargueta/imgfsck/fsckerr"
	"github.com/dargueta/imgfsck/image"
	"github.com/dargueta/imgfsck/inodetable"
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/reconciler"
	"github.com/dargueta/imgfsck/report"
	"github.com/dargueta/imgfsck/superblock"
	"github.com/dargueta/imgfsck/walker"
)

// Result holds everything a caller needs after a run: the ordered findings,
// the loaded inode table (for callers that want to print a verbose
// per-inode summary), and whether the run aborted early because the
// superblock failed validation. In that case exit 0 is still correct; the
// finding itself is the diagnostic.
type Result struct {
	Reporter         *report.Reporter
	Inodes           []layout.Inode
	SuperblockFailed bool
}

// Run executes the full pipeline against stream, a read-only view over an
// already-opened image file. It never writes to stream.
func Run(stream io.ReadSeeker) (*Result, error) {
	r := report.New()
	result := &Result{Reporter: r}
	var errs *multierror.Error

	rawReader := image.NewRaw(stream)
	block0, err := rawReader.ReadStructAt(0, layout.SuperblockWireSize)
	if err != nil {
		return result, multierror.Append(errs, err).ErrorOrNil()
	}

	sb, err := layout.DecodeSuperblock(block0)
	if err != nil {
		return result, multierror.Append(errs, err).ErrorOrNil()
	}

	if sbErr := superblock.Validate(sb); sbErr != nil {
		r.Add(*sbErr)
		result.SuperblockFailed = true
		return result, nil
	}

	reader := image.New(stream, sb.BlockSize, sb.TotalBlocks)

	inodes, err := inodetable.Load(reader, sb)
	if err != nil {
		errs = multierror.Append(errs, err)
		return result, errs.ErrorOrNil()
	}
	result.Inodes = inodes

	if inodeBitmapBlock, err := reader.ReadBlock(sb.InodeBitmapBlock); err != nil {
		errs = multierror.Append(errs, fsckerr.ErrBitmapReadFail.Wrap(err))
	} else {
		bitmapcheck.Check(inodeBitmapBlock, inodes, r)
	}

	dataBitmapBlock, err := reader.ReadBlock(sb.DataBitmapBlock)
	if err != nil {
		errs = multierror.Append(errs, fsckerr.ErrBitmapReadFail.Wrap(err))
		return result, errs.ErrorOrNil()
	}

	refCounts := make([]uint32, sb.TotalBlocks-sb.FirstDataBlock)
	w := walker.New(reader, sb, dataBitmapBlock, refCounts, r)
	if werr := w.Run(inodes); werr != nil {
		errs = multierror.Append(errs, werr)
	}

	reconciler.Check(dataBitmapBlock, sb, w.RefCounts(), r)

	return result, errs.ErrorOrNil()
}
