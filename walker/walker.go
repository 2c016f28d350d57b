// Package walker implements the core of the consistency checker: for every
// live inode it traverses the direct, indirect, double-indirect, and
// triple-indirect pointer trees, accumulating a global reference count per
// data block while flagging invalid pointers, duplicate references, and
// data-bitmap disagreement.
package walker

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"

	"github.com/dargueta/imgfsck/fsckerr"
	"github.com/dargueta/imgfsck/image"
	"github.com/dargueta/imgfsck/layout"
	"github.com/dargueta/imgfsck/report"
)

// Walker traverses every live inode's block-reference tree exactly once.
type Walker struct {
	reader     *image.Reader
	sb         layout.Superblock
	dataBitmap bitmap.Bitmap
	refCounts  []uint32
	reporter   *report.Reporter
	errs       *multierror.Error
}

// New creates a Walker. dataBitmapBlock is the raw bytes of the on-disk data
// bitmap block; refCounts is zero-initialized by the caller (the
// reconciler owns this slice, the walker only mutates it).
func New(
	reader *image.Reader,
	sb layout.Superblock,
	dataBitmapBlock []byte,
	refCounts []uint32,
	r *report.Reporter,
) *Walker {
	return &Walker{
		reader:     reader,
		sb:         sb,
		dataBitmap: bitmap.Bitmap(dataBitmapBlock),
		refCounts:  refCounts,
		reporter:   r,
	}
}

// Run walks every live inode in ascending inode-number order. It always
// returns (possibly aggregated) operational errors encountered while
// reading indirect blocks mid-walk; these never abort the scan of sibling
// pointers or subsequent inodes.
func (w *Walker) Run(inodes []layout.Inode) error {
	for i, inode := range inodes {
		if !inode.HasBlocks() {
			continue
		}
		w.walkInode(i, inode)
	}
	return w.errs.ErrorOrNil()
}

// RefCounts returns the reference-count array mutated during Run.
func (w *Walker) RefCounts() []uint32 {
	return w.refCounts
}

func (w *Walker) walkInode(inodeNum int, inode layout.Inode) {
	for k, ptr := range inode.Direct {
		if ptr == 0 {
			continue
		}
		w.checkReference(inodeNum, ptr, report.Direct(k))
	}

	if inode.Indirect != 0 {
		w.walkSingleIndirect(inodeNum, inode.Indirect)
	}
	if inode.DoubleIndirect != 0 {
		w.walkDoubleIndirect(inodeNum, inode.DoubleIndirect)
	}
	if inode.TripleIndirect != 0 {
		w.walkTripleIndirect(inodeNum, inode.TripleIndirect)
	}
}

func (w *Walker) walkSingleIndirect(inodeNum int, block uint32) {
	_, descend := w.checkReference(inodeNum, block, report.Indirect())
	if !descend {
		return
	}

	pointers, ok := w.readPointerBlock(inodeNum, block)
	if !ok {
		return
	}

	for k, ptr := range pointers {
		if ptr == 0 {
			continue
		}
		w.checkReference(inodeNum, ptr, report.IndirectPtr(k))
	}
}

func (w *Walker) walkDoubleIndirect(inodeNum int, block uint32) {
	_, descend := w.checkReference(inodeNum, block, report.DoubleIndirect())
	if !descend {
		return
	}

	l1, ok := w.readPointerBlock(inodeNum, block)
	if !ok {
		return
	}

	for i, p1 := range l1 {
		if p1 == 0 {
			continue
		}
		_, descendL2 := w.checkReference(inodeNum, p1, report.DoubleIndirectL1(i))
		if !descendL2 {
			continue
		}

		l2, ok := w.readPointerBlock(inodeNum, p1)
		if !ok {
			continue
		}

		for j, p2 := range l2 {
			if p2 == 0 {
				continue
			}
			w.checkReference(inodeNum, p2, report.DoubleIndirectL2(i, j))
		}
	}
}

func (w *Walker) walkTripleIndirect(inodeNum int, block uint32) {
	// The initial reference check here always uses the inode's
	// TripleIndirect pointer, never DoubleIndirect: a legacy swapped-field
	// read is treated as a defect, not a contract.
	_, descend := w.checkReference(inodeNum, block, report.TripleIndirect())
	if !descend {
		return
	}

	l1, ok := w.readPointerBlock(inodeNum, block)
	if !ok {
		return
	}

	for i, p1 := range l1 {
		if p1 == 0 {
			continue
		}
		_, descendL2 := w.checkReference(inodeNum, p1, report.TripleIndirectL1(i))
		if !descendL2 {
			continue
		}

		l2, ok := w.readPointerBlock(inodeNum, p1)
		if !ok {
			continue
		}

		for j, p2 := range l2 {
			if p2 == 0 {
				continue
			}
			_, descendL3 := w.checkReference(inodeNum, p2, report.TripleIndirectL2(i, j))
			if !descendL3 {
				continue
			}

			l3, ok := w.readPointerBlock(inodeNum, p2)
			if !ok {
				continue
			}

			for k, p3 := range l3 {
				if p3 == 0 {
					continue
				}
				w.checkReference(inodeNum, p3, report.TripleIndirectL3(i, j, k))
			}
		}
	}
}

// checkReference decides whether block is countable and/or descendable,
// and appends the appropriate finding. It performs no I/O; reference
// accounting and bitmap-disagreement reporting are deliberately kept in
// one pass here but structurally separable, since "counted" and "descend"
// are independent return values rather than inferred from which finding
// (if any) fired.
func (w *Walker) checkReference(
	inodeNum int, block uint32, slot report.Slot,
) (counted, descend bool) {
	if block == 0 {
		return false, false
	}

	if block < w.sb.FirstDataBlock || block >= w.sb.TotalBlocks {
		w.reporter.Add(report.BadBlock{Inode: inodeNum, Block: block, Context: slot})
		return false, false
	}

	idx := int(block - w.sb.FirstDataBlock)
	if w.refCounts[idx] > 0 {
		w.reporter.Add(report.Duplicate{Inode: inodeNum, Block: block, Context: slot})
		return false, false
	}

	if !w.dataBitmap.Get(idx) {
		w.reporter.Add(report.BitmapMissing{Inode: inodeNum, Block: block, Context: slot})
	}

	w.refCounts[idx]++
	return true, true
}

// readPointerBlock reads and decodes an indirect block's 32-bit pointer
// array. On failure it records an operational error naming the parent
// block and inode, and signals the caller not to descend further into this
// subtree.
func (w *Walker) readPointerBlock(inodeNum int, block uint32) ([]uint32, bool) {
	raw, err := w.reader.ReadBlock(block)
	if err != nil {
		w.errs = multierror.Append(w.errs, fsckerr.ErrIO.Wrap(
			fmt.Errorf("inode %d: failed to read indirect block %d: %w", inodeNum, block, err),
		))
		return nil, false
	}
	return layout.DecodeBlockPointers(raw), true
}
