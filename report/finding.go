// Package report defines the findings the consistency checker emits and the
// two ways of rendering them: a tagged plain-text line and a CSV record.
// Findings are never Go errors: they are the expected product of a
// successful run, not a failure of one.
package report

import "fmt"

// Finding is any consistency-violation record the checker can emit.
type Finding interface {
	// Tag is the ASCII classification token that begins the finding's
	// text-report line, e.g. "BADBLOCK".
	Tag() string
	// String renders the finding as a single human-readable line.
	String() string
}

// SuperblockError reports that a superblock field did not match its
// expected constant. It is always the last finding before the run aborts.
type SuperblockError struct {
	Field    string
	Actual   uint64
	Expected uint64
}

func (f SuperblockError) Tag() string { return "SUPERBLOCK" }
func (f SuperblockError) String() string {
	return fmt.Sprintf(
		"%s: field %q is %d, expected %d", f.Tag(), f.Field, f.Actual, f.Expected)
}

// InodeBitmapExtra reports that the inode bitmap marks an inode allocated
// that is, in fact, dead.
type InodeBitmapExtra struct {
	Inode   int
	Links   uint32
	DelTime uint32
}

func (f InodeBitmapExtra) Tag() string { return "INODE_BITMAP_EXTRA" }
func (f InodeBitmapExtra) String() string {
	return fmt.Sprintf(
		"%s: Inode %d marked allocated but has %d links and del_time %d",
		f.Tag(), f.Inode, f.Links, f.DelTime)
}

// InodeBitmapMissing reports that the inode bitmap marks an inode free that
// is, in fact, live.
type InodeBitmapMissing struct {
	Inode int
	Links uint32
}

func (f InodeBitmapMissing) Tag() string { return "INODE_BITMAP_MISSING" }
func (f InodeBitmapMissing) String() string {
	return fmt.Sprintf(
		"%s: Inode %d marked free but has %d links", f.Tag(), f.Inode, f.Links)
}

// BadBlock reports that a live inode references a block number outside the
// valid data-block range.
type BadBlock struct {
	Inode   int
	Block   uint32
	Context Slot
}

func (f BadBlock) Tag() string { return "BADBLOCK" }
func (f BadBlock) String() string {
	return fmt.Sprintf(
		"%s: Inode %d references invalid block %d || %s",
		f.Tag(), f.Inode, f.Block, f.Context)
}

// Duplicate reports that a live inode references a block already claimed by
// an earlier inode (or an earlier slot of the same inode) in traversal
// order.
type Duplicate struct {
	Inode   int
	Block   uint32
	Context Slot
}

func (f Duplicate) Tag() string { return "DUPLICATE" }
func (f Duplicate) String() string {
	return fmt.Sprintf(
		"%s: Inode %d references block %d || %s", f.Tag(), f.Inode, f.Block, f.Context)
}

// BitmapMissing reports that a block referenced by a live inode is marked
// free in the data bitmap. It is the walker's vantage point on the same I4
// violation the reconciler's MissingBitmap reports globally.
type BitmapMissing struct {
	Inode   int
	Block   uint32
	Context Slot
}

func (f BitmapMissing) Tag() string { return "BITMAPERROR" }
func (f BitmapMissing) String() string {
	return fmt.Sprintf(
		"%s: Block %d referenced by inode %d (%s) but marked free in data bitmap",
		f.Tag(), f.Block, f.Inode, f.Context)
}

// UnusedBlock reports that the data bitmap marks a block allocated, but no
// live inode references it.
type UnusedBlock struct {
	Block uint32
}

func (f UnusedBlock) Tag() string { return "UNUSED_BLOCK" }
func (f UnusedBlock) String() string {
	return fmt.Sprintf("%s: Block %d marked used but not referenced", f.Tag(), f.Block)
}

// MissingBitmap reports that a block is referenced by one or more live
// inodes but the data bitmap marks it free.
type MissingBitmap struct {
	Block uint32
	Count uint32
}

func (f MissingBitmap) Tag() string { return "MISSING_BITMAP" }
func (f MissingBitmap) String() string {
	return fmt.Sprintf(
		"%s: Block %d referenced %d time(s) but marked free in data bitmap",
		f.Tag(), f.Block, f.Count)
}
