// Package layout defines the fixed on-disk structures of the filesystem
// image this tool checks: the superblock, the inode record, and the block
// geometry they agree on. The layout is fixed by design — there is no
// support for superblocks describing a different geometry.
package layout

import "encoding/binary"

// Fixed layout constants every valid image must agree with. These are not
// read from the image; they are the expected values the superblock is
// checked against.
const (
	MagicNumber      uint16 = 0xD34D
	BlockSize        uint32 = 4096
	TotalBlocks      uint32 = 64
	InodeBitmapBlock uint32 = 1
	DataBitmapBlock  uint32 = 2
	InodeTableStart  uint32 = 3
	FirstDataBlock   uint32 = 8
	InodeSize        uint32 = 256

	// DirectPointerCount is the number of direct block pointers in an inode.
	DirectPointerCount = 12

	// PointersPerIndirectBlock is the number of 32-bit block numbers that fit
	// in one full block.
	PointersPerIndirectBlock = int(BlockSize) / 4
)

// SuperblockWireSize is the number of bytes the superblock occupies on disk.
// It is block-sized by construction: the payload (magic plus eight uint32
// fields) is 34 bytes, and the remaining 4062 bytes are reserved.
const SuperblockWireSize = int(BlockSize)

const superblockPayloadSize = 2 + 8*4 // magic (uint16) + 8 uint32 fields

// Superblock is the in-memory, decoded form of block 0.
type Superblock struct {
	Magic            uint16
	BlockSize        uint32
	TotalBlocks      uint32
	InodeBitmapBlock uint32
	DataBitmapBlock  uint32
	InodeTableStart  uint32
	FirstDataBlock   uint32
	InodeSize        uint32
	InodeCount       uint32
}

// DecodeSuperblock parses a superblock from a full block-0 buffer. buf must
// be at least SuperblockWireSize bytes; the reserved tail is ignored.
func DecodeSuperblock(buf []byte) (Superblock, error) {
	if len(buf) < superblockPayloadSize {
		return Superblock{}, errShortSuperblock
	}

	var sb Superblock
	off := 0
	sb.Magic = binary.LittleEndian.Uint16(buf[off : off+2])
	off += 2
	sb.BlockSize = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.TotalBlocks = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.InodeBitmapBlock = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.DataBitmapBlock = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.InodeTableStart = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.FirstDataBlock = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.InodeSize = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	sb.InodeCount = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4

	return sb, nil
}

// EncodeSuperblock renders sb into a fresh SuperblockWireSize-byte block,
// zero-padded in the reserved tail. Used by test fixtures, not by the
// checker itself (the checker never writes the image).
func EncodeSuperblock(sb Superblock) []byte {
	buf := make([]byte, SuperblockWireSize)
	off := 0
	binary.LittleEndian.PutUint16(buf[off:off+2], sb.Magic)
	off += 2
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.BlockSize)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.TotalBlocks)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.InodeBitmapBlock)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.DataBitmapBlock)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.InodeTableStart)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.FirstDataBlock)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.InodeSize)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], sb.InodeCount)
	off += 4

	return buf
}

var errShortSuperblock = shortBufferError("superblock buffer shorter than its fixed payload")

type shortBufferError string

func (e shortBufferError) Error() string { return string(e) }

func init() {
	if superblockPayloadSize != 34 {
		panic("superblock payload size drifted from the documented 34 bytes")
	}
	if SuperblockWireSize < superblockPayloadSize {
		panic("superblock wire size smaller than its payload")
	}
}
