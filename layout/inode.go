package layout

import "encoding/binary"

// inodePayloadSize is the number of meaningful bytes in an inode record: ten
// uint32 scalar fields, twelve direct pointers, and three indirect pointers.
// The remaining 156 bytes of InodeSize are reserved padding, untouched by
// this tool.
const inodePayloadSize = 10*4 + DirectPointerCount*4 + 3*4

// Inode is the in-memory, decoded form of one 256-byte inode record.
// Every field of the record's payload is broken out here; the ambient fields
// (mode, uid, gid, ...) are kept for the verbose reporter but play no part in
// any invariant.
type Inode struct {
	Mode      uint32
	UID       uint32
	GID       uint32
	FileSize  uint32
	ATime     uint32
	CTime     uint32
	MTime     uint32
	DelTime   uint32
	HardLinks uint32
	NoBlocks  uint32

	Direct [DirectPointerCount]uint32

	Indirect       uint32
	DoubleIndirect uint32
	TripleIndirect uint32
}

// IsLive reports whether this inode is considered allocated: it has at
// least one hard link and has not been marked deleted. This is the single
// source of truth for liveness — both the inode-bitmap checker and the
// block reference walker call this, rather than re-expressing the
// predicate inline.
func (i Inode) IsLive() bool {
	return i.HardLinks > 0 && i.DelTime == 0
}

// HasBlocks reports whether the walker should descend into this inode's
// pointer tree at all: a live inode with no blocks in use has nothing to
// walk.
func (i Inode) HasBlocks() bool {
	return i.IsLive() && i.NoBlocks > 0
}

// DecodeInode parses one inode record from a buffer of at least InodeSize
// bytes, laid out starting at offset 0 of buf.
func DecodeInode(buf []byte) (Inode, error) {
	if len(buf) < inodePayloadSize {
		return Inode{}, errShortInode
	}

	var in Inode
	off := 0
	readU32 := func() uint32 {
		v := binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
		return v
	}

	in.Mode = readU32()
	in.UID = readU32()
	in.GID = readU32()
	in.FileSize = readU32()
	in.ATime = readU32()
	in.CTime = readU32()
	in.MTime = readU32()
	in.DelTime = readU32()
	in.HardLinks = readU32()
	in.NoBlocks = readU32()

	for i := range in.Direct {
		in.Direct[i] = readU32()
	}

	in.Indirect = readU32()
	in.DoubleIndirect = readU32()
	in.TripleIndirect = readU32()

	return in, nil
}

// EncodeInode renders in into a fresh InodeSize-byte record, zero-padded in
// the reserved tail. Used by test fixtures, not by the checker itself.
func EncodeInode(in Inode) []byte {
	buf := make([]byte, InodeSize)
	off := 0
	writeU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}

	writeU32(in.Mode)
	writeU32(in.UID)
	writeU32(in.GID)
	writeU32(in.FileSize)
	writeU32(in.ATime)
	writeU32(in.CTime)
	writeU32(in.MTime)
	writeU32(in.DelTime)
	writeU32(in.HardLinks)
	writeU32(in.NoBlocks)

	for _, ptr := range in.Direct {
		writeU32(ptr)
	}

	writeU32(in.Indirect)
	writeU32(in.DoubleIndirect)
	writeU32(in.TripleIndirect)

	return buf
}

// DecodeBlockPointers interprets an entire indirect block as a sequence of
// PointersPerIndirectBlock little-endian uint32 block numbers.
func DecodeBlockPointers(block []byte) []uint32 {
	pointers := make([]uint32, PointersPerIndirectBlock)
	for i := range pointers {
		pointers[i] = binary.LittleEndian.Uint32(block[i*4 : i*4+4])
	}
	return pointers
}

// EncodeBlockPointers is the inverse of DecodeBlockPointers, used by test
// fixtures to build indirect blocks.
func EncodeBlockPointers(pointers []uint32) []byte {
	block := make([]byte, BlockSize)
	for i, p := range pointers {
		binary.LittleEndian.PutUint32(block[i*4:i*4+4], p)
	}
	return block
}

var errShortInode = shortBufferError("inode buffer shorter than its fixed payload")

func init() {
	if inodePayloadSize != 100 {
		panic("inode payload size drifted from the documented 100 bytes")
	}
	if int(InodeSize) < inodePayloadSize {
		panic("inode size smaller than its payload")
	}
}
