// Package inodetable reads inode_count fixed-size records from the inode
// table region into an in-memory indexed slice. No inode field validation
// happens here; that is the bitmap checker's and walker's job.
package inodetable

import (
	"github.com/dargueta/imgfsck/image"
	"github.com/dargueta/imgfsck/layout"
)

// Load reads sb.InodeCount records of sb.InodeSize bytes each, starting at
// block sb.InodeTableStart, record i at byte offset
// inode_table_start*block_size + i*inode_size. The returned slice is
// indexed by inode number.
func Load(reader *image.Reader, sb layout.Superblock) ([]layout.Inode, error) {
	inodes := make([]layout.Inode, sb.InodeCount)
	tableOffset := int64(sb.InodeTableStart) * int64(sb.BlockSize)

	for i := uint32(0); i < sb.InodeCount; i++ {
		offset := tableOffset + int64(i)*int64(sb.InodeSize)
		buf, err := reader.ReadStructAt(offset, int(sb.InodeSize))
		if err != nil {
			return nil, err
		}

		inode, err := layout.DecodeInode(buf)
		if err != nil {
			return nil, err
		}
		inodes[i] = inode
	}

	return inodes, nil
}
