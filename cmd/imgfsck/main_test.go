package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dargueta/imgfsck/layout"
)

func TestPrintVerboseInodeSummarySkipsDeadInodes(t *testing.T) {
	inodes := []layout.Inode{
		{HardLinks: 1, Mode: 0100644, UID: 1000, GID: 1000, FileSize: 42, ATime: 1, CTime: 2, MTime: 3},
		{HardLinks: 0, DelTime: 99},
	}

	var buf bytes.Buffer
	printVerboseInodeSummary(&buf, inodes)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1)
	assert.Equal(t, "INODE 0: mode=100644 uid=1000 gid=1000 size=42 atime=1 ctime=2 mtime=3", lines[0])
}

func TestPrintVerboseInodeSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printVerboseInodeSummary(&buf, nil)
	assert.Empty(t, buf.String())
}
