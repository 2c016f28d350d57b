package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/imgfsck/report"
)

func TestWriteTextOrderAndCompletionLine(t *testing.T) {
	r := report.New()
	r.Add(report.BadBlock{Inode: 0, Block: 100, Context: report.Direct(0)})
	r.Add(report.UnusedBlock{Block: 9})

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "BADBLOCK:"))
	assert.True(t, strings.HasPrefix(lines[1], "UNUSED_BLOCK:"))
	assert.True(t, strings.HasPrefix(lines[2], "DONE:"))
}

func TestWriteCSVHasHeaderAndRows(t *testing.T) {
	r := report.New()
	r.Add(report.Duplicate{Inode: 1, Block: 8, Context: report.Direct(0)})

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "tag,inode,block,context,detail", lines[0])
	assert.Equal(t, "DUPLICATE,1,8,DIRECT[0],", lines[1])
}

func TestSlotString(t *testing.T) {
	assert.Equal(t, "DIRECT[3]", report.Direct(3).String())
	assert.Equal(t, "INDIRECT", report.Indirect().String())
	assert.Equal(t, "DOUBLE_INDIRECT_L2[1][4]", report.DoubleIndirectL2(1, 4).String())
	assert.Equal(t, "TRIPLE_INDIRECT_L3[1][2][3]", report.TripleIndirectL3(1, 2, 3).String())
}
