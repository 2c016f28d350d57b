package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

// Reporter accumulates findings in discovery order and renders them on
// demand. Findings are appended as they're discovered by each pipeline
// stage; nothing here reorders them.
type Reporter struct {
	findings []Finding
}

// New creates an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Add records a finding, in discovery order.
func (r *Reporter) Add(f Finding) {
	r.findings = append(r.findings, f)
}

// Findings returns the findings recorded so far, in discovery order.
func (r *Reporter) Findings() []Finding {
	return r.findings
}

// WriteText writes one tagged line per finding, followed by a completion
// summary line.
func (r *Reporter) WriteText(w io.Writer) error {
	for _, f := range r.findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "DONE: check complete, %d finding(s)\n", len(r.findings))
	return err
}

// record is the flattened CSV row shape for a finding, used only by
// WriteCSV.
type record struct {
	Tag     string `csv:"tag"`
	Inode   string `csv:"inode"`
	Block   string `csv:"block"`
	Context string `csv:"context"`
	Detail  string `csv:"detail"`
}

func toRecord(f Finding) record {
	switch v := f.(type) {
	case SuperblockError:
		return record{
			Tag:    v.Tag(),
			Detail: fmt.Sprintf("field=%s actual=%d expected=%d", v.Field, v.Actual, v.Expected),
		}
	case InodeBitmapExtra:
		return record{
			Tag:    v.Tag(),
			Inode:  strconv.Itoa(v.Inode),
			Detail: fmt.Sprintf("links=%d del_time=%d", v.Links, v.DelTime),
		}
	case InodeBitmapMissing:
		return record{
			Tag:    v.Tag(),
			Inode:  strconv.Itoa(v.Inode),
			Detail: fmt.Sprintf("links=%d", v.Links),
		}
	case BadBlock:
		return record{
			Tag:     v.Tag(),
			Inode:   strconv.Itoa(v.Inode),
			Block:   strconv.FormatUint(uint64(v.Block), 10),
			Context: v.Context.String(),
		}
	case Duplicate:
		return record{
			Tag:     v.Tag(),
			Inode:   strconv.Itoa(v.Inode),
			Block:   strconv.FormatUint(uint64(v.Block), 10),
			Context: v.Context.String(),
		}
	case BitmapMissing:
		return record{
			Tag:     v.Tag(),
			Inode:   strconv.Itoa(v.Inode),
			Block:   strconv.FormatUint(uint64(v.Block), 10),
			Context: v.Context.String(),
		}
	case UnusedBlock:
		return record{
			Tag:   v.Tag(),
			Block: strconv.FormatUint(uint64(v.Block), 10),
		}
	case MissingBitmap:
		return record{
			Tag:    v.Tag(),
			Block:  strconv.FormatUint(uint64(v.Block), 10),
			Detail: fmt.Sprintf("count=%d", v.Count),
		}
	default:
		return record{Tag: f.Tag(), Detail: f.String()}
	}
}

// WriteCSV marshals the same discovery-ordered findings WriteText would
// print as CSV rows (tag,inode,block,context,detail), for `check --format
// csv` mode. This is purely a second rendering: it introduces no new
// findings.
func (r *Reporter) WriteCSV(w io.Writer) error {
	records := make([]record, len(r.findings))
	for i, f := range r.findings {
		records[i] = toRecord(f)
	}
	return gocsv.Marshal(records, w)
}
