package report

import "fmt"

// SlotKind identifies which position in an inode's pointer tree a block
// reference came from. Slot is a tagged variant used in place of ad-hoc
// context strings, so findings can be compared structurally in tests.
type SlotKind int

const (
	SlotDirect SlotKind = iota
	SlotIndirect
	SlotIndirectPtr
	SlotDoubleIndirect
	SlotDoubleIndirectL1
	SlotDoubleIndirectL2
	SlotTripleIndirect
	SlotTripleIndirectL1
	SlotTripleIndirectL2
	SlotTripleIndirectL3
)

// Slot describes exactly where in an inode's block tree a reference was
// found. Only as many of I/J/K are meaningful as the Kind requires.
type Slot struct {
	Kind SlotKind
	I    int
	J    int
	K    int
}

func Direct(k int) Slot              { return Slot{Kind: SlotDirect, I: k} }
func Indirect() Slot                 { return Slot{Kind: SlotIndirect} }
func IndirectPtr(k int) Slot         { return Slot{Kind: SlotIndirectPtr, I: k} }
func DoubleIndirect() Slot           { return Slot{Kind: SlotDoubleIndirect} }
func DoubleIndirectL1(i int) Slot    { return Slot{Kind: SlotDoubleIndirectL1, I: i} }
func DoubleIndirectL2(i, j int) Slot { return Slot{Kind: SlotDoubleIndirectL2, I: i, J: j} }
func TripleIndirect() Slot           { return Slot{Kind: SlotTripleIndirect} }
func TripleIndirectL1(i int) Slot    { return Slot{Kind: SlotTripleIndirectL1, I: i} }
func TripleIndirectL2(i, j int) Slot { return Slot{Kind: SlotTripleIndirectL2, I: i, J: j} }
func TripleIndirectL3(i, j, k int) Slot {
	return Slot{Kind: SlotTripleIndirectL3, I: i, J: j, K: k}
}

// String renders the slot as a context token, e.g. "DIRECT[3]",
// "DOUBLE_INDIRECT_L2[1][4]".
func (s Slot) String() string {
	switch s.Kind {
	case SlotDirect:
		return fmt.Sprintf("DIRECT[%d]", s.I)
	case SlotIndirect:
		return "INDIRECT"
	case SlotIndirectPtr:
		return fmt.Sprintf("INDIRECT_PTR[%d]", s.I)
	case SlotDoubleIndirect:
		return "DOUBLE_INDIRECT"
	case SlotDoubleIndirectL1:
		return fmt.Sprintf("DOUBLE_INDIRECT_L1[%d]", s.I)
	case SlotDoubleIndirectL2:
		return fmt.Sprintf("DOUBLE_INDIRECT_L2[%d][%d]", s.I, s.J)
	case SlotTripleIndirect:
		return "TRIPLE_INDIRECT"
	case SlotTripleIndirectL1:
		return fmt.Sprintf("TRIPLE_INDIRECT_L1[%d]", s.I)
	case SlotTripleIndirectL2:
		return fmt.Sprintf("TRIPLE_INDIRECT_L2[%d][%d]", s.I, s.J)
	case SlotTripleIndirectL3:
		return fmt.Sprintf("TRIPLE_INDIRECT_L3[%d][%d][%d]", s.I, s.J, s.K)
	default:
		return "UNKNOWN_SLOT"
	}
}
