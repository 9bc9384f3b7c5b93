package valueobjects

import "strconv"

// NodeID is a value object identifying a node within one canvas.
// Allocation is external: the compositor derives ids from surface
// handles and the content generator keeps its own monotonic counter.
// The canvas only enforces uniqueness among the ids it already holds.
type NodeID uint64

// String returns the decimal representation of the NodeID
func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id == 0
}
