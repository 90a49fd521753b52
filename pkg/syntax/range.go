package syntax

import "strconv"

// Range is a half-open byte range [Start, End) in the source text.
type Range struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// NewRange returns the range starting at start and covering length bytes.
func NewRange(start, length int) Range {
	return Range{Start: start, End: start + length}
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Shift moves the range by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// String formats the range as "start..end".
func (r Range) String() string {
	return strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End)
}
