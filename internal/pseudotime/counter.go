// Package pseudotime implements a light-weight, arbitrary-precision,
// increment-only counter used by the coordinator as a pseudo-time axis for
// fairness: it never decreases, and it never loses precision to overflow by
// growing an extra digit instead of wrapping.
package pseudotime

import "golang.org/x/exp/constraints"

// Counter is an incrementable, dynamically resizing unsigned counter.
//
// The digits are stored little-endian (the least significant digit at index
// 0), so that growing the counter on overflow is an append rather than a
// shift of every existing digit.
type Counter[D constraints.Unsigned] struct {
	digits []D
}

// NewCounter returns a Counter initialized to the lowest possible value.
func NewCounter[D constraints.Unsigned]() Counter[D] {
	return Counter[D]{digits: []D{0}}
}

// Increment increments the Counter by one, growing it by a digit if every
// existing digit has reached its maximum value.
func (c *Counter[D]) Increment() {
	var maxD D
	maxD-- // unsigned wraparound to the type's maximum value

	carry := true
	for i := range c.digits {
		if c.digits[i] < maxD {
			c.digits[i]++
			carry = false
			break
		}
		c.digits[i] = 0
	}

	if carry {
		c.digits = append(c.digits, 1)
	}
}

// Compare returns -1, 0, or 1 as c is less than, equal to, or greater than
// other. A Counter with more digits is always greater, since more digits
// means a greater value. When both have equal digit counts, the most
// significant digit that differs determines the result.
func (c Counter[D]) Compare(other Counter[D]) int {
	if len(c.digits) != len(other.digits) {
		if len(c.digits) < len(other.digits) {
			return -1
		}
		return 1
	}

	result := 0
	for i := range c.digits {
		switch {
		case c.digits[i] < other.digits[i]:
			result = -1
		case c.digits[i] > other.digits[i]:
			result = 1
		}
	}
	return result
}

// Equal reports whether c and other represent the same value.
func (c Counter[D]) Equal(other Counter[D]) bool {
	return c.Compare(other) == 0
}

// Clone returns a Counter with the same value as c, sharing no storage with
// it. Increment mutates its digits in place when no carry is needed, so a
// plain value copy of a Counter still aliases the original's backing array;
// callers that need to snapshot a Counter before further increments must use
// Clone instead of assignment.
func (c Counter[D]) Clone() Counter[D] {
	return Counter[D]{digits: append([]D(nil), c.digits...)}
}
