package join

import "testing"

func TestAllocateJunctionID_Unique(t *testing.T) {
	a := allocateJunctionID()
	b := allocateJunctionID()
	if a == b {
		t.Fatal("expected distinct junction ids")
	}
}

func TestIdAllocator_SeparateSpacesDoNotCollideWithinOne(t *testing.T) {
	var alloc idAllocator
	c1 := alloc.allocateChannelID()
	c2 := alloc.allocateChannelID()
	if c1 == c2 {
		t.Fatal("expected distinct channel ids from the same allocator")
	}
}

func TestIdAllocator_PatternIDsIncrement(t *testing.T) {
	var alloc idAllocator
	p1 := alloc.allocatePatternID()
	p2 := alloc.allocatePatternID()
	if p1 == p2 {
		t.Fatal("expected distinct pattern ids")
	}
}
