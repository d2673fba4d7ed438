package join

import "testing"

func TestPatternRecord_Multiplicities(t *testing.T) {
	p := &patternRecord{channelIDs: []ChannelId{1, 2, 1}}
	got := p.multiplicities()
	want := map[ChannelId]int{1: 2, 2: 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
