package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeekAll_Nonexistent(t *testing.T) {
	idx := New[string, int]()
	values, ok := idx.PeekAll("missing")
	assert.False(t, ok)
	assert.Nil(t, values)
}

func TestInsertSingle(t *testing.T) {
	idx := New[string, int]()
	idx.InsertSingle("a", 1)
	idx.InsertSingle("a", 2)

	values, ok := idx.PeekAll("a")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, values)
}

func TestInsertMultiple(t *testing.T) {
	idx := New[string, int]()
	idx.InsertMultiple([]string{"a", "b"}, 1)
	idx.InsertMultiple([]string{"b", "c"}, 2)

	va, _ := idx.PeekAll("a")
	vb, _ := idx.PeekAll("b")
	vc, _ := idx.PeekAll("c")
	assert.Equal(t, []int{1}, va)
	assert.Equal(t, []int{1, 2}, vb)
	assert.Equal(t, []int{2}, vc)
}

func TestInsertMultiple_DedupesRepeatedKey(t *testing.T) {
	idx := New[string, int]()
	idx.InsertMultiple([]string{"a", "a", "a"}, 1)

	values, ok := idx.PeekAll("a")
	assert.True(t, ok)
	assert.Equal(t, []int{1}, values)
}

func TestPeekAll_OrderPreserved(t *testing.T) {
	idx := New[string, int]()
	for i := 0; i < 5; i++ {
		idx.InsertSingle("a", i)
	}
	values, ok := idx.PeekAll("a")
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, values)
}
