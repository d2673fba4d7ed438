package bag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetrieve_Nonexistent(t *testing.T) {
	b := New[string, int]()
	_, ok := b.Retrieve("missing")
	assert.False(t, ok)
}

func TestAddThenRetrieve(t *testing.T) {
	b := New[string, int]()
	b.Add("a", 1)

	v, ok := b.Retrieve("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = b.Retrieve("a")
	assert.False(t, ok)
}

func TestRetrieve_FIFOOrder(t *testing.T) {
	b := New[string, int]()
	b.Add("a", 1)
	b.Add("a", 2)
	b.Add("a", 3)

	for _, want := range []int{1, 2, 3} {
		got, ok := b.Retrieve("a")
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := b.Retrieve("a")
	assert.False(t, ok)
}

func TestItems_AssignedCorrectKey(t *testing.T) {
	b := New[string, int]()
	b.Add("a", 1)
	b.Add("b", 2)

	v, ok := b.Retrieve("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = b.Retrieve("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestContains(t *testing.T) {
	b := New[string, int]()
	assert.False(t, b.Contains("a"))

	b.Add("a", 1)
	assert.True(t, b.Contains("a"))

	b.Retrieve("a")
	assert.False(t, b.Contains("a"))
}

func TestCount(t *testing.T) {
	b := New[string, int]()
	assert.Equal(t, 0, b.Count("a"))

	b.Add("a", 1)
	b.Add("a", 2)
	assert.Equal(t, 2, b.Count("a"))

	b.Retrieve("a")
	assert.Equal(t, 1, b.Count("a"))
}
