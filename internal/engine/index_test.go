package engine

import (
	"testing"

	"gotest.tools/assert"
)

func TestIndexInsertAndSearch(t *testing.T) {
	idx := NewIndex("username")

	idx.Insert("alice", 0)
	idx.Insert("bob", 1)

	assert.DeepEqual(t, idx.Search("alice"), []int64{0})
	assert.DeepEqual(t, idx.Search("bob"), []int64{1})
}

func TestIndexSearchMissingValue(t *testing.T) {
	idx := NewIndex("username")

	if got := idx.Search("ghost"); len(got) != 0 {
		t.Errorf("expected empty result for absent value, got %v", got)
	}
}

func TestIndexDuplicatesPermitted(t *testing.T) {
	// Constraint semantics belong to the caller; the index itself is a
	// plain multimap.
	idx := NewIndex("city")

	idx.Insert("nairobi", 0)
	idx.Insert("nairobi", 3)

	assert.DeepEqual(t, idx.Search("nairobi"), []int64{0, 3})
}

func TestIndexDelete(t *testing.T) {
	idx := NewIndex("city")
	idx.Insert("nairobi", 0)
	idx.Insert("nairobi", 3)

	idx.Delete("nairobi", 0)
	assert.DeepEqual(t, idx.Search("nairobi"), []int64{3})

	// Deleting the last ID drops the entry entirely.
	idx.Delete("nairobi", 3)
	if _, found := idx.Data["nairobi"]; found {
		t.Error("expected entry to be dropped once empty")
	}
}

func TestIndexDeleteAbsentPair(t *testing.T) {
	idx := NewIndex("city")
	idx.Insert("nairobi", 0)

	// Unmatched value and unmatched ID are both no-ops.
	idx.Delete("mombasa", 0)
	idx.Delete("nairobi", 9)

	assert.DeepEqual(t, idx.Search("nairobi"), []int64{0})
}
