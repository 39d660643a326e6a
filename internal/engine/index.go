package engine

// Index is an in-memory equality index on a single column, mapping a cell
// value to the IDs of the rows currently holding it. It is used only for
// uniqueness checks; scans never consult it. All operations are total.
type Index struct {
	Column string
	Data   map[interface{}][]int64 // value → row IDs
}

// NewIndex creates an empty index for the given column.
func NewIndex(column string) *Index {
	return &Index{
		Column: column,
		Data:   make(map[interface{}][]int64),
	}
}

// Insert appends a row ID to the value's entry. Duplicates are permitted;
// constraint semantics belong to the caller.
func (ix *Index) Insert(value interface{}, id int64) {
	ix.Data[value] = append(ix.Data[value], id)
}

// Search returns the row IDs currently holding the value, or nil if none.
func (ix *Index) Search(value interface{}) []int64 {
	return ix.Data[value]
}

// Delete removes exactly the (value, id) pair, dropping the entry entirely
// once it becomes empty.
func (ix *Index) Delete(value interface{}, id int64) {
	ids, found := ix.Data[value]
	if !found {
		return
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		delete(ix.Data, value)
		return
	}
	ix.Data[value] = kept
}
