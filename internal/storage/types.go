package storage

// TableDocument is the on-disk form of a single table: one structured JSON
// file holding the schema, the rows in insert order, and the insert
// counter.
type TableDocument struct {
	Columns     map[string]string        `json:"columns"`
	ColumnOrder []string                 `json:"column_order"`
	PrimaryKey  *string                  `json:"primary_key"`
	UniqueCols  []string                 `json:"unique_cols"`
	Rows        []map[string]interface{} `json:"rows"`
	NextOffset  int64                    `json:"next_offset"`
}

// DatabaseMeta is the metadata document recording the table names known to
// a database instance.
type DatabaseMeta struct {
	Tables []string `json:"tables"`
}
