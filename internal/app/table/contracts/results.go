package contracts

import "time"

// LoadResult summarizes a table load.
type LoadResult struct {
	Table    string
	Rows     int
	LoadedAt time.Time
}

// SaveResult summarizes a table save.
type SaveResult struct {
	Table    string
	Inserted int
	Updated  int
	Deleted  int
	SavedAt  time.Time
}

// Changed returns the number of rows written.
func (r *SaveResult) Changed() int {
	return r.Inserted + r.Updated + r.Deleted
}
