package models

// InterestArea is a research topic projects are tagged with ('interest_areas' table)
type InterestArea struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
