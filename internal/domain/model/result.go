package model

// InsertResult is the outcome of a successful insert.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult carries update-count semantics: Matched counts records that
// satisfied the key, Modified counts records whose value actually changed.
// Writing a password equal to the stored one yields Matched 1, Modified 0.
type UpdateResult struct {
	Matched  int64
	Modified int64
}
