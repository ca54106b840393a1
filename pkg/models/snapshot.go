package models

// Snapshot is the backup payload produced by export and consumed by
// import. A nil slice means the key was absent from the payload, in
// which case import leaves that collection untouched; an empty non-nil
// slice clears it.
type Snapshot struct {
	ReviewCards []ReviewCard  `json:"reviewCards"`
	Notes       []ProblemNote `json:"notes"`
	Bookmarks   []Bookmark    `json:"bookmarks"`
	Logs        []ReviewLog   `json:"logs"`
	ExportedAt  string        `json:"exportedAt"`
}
