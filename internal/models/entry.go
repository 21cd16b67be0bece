package models

import "time"

// EntryKind classifies a free-text entry.
type EntryKind string

const (
	EntryKindJournal EntryKind = "journal"
	EntryKindBelief  EntryKind = "belief"
	EntryKindNote    EntryKind = "note"
)

// Entry is a user-authored text record. The pipeline only ever reads
// entries; they are owned by the CRUD surface.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      EntryKind `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
