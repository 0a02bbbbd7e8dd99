package models

import "time"

// MFlatEntry is one dot-qualified key and its display value.
type MFlatEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MSnapshot is a recorded flattening of one configuration source.
type MSnapshot struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loaded_at"`
	Entries  []MFlatEntry `json:"entries"`
}
