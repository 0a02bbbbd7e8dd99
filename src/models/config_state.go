package models

import "time"

// -----------------------------------------------------------------------------
// Server push message
// -----------------------------------------------------------------------------

type MConfigState struct {
	Type     string       `json:"type"` // "INITIAL" or "UPDATE"
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loaded_at"`
	Entries  []MFlatEntry `json:"entries"`
}

// -----------------------------------------------------------------------------
// Client commands
// -----------------------------------------------------------------------------

// MSubscribeCommand narrows the pushed entries to the given domains.
type MSubscribeCommand struct {
	Command string   `json:"command"`
	Domains []string `json:"domains"`
}

// -----------------------------------------------------------------------------
// Reload history
// -----------------------------------------------------------------------------

type MReloadEvent struct {
	At      time.Time `json:"at"`
	Source  string    `json:"source"`
	Status  string    `json:"status"` // "loaded" or "rejected"
	Kind    string    `json:"kind,omitempty"`
	Error   string    `json:"error,omitempty"`
	Changes int       `json:"changes"`
}
