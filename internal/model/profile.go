package model

// Profile is the cached identity of the logged-in user
type Profile struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Board string   `json:"board"`
}

// Credential pairs a signed token with the profile it was issued for
type Credential struct {
	Token   string
	Profile Profile
}

// RosterEntry is one player known to the remote record store
type RosterEntry struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Board string   `json:"board,omitempty"`
}

// UserMetadata is a free-form per-user bag of flags and counters
type UserMetadata map[string]any

// RedirectCountKey is incremented on every metadata write
const RedirectCountKey = "redirectcount"

// RedirectCount returns the redirect counter, tolerating JSON number decoding
func (m UserMetadata) RedirectCount() int {
	switch v := m[RedirectCountKey].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
