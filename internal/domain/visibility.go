package domain

import "time"

// ProfileView is the per-render projection of a profile for a given viewer.
// Basic fields are always present; Extended is nil unless the viewer holds an
// accepted connection with the owner. There is no partial tier in between —
// pending, declined and blocked all project exactly like NONE.
type ProfileView struct {
	UserID      int32           `json:"user_id"`
	DisplayName string          `json:"display_name"`
	AvatarURL   string          `json:"avatar_url"`
	ShipID      *int32          `json:"ship_id"`
	ShipName    string          `json:"ship_name,omitempty"`
	Department  string          `json:"department"`
	Role        string          `json:"role"`
	Subcategory string          `json:"subcategory"`
	Online      bool            `json:"online"`
	LastSeen    *time.Time      `json:"last_seen,omitempty"`
	State       ConnectionState `json:"connection_state"`

	Extended *ExtendedProfile `json:"extended,omitempty"`
}

// ExtendedProfile holds the level-2 fields disclosed only after mutual
// approval.
type ExtendedProfile struct {
	Bio          string   `json:"bio"`
	Phone        string   `json:"phone"`
	ContactEmail string   `json:"contact_email"`
	Instagram    string   `json:"instagram"`
	Snapchat     string   `json:"snapchat"`
	Website      string   `json:"website"`
	Photos       []string `json:"photos"`
}

// ExtendedVisible is the binary visibility gate: only an accepted connection
// unlocks the extended field set.
func ExtendedVisible(state ConnectionState) bool {
	return state == ConnectionStateAccepted
}
