package models

// Member represents one participant in a group.
//
// A member is either linked to a registered account (UserID set) or is a
// guest added by the admin with only a display name. Guests are listed with
// the group but take no part in the draw, since assignments are keyed by account.
type Member struct {
	// ID is the unique identifier for the membership record (UUID format).
	ID string

	// GroupID is the group this membership belongs to.
	GroupID string

	// UserID is the linked account, empty for guests.
	UserID string

	// Name is the display name of the member.
	Name string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}

// HasAccount reports whether the member is linked to a user account.
func (m *Member) HasAccount() bool {
	return m.UserID != ""
}
