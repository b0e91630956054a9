package models

// Group represents a gift-exchange circle.
// Group names are unique across the service so they can be found by search.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Office Party", "Family 2026").
	Name string

	// AdminID is the user who created the group. Only the admin can manage
	// members, decide join requests and run the draw.
	AdminID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// LastDrawnAt is the Unix timestamp of the most recent successful draw,
	// zero if the group was never drawn.
	LastDrawnAt int64

	// DrawCount is the number of successful draws run for this group.
	DrawCount int
}

// IsAdmin reports whether userID administers the group.
func (g *Group) IsAdmin(userID string) bool {
	return userID != "" && g.AdminID == userID
}
