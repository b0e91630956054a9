package models

// Assignment is one giver -> receiver pair of a group's draw.
// GiverID and ReceiverID are user IDs and never equal.
type Assignment struct {
	// ID is the unique identifier for the assignment (UUID format).
	ID string

	// GroupID is the group whose draw produced the assignment.
	GroupID string

	// GiverID is the user buying the gift.
	GiverID string

	// ReceiverID is the user receiving the gift.
	ReceiverID string

	// CreatedAt is the Unix timestamp of the draw that created the assignment.
	CreatedAt int64
}

// AssignmentView is an assignment joined with the names a giver needs to see.
type AssignmentView struct {
	Assignment

	GroupName    string
	ReceiverName string
}
