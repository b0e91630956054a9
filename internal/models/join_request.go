package models

// JoinRequestStatus is the lifecycle state of a JoinRequest.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// JoinRequest is a user's request to become a member of a group.
// A user has at most one request per group; it starts PENDING and is
// decided once by the group admin.
type JoinRequest struct {
	// ID is the unique identifier for the request (UUID format).
	ID string

	// GroupID is the group the user wants to join.
	GroupID string

	// UserID is the requesting user.
	UserID string

	// Status is the current state of the request.
	Status JoinRequestStatus

	// CreatedAt is the Unix timestamp when the request was made.
	CreatedAt int64

	// UserName and GroupName are filled in by list queries for display.
	UserName  string
	GroupName string
}

// IsPending reports whether the request still awaits a decision.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JoinRequestPending
}
