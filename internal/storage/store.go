// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/secretsanta/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness rule
	// (duplicate email, group name, membership or join request).
	ErrConflict = errors.New("already exists")

	// ErrNotPending is returned when deciding a join request that was already decided.
	ErrNotPending = errors.New("join request is not pending")
)

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	JoinRequestStore
	AssignmentStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsersByIDs returns a map of user ID to User; unknown IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// GroupStore persists groups and their members.
type GroupStore interface {
	// CreateGroup persists a new group together with its admin's membership.
	// The group.ID and admin.ID fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group, admin *models.Member) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// SearchGroups matches query case-insensitively against group names.
	SearchGroups(ctx context.Context, query string) ([]*models.Group, error)
	// ListGroupsForUser returns the groups userID is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	// ListMembers returns the group's members in the order they joined.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	RemoveMember(ctx context.Context, memberID string) error
}

// JoinRequestStore persists join requests.
type JoinRequestStore interface {
	// GetOrCreateJoinRequest returns the user's request for the group, creating
	// a pending one if none exists. created reports whether it was new.
	GetOrCreateJoinRequest(ctx context.Context, groupID, userID string) (req *models.JoinRequest, created bool, err error)
	GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error)
	// ListPendingJoinRequests returns pending requests for groups administered by adminID.
	ListPendingJoinRequests(ctx context.Context, adminID string) ([]*models.JoinRequest, error)
	// AcceptJoinRequest marks a pending request accepted and adds member in one transaction.
	AcceptJoinRequest(ctx context.Context, requestID string, member *models.Member) error
	// RejectJoinRequest marks a pending request rejected.
	RejectJoinRequest(ctx context.Context, requestID string) error
}

// DrawFunc turns a group's current members into its new assignment set.
type DrawFunc func(members []*models.Member) ([]*models.Assignment, error)

// AssignmentStore persists draw results.
type AssignmentStore interface {
	// ReplaceAssignments loads the group's members, passes them to draw and
	// swaps the group's assignment set for the result, all in one transaction.
	// An error from draw is returned unchanged and nothing is written.
	ReplaceAssignments(ctx context.Context, groupID string, draw DrawFunc) error
	ListAssignmentsByGiver(ctx context.Context, groupID, giverID string) ([]*models.Assignment, error)
	// ListAssignmentViews returns the giver's assignments across all groups,
	// or within groupID when it is non-empty, joined with display names.
	ListAssignmentViews(ctx context.Context, giverID, groupID string) ([]*models.AssignmentView, error)
	CountAssignments(ctx context.Context, groupID string) (int, error)
}
