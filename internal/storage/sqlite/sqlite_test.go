package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// newTestStore opens a fresh database in a temp directory.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()

	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

// createGroupWithMembers creates a group administered by the first user with
// every user as a member.
func createGroupWithMembers(t *testing.T, store *SQLiteStore, name string, users ...*models.User) *models.Group {
	t.Helper()
	ctx := context.Background()

	group := &models.Group{Name: name, AdminID: users[0].ID}
	admin := &models.Member{UserID: users[0].ID, Name: users[0].DisplayName}
	if err := store.CreateGroup(ctx, group, admin); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, u := range users[1:] {
		if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: u.ID, Name: u.DisplayName}); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}
	return group
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")

	t.Run("GetUserByEmail finds user", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, alice.ID)
		}
		if got.DisplayName != "Alice" {
			t.Errorf("DisplayName mismatch: got %s, want Alice", got.DisplayName)
		}
	})

	t.Run("GetUserByID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("GetUsersByIDs omits unknown IDs", func(t *testing.T) {
		bob := createUser(t, store, "bob@example.com", "Bob")
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "missing"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 users, got %d", len(users))
		}
		if users[bob.ID] == nil || users[bob.ID].Email != "bob@example.com" {
			t.Errorf("Bob missing from result: %+v", users)
		}
	})
}

func TestGroupsAndMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	group := createGroupWithMembers(t, store, "Office Party", alice, bob)

	t.Run("CreateGroup generates ID and adds admin", func(t *testing.T) {
		if group.ID == "" {
			t.Fatal("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		ok, err := store.IsMember(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("IsMember failed: %v", err)
		}
		if !ok {
			t.Error("Expected admin to be a member")
		}
	})

	t.Run("duplicate group name is a conflict", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Office Party", AdminID: bob.ID}, nil)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("ListMembers keeps join order and guests", func(t *testing.T) {
		guest := &models.Member{GroupID: group.ID, Name: "Grandma"}
		if err := store.AddMember(ctx, guest); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}

		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 3 {
			t.Fatalf("expected 3 members, got %d", len(members))
		}
		if members[0].UserID != alice.ID || members[1].UserID != bob.ID {
			t.Errorf("unexpected order: %s, %s", members[0].Name, members[1].Name)
		}
		if members[2].HasAccount() {
			t.Errorf("guest should have no account, got %q", members[2].UserID)
		}
	})

	t.Run("user can be a member only once", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: bob.ID, Name: "Bob again"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("RemoveMember", func(t *testing.T) {
		m := &models.Member{GroupID: group.ID, Name: "Temporary"}
		if err := store.AddMember(ctx, m); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := store.RemoveMember(ctx, m.ID); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if _, err := store.GetMember(ctx, m.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after removal, got %v", err)
		}
		if err := store.RemoveMember(ctx, m.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second removal, got %v", err)
		}
	})

	t.Run("SearchGroups is case-insensitive substring match", func(t *testing.T) {
		createGroupWithMembers(t, store, "Family 100%", bob)

		tests := []struct {
			query string
			want  int
		}{
			{"office", 1},
			{"PARTY", 1},
			{"a", 2},
			{"100%", 1},
			{"%", 1},
			{"", 0},
			{"   ", 0},
			{"nothing", 0},
		}
		for _, tt := range tests {
			groups, err := store.SearchGroups(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchGroups(%q) failed: %v", tt.query, err)
			}
			if len(groups) != tt.want {
				t.Errorf("SearchGroups(%q) returned %d groups, want %d", tt.query, len(groups), tt.want)
			}
		}
	})

	t.Run("ListGroupsForUser", func(t *testing.T) {
		groups, err := store.ListGroupsForUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("expected only %s, got %+v", group.ID, groups)
		}
	})
}

func TestJoinRequests(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")
	group := createGroupWithMembers(t, store, "Book Club", alice)

	t.Run("GetOrCreateJoinRequest is idempotent", func(t *testing.T) {
		first, created, err := store.GetOrCreateJoinRequest(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GetOrCreateJoinRequest failed: %v", err)
		}
		if !created {
			t.Error("expected first request to be created")
		}
		if first.Status != models.JoinRequestPending {
			t.Errorf("expected PENDING, got %s", first.Status)
		}

		second, created, err := store.GetOrCreateJoinRequest(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GetOrCreateJoinRequest failed: %v", err)
		}
		if created {
			t.Error("expected second request to reuse the first")
		}
		if second.ID != first.ID {
			t.Errorf("ID mismatch: got %s, want %s", second.ID, first.ID)
		}
	})

	t.Run("ListPendingJoinRequests for admin", func(t *testing.T) {
		if _, _, err := store.GetOrCreateJoinRequest(ctx, group.ID, carol.ID); err != nil {
			t.Fatalf("GetOrCreateJoinRequest failed: %v", err)
		}

		requests, err := store.ListPendingJoinRequests(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListPendingJoinRequests failed: %v", err)
		}
		if len(requests) != 2 {
			t.Fatalf("expected 2 pending requests, got %d", len(requests))
		}
		if requests[0].UserName != "Bob" || requests[0].GroupName != "Book Club" {
			t.Errorf("names not filled in: %+v", requests[0])
		}

		none, err := store.ListPendingJoinRequests(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListPendingJoinRequests failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("non-admin should see no requests, got %d", len(none))
		}
	})

	t.Run("AcceptJoinRequest adds member once", func(t *testing.T) {
		req, _, _ := store.GetOrCreateJoinRequest(ctx, group.ID, bob.ID)
		member := &models.Member{GroupID: group.ID, UserID: bob.ID, Name: bob.DisplayName}
		if err := store.AcceptJoinRequest(ctx, req.ID, member); err != nil {
			t.Fatalf("AcceptJoinRequest failed: %v", err)
		}

		ok, _ := store.IsMember(ctx, group.ID, bob.ID)
		if !ok {
			t.Error("expected Bob to be a member")
		}

		got, err := store.GetJoinRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetJoinRequest failed: %v", err)
		}
		if got.Status != models.JoinRequestAccepted {
			t.Errorf("expected ACCEPTED, got %s", got.Status)
		}

		err = store.AcceptJoinRequest(ctx, req.ID, &models.Member{GroupID: group.ID, UserID: bob.ID, Name: "Bob"})
		if !errors.Is(err, storage.ErrNotPending) {
			t.Errorf("expected ErrNotPending, got %v", err)
		}
	})

	t.Run("RejectJoinRequest", func(t *testing.T) {
		req, _, _ := store.GetOrCreateJoinRequest(ctx, group.ID, carol.ID)
		if err := store.RejectJoinRequest(ctx, req.ID); err != nil {
			t.Fatalf("RejectJoinRequest failed: %v", err)
		}

		ok, _ := store.IsMember(ctx, group.ID, carol.ID)
		if ok {
			t.Error("rejected user must not become a member")
		}
		if err := store.RejectJoinRequest(ctx, req.ID); !errors.Is(err, storage.ErrNotPending) {
			t.Errorf("expected ErrNotPending, got %v", err)
		}
	})
}

var errSkipDraw = errors.New("skip draw")

func TestAssignments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")
	group := createGroupWithMembers(t, store, "Secret Santa", alice, bob, carol)

	fixed := func(set []*models.Assignment) storage.DrawFunc {
		return func([]*models.Member) ([]*models.Assignment, error) { return set, nil }
	}
	cycle := func(a, b, c *models.User, at int64) storage.DrawFunc {
		return fixed([]*models.Assignment{
			{GroupID: group.ID, GiverID: a.ID, ReceiverID: b.ID, CreatedAt: at},
			{GroupID: group.ID, GiverID: b.ID, ReceiverID: c.ID, CreatedAt: at},
			{GroupID: group.ID, GiverID: c.ID, ReceiverID: a.ID, CreatedAt: at},
		})
	}

	t.Run("ReplaceAssignments replaces whole set", func(t *testing.T) {
		if err := store.ReplaceAssignments(ctx, group.ID, cycle(alice, bob, carol, 100)); err != nil {
			t.Fatalf("first ReplaceAssignments failed: %v", err)
		}
		if err := store.ReplaceAssignments(ctx, group.ID, cycle(alice, carol, bob, 200)); err != nil {
			t.Fatalf("second ReplaceAssignments failed: %v", err)
		}

		n, err := store.CountAssignments(ctx, group.ID)
		if err != nil {
			t.Fatalf("CountAssignments failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 assignments after two draws, got %d", n)
		}

		mine, err := store.ListAssignmentsByGiver(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("ListAssignmentsByGiver failed: %v", err)
		}
		if len(mine) != 1 || mine[0].ReceiverID != carol.ID {
			t.Errorf("expected Alice -> Carol from the second draw, got %+v", mine)
		}

		g, _ := store.GetGroup(ctx, group.ID)
		if g.DrawCount != 2 || g.LastDrawnAt != 200 {
			t.Errorf("draw bookkeeping: count=%d last=%d", g.DrawCount, g.LastDrawnAt)
		}
	})

	t.Run("failed replacement keeps previous set", func(t *testing.T) {
		bad := []*models.Assignment{
			{GroupID: group.ID, GiverID: alice.ID, ReceiverID: bob.ID, CreatedAt: 300},
			{GroupID: group.ID, GiverID: bob.ID, ReceiverID: bob.ID, CreatedAt: 300},
		}
		if err := store.ReplaceAssignments(ctx, group.ID, fixed(bad)); err == nil {
			t.Fatal("expected self pair to be rejected by the database")
		}

		mine, _ := store.ListAssignmentsByGiver(ctx, group.ID, alice.ID)
		if len(mine) != 1 || mine[0].ReceiverID != carol.ID {
			t.Errorf("previous set not intact: %+v", mine)
		}
		n, _ := store.CountAssignments(ctx, group.ID)
		if n != 3 {
			t.Errorf("expected 3 assignments, got %d", n)
		}
	})

	t.Run("draw sees the current roster", func(t *testing.T) {
		var seen []*models.Member
		err := store.ReplaceAssignments(ctx, group.ID, func(members []*models.Member) ([]*models.Assignment, error) {
			seen = members
			return nil, errSkipDraw
		})
		if !errors.Is(err, errSkipDraw) {
			t.Fatalf("expected draw error to be returned unchanged, got %v", err)
		}
		if len(seen) != 3 {
			t.Fatalf("expected 3 members, got %d", len(seen))
		}
		for _, m := range seen {
			if m.GroupID != group.ID {
				t.Errorf("member %s belongs to %s", m.ID, m.GroupID)
			}
		}

		g, _ := store.GetGroup(ctx, group.ID)
		if g.DrawCount != 2 {
			t.Errorf("a failed draw must not be counted, got %d", g.DrawCount)
		}
		n, _ := store.CountAssignments(ctx, group.ID)
		if n != 3 {
			t.Errorf("expected previous 3 assignments, got %d", n)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		err := store.ReplaceAssignments(ctx, "missing", fixed(nil))
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListAssignmentViews joins names", func(t *testing.T) {
		views, err := store.ListAssignmentViews(ctx, bob.ID, "")
		if err != nil {
			t.Fatalf("ListAssignmentViews failed: %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 view, got %d", len(views))
		}
		if views[0].ReceiverName != "Alice" || views[0].GroupName != "Secret Santa" {
			t.Errorf("unexpected view: %+v", views[0])
		}

		none, err := store.ListAssignmentViews(ctx, bob.ID, "other-group")
		if err != nil {
			t.Fatalf("ListAssignmentViews failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no views for other group, got %d", len(none))
		}
	})
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\x`, `c:\\x`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
