package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// AddMember adds a member to an existing group.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	return insertMember(ctx, s.db, member)
}

func insertMember(ctx context.Context, db execer, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO members (id, group_id, user_id, name, created_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.GroupID, nullable(member.UserID), member.Name, member.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("add member", err)
	}
	return nil
}

// GetMember retrieves a membership record by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, user_id, name, created_at FROM members WHERE id = ?",
		memberID,
	)
	member, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers returns the group's members ordered by join time.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	return listMembers(ctx, s.db, groupID)
}

func listMembers(ctx context.Context, db querier, groupID string) ([]*models.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, group_id, user_id, name, created_at FROM members
		 WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// IsMember reports whether the user has a membership in the group.
func (s *SQLiteStore) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// RemoveMember deletes a membership record.
func (s *SQLiteStore) RemoveMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed member: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return nil
}

func scanMember(row scanner) (*models.Member, error) {
	member := &models.Member{}
	var userID sql.NullString
	if err := row.Scan(&member.ID, &member.GroupID, &userID, &member.Name, &member.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		member.UserID = userID.String
	}
	return member, nil
}
