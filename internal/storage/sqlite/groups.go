package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

const groupColumns = "g.id, g.name, g.admin_id, g.created_at, g.last_drawn_at, g.draw_count"

// CreateGroup persists a new group and its admin membership in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, admin *models.Member) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, admin_id, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.AdminID, group.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("create group", err)
	}

	if admin != nil {
		admin.GroupID = group.ID
		if err := insertMember(ctx, tx, admin); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM groups g WHERE g.id = ?`, groupID)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// SearchGroups returns groups whose name contains query, ignoring case.
// An empty query matches nothing.
func (s *SQLiteStore) SearchGroups(ctx context.Context, query string) ([]*models.Group, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	return s.queryGroups(ctx,
		`SELECT `+groupColumns+` FROM groups g WHERE g.name LIKE ? ESCAPE '\' ORDER BY g.name`,
		"%"+escapeLike(query)+"%",
	)
}

// ListGroupsForUser returns the groups the user is a member of.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.queryGroups(ctx,
		`SELECT `+groupColumns+` FROM groups g
		 JOIN members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at, g.name`,
		userID,
	)
}

func (s *SQLiteStore) queryGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

func scanGroup(row scanner) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.AdminID, &group.CreatedAt, &group.LastDrawnAt, &group.DrawCount)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
