package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// ReplaceAssignments swaps the group's assignment set for the one draw builds
// from the current members.
//
// The transaction takes the write lock at BEGIN, so the roster draw sees
// cannot change before the new set is committed. Readers see either the old
// set or the new one, never a mix.
func (s *SQLiteStore) ReplaceAssignments(ctx context.Context, groupID string, draw storage.DrawFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	members, err := listMembers(ctx, tx, groupID)
	if err != nil {
		return err
	}
	assignments, err := draw(members)
	if err != nil {
		return err
	}

	var drawnAt int64
	if len(assignments) > 0 {
		drawnAt = assignments[0].CreatedAt
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE groups SET last_drawn_at = ?, draw_count = draw_count + 1 WHERE id = ?",
		drawnAt, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to lock group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete previous assignments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO assignments (id, group_id, giver_id, receiver_id, created_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.GroupID != groupID {
			return fmt.Errorf("assignment for group %s in draw of %s", a.GroupID, groupID)
		}
		if _, err := stmt.ExecContext(ctx, a.ID, groupID, a.GiverID, a.ReceiverID, a.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListAssignmentsByGiver returns the giver's assignments in the group.
func (s *SQLiteStore) ListAssignmentsByGiver(ctx context.Context, groupID, giverID string) ([]*models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, giver_id, receiver_id, created_at FROM assignments
		 WHERE group_id = ? AND giver_id = ?`,
		groupID, giverID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{}
		if err := rows.Scan(&a.ID, &a.GroupID, &a.GiverID, &a.ReceiverID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// ListAssignmentViews returns the giver's assignments with group and receiver
// names. An empty groupID lists all groups.
func (s *SQLiteStore) ListAssignmentViews(ctx context.Context, giverID, groupID string) ([]*models.AssignmentView, error) {
	query := `SELECT a.id, a.group_id, a.giver_id, a.receiver_id, a.created_at, g.name, u.display_name
		 FROM assignments a
		 JOIN groups g ON g.id = a.group_id
		 JOIN users u ON u.id = a.receiver_id
		 WHERE a.giver_id = ?`
	args := []any{giverID}
	if groupID != "" {
		query += " AND a.group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY g.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment views: %w", err)
	}
	defer rows.Close()

	var views []*models.AssignmentView
	for rows.Next() {
		v := &models.AssignmentView{}
		if err := rows.Scan(&v.ID, &v.GroupID, &v.GiverID, &v.ReceiverID, &v.CreatedAt, &v.GroupName, &v.ReceiverName); err != nil {
			return nil, fmt.Errorf("failed to scan assignment view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignment views: %w", err)
	}

	return views, nil
}

// CountAssignments returns the size of the group's current assignment set.
func (s *SQLiteStore) CountAssignments(ctx context.Context, groupID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assignments WHERE group_id = ?", groupID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}
