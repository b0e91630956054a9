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

const joinRequestColumns = "r.id, r.group_id, r.user_id, r.status, r.created_at"

// GetOrCreateJoinRequest returns the user's existing request for the group or
// creates a pending one.
func (s *SQLiteStore) GetOrCreateJoinRequest(ctx context.Context, groupID, userID string) (*models.JoinRequest, bool, error) {
	req := &models.JoinRequest{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		UserID:    userID,
		Status:    models.JoinRequestPending,
		CreatedAt: time.Now().Unix(),
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO join_requests (id, group_id, user_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		req.ID, req.GroupID, req.UserID, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create join request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to check join request: %w", err)
	}
	if n == 1 {
		return req, true, nil
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+joinRequestColumns+` FROM join_requests r WHERE r.group_id = ? AND r.user_id = ?`,
		groupID, userID,
	)
	existing, err := scanJoinRequest(row)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get join request: %w", err)
	}
	return existing, false, nil
}

// GetJoinRequest retrieves a join request by ID.
func (s *SQLiteStore) GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+joinRequestColumns+` FROM join_requests r WHERE r.id = ?`,
		requestID,
	)
	req, err := scanJoinRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("join request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return req, nil
}

// ListPendingJoinRequests returns pending requests for every group adminID administers,
// oldest first, with user and group names filled in.
func (s *SQLiteStore) ListPendingJoinRequests(ctx context.Context, adminID string) ([]*models.JoinRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+joinRequestColumns+`, u.display_name, g.name
		 FROM join_requests r
		 JOIN groups g ON g.id = r.group_id
		 JOIN users u ON u.id = r.user_id
		 WHERE g.admin_id = ? AND r.status = ?
		 ORDER BY r.created_at, r.rowid`,
		adminID, string(models.JoinRequestPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.JoinRequest
	for rows.Next() {
		req := &models.JoinRequest{}
		var status string
		if err := rows.Scan(&req.ID, &req.GroupID, &req.UserID, &status, &req.CreatedAt, &req.UserName, &req.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}
		req.Status = models.JoinRequestStatus(status)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate join requests: %w", err)
	}

	return requests, nil
}

// AcceptJoinRequest marks the request accepted and inserts the new member.
func (s *SQLiteStore) AcceptJoinRequest(ctx context.Context, requestID string, member *models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := decideJoinRequest(ctx, tx, requestID, models.JoinRequestAccepted); err != nil {
		return err
	}
	if err := insertMember(ctx, tx, member); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RejectJoinRequest marks the request rejected.
func (s *SQLiteStore) RejectJoinRequest(ctx context.Context, requestID string) error {
	return decideJoinRequest(ctx, s.db, requestID, models.JoinRequestRejected)
}

func decideJoinRequest(ctx context.Context, db execer, requestID string, status models.JoinRequestStatus) error {
	res, err := db.ExecContext(ctx,
		"UPDATE join_requests SET status = ? WHERE id = ? AND status = ?",
		string(status), requestID, string(models.JoinRequestPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check join request update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("join request %s: %w", requestID, storage.ErrNotPending)
	}
	return nil
}

func scanJoinRequest(row scanner) (*models.JoinRequest, error) {
	req := &models.JoinRequest{}
	var status string
	if err := row.Scan(&req.ID, &req.GroupID, &req.UserID, &status, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.Status = models.JoinRequestStatus(status)
	return req, nil
}
