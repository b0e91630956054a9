package pairing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// Store is the persistence the engine needs.
// ReplaceAssignments must read the roster and write the new set in one
// transaction, returning draw's error unchanged.
type Store interface {
	ReplaceAssignments(ctx context.Context, groupID string, draw storage.DrawFunc) error
	ListAssignmentsByGiver(ctx context.Context, groupID, giverID string) ([]*models.Assignment, error)
}

// Result describes a completed draw.
type Result struct {
	GroupID     string
	Assignments []*models.Assignment
	// Skipped are guest members without an account; they take no part in the draw.
	Skipped  []*models.Member
	Attempts int
}

// Engine runs draws for groups.
// It is safe for concurrent use; runs for the same group are serialized.
type Engine struct {
	store       Store
	source      Source
	maxAttempts int
	metrics     metrics.DrawRecorder
	logger      *slog.Logger
	now         func() time.Time

	locks *groupLocker
	// srcMu guards source, which may be a non-concurrent *rand.Rand.
	srcMu sync.Mutex
}

// NewEngine creates an Engine backed by store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		source:      globalSource{},
		maxAttempts: DefaultMaxAttempts,
		metrics:     metrics.NewNop(),
		logger:      slog.Default(),
		now:         time.Now,
		locks:       newGroupLocker(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run draws a new pairing for the group and replaces its previous assignments.
//
// Errors wrap ErrInsufficientMembers, ErrUnresolvableAfterRetries or
// ErrPersistence; on any error the stored assignments are unchanged.
func (e *Engine) Run(ctx context.Context, groupID string) (*Result, error) {
	start := e.now()
	res, err := e.run(ctx, groupID)

	attempts := 0
	if res != nil {
		attempts = res.Attempts
	}
	e.metrics.RecordDraw(outcomeOf(err), attempts, e.now().Sub(start))

	if err != nil {
		e.logger.Warn("Draw failed", "group_id", groupID, "error", err)
		return nil, err
	}
	e.logger.Info("Draw completed",
		"group_id", groupID,
		"assignments", len(res.Assignments),
		"skipped", len(res.Skipped),
		"attempts", res.Attempts,
	)
	return res, nil
}

func (e *Engine) run(ctx context.Context, groupID string) (*Result, error) {
	unlock, err := e.locks.lock(ctx, groupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		res     *Result
		drawErr error
	)
	err = e.store.ReplaceAssignments(ctx, groupID, func(members []*models.Member) ([]*models.Assignment, error) {
		res, drawErr = e.plan(groupID, members)
		if drawErr != nil {
			return nil, drawErr
		}
		return res.Assignments, nil
	})
	if drawErr != nil {
		return nil, drawErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return res, nil
}

// plan draws a pairing over the members with an account.
func (e *Engine) plan(groupID string, members []*models.Member) (*Result, error) {
	var accounts []string
	var skipped []*models.Member
	for _, m := range members {
		if !m.HasAccount() {
			skipped = append(skipped, m)
			continue
		}
		accounts = append(accounts, m.UserID)
	}

	outcome, err := e.draw(accounts)
	if err != nil {
		return nil, err
	}

	createdAt := e.now().Unix()
	assignments := make([]*models.Assignment, len(outcome.Pairs))
	for i, p := range outcome.Pairs {
		assignments[i] = &models.Assignment{
			GroupID:    groupID,
			GiverID:    p.Giver,
			ReceiverID: p.Receiver,
			CreatedAt:  createdAt,
		}
	}

	return &Result{
		GroupID:     groupID,
		Assignments: assignments,
		Skipped:     skipped,
		Attempts:    outcome.Attempts,
	}, nil
}

func (e *Engine) draw(accounts []string) (*Outcome, error) {
	e.srcMu.Lock()
	defer e.srcMu.Unlock()
	return Draw(accounts, e.source, e.maxAttempts)
}

// AssignmentsFor returns the assignments of the group where accountID is the giver.
func (e *Engine) AssignmentsFor(ctx context.Context, groupID, accountID string) ([]*models.Assignment, error) {
	return e.store.ListAssignmentsByGiver(ctx, groupID, accountID)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrInsufficientMembers):
		return metrics.OutcomeInsufficientMembers
	case errors.Is(err, ErrUnresolvableAfterRetries):
		return metrics.OutcomeUnresolvable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomePersistenceError
	}
}
