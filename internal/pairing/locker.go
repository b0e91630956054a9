package pairing

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
)

// groupLocker serializes work per group id. Different ids never contend.
// A slot lives only while someone holds or waits for it.
type groupLocker struct {
	slots *xsync.Map[string, *lockSlot]
}

type lockSlot struct {
	ch chan struct{}
	// refs counts holders and waiters; only touched inside Compute.
	refs int
}

func newGroupLocker() *groupLocker {
	return &groupLocker{slots: xsync.NewMap[string, *lockSlot]()}
}

// lock blocks until the group's slot is free or ctx is done.
// The returned function releases the slot.
func (l *groupLocker) lock(ctx context.Context, groupID string) (func(), error) {
	slot, _ := l.slots.Compute(groupID, func(s *lockSlot, loaded bool) (*lockSlot, xsync.ComputeOp) {
		if !loaded {
			s = &lockSlot{ch: make(chan struct{}, 1)}
		}
		s.refs++
		return s, xsync.UpdateOp
	})

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			l.release(groupID)
		}, nil
	case <-ctx.Done():
		l.release(groupID)
		return nil, ctx.Err()
	}
}

func (l *groupLocker) release(groupID string) {
	l.slots.Compute(groupID, func(s *lockSlot, loaded bool) (*lockSlot, xsync.ComputeOp) {
		if !loaded {
			return s, xsync.CancelOp
		}
		s.refs--
		if s.refs == 0 {
			return s, xsync.DeleteOp
		}
		return s, xsync.UpdateOp
	})
}

// size reports the number of live slots.
func (l *groupLocker) size() int {
	return l.slots.Size()
}
