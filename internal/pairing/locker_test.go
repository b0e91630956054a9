package pairing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGroupLocker(t *testing.T) {
	l := newGroupLocker()
	ctx := context.Background()

	unlockA, err := l.lock(ctx, "group-a")
	require.NoError(t, err)

	t.Run("other groups are independent", func(t *testing.T) {
		unlockB, err := l.lock(ctx, "group-b")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("same group waits and honors context", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := l.lock(waitCtx, "group-a")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("released slot can be taken again", func(t *testing.T) {
		acquired := make(chan struct{})
		go func() {
			unlock, err := l.lock(ctx, "group-a")
			if err == nil {
				unlock()
			}
			close(acquired)
		}()

		unlockA()
		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("waiter did not acquire the released lock")
		}
	})
}

func TestGroupLocker_EvictsIdleSlots(t *testing.T) {
	l := newGroupLocker()
	ctx := context.Background()

	unlock, err := l.lock(ctx, "group-a")
	require.NoError(t, err)
	require.Equal(t, 1, l.size())

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = l.lock(waitCtx, "group-a")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, l.size(), "a timed-out waiter must not drop the held slot")

	unlock()
	require.Equal(t, 0, l.size())

	for i := 0; i < 50; i++ {
		unlock, err := l.lock(ctx, fmt.Sprintf("group-%d", i))
		require.NoError(t, err)
		unlock()
	}
	require.Equal(t, 0, l.size())
}
