package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg, "test")
	require.NoError(t, err)

	p.RecordDraw(OutcomeOK, 3, 5*time.Millisecond)
	p.RecordDraw(OutcomeOK, 1, time.Millisecond)
	p.RecordDraw(OutcomeInsufficientMembers, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.draws.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.draws.WithLabelValues(OutcomeInsufficientMembers)))
	assert.Equal(t, 1, testutil.CollectAndCount(p.attempts))

	t.Run("double registration fails", func(t *testing.T) {
		_, err := NewPrometheus(reg, "test")
		assert.Error(t, err)
	})
}

func TestNop(t *testing.T) {
	NewNop().RecordDraw(OutcomeOK, 1, time.Second)
}
