package benchutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestPercentile(t *testing.T) {
	vs := make([]time.Duration, 0, 100)
	for i := 100; i >= 1; i-- {
		vs = append(vs, time.Duration(i)*time.Millisecond)
	}

	assert.Equal(t, 50*time.Millisecond, Percentile(vs, 0.50))
	assert.Equal(t, 95*time.Millisecond, Percentile(vs, 0.95))
	assert.Equal(t, 100*time.Millisecond, Percentile(vs, 1))
	assert.Equal(t, time.Millisecond, Percentile(vs, 0))
	assert.Zero(t, Percentile(nil, 0.5))
	// 入参不被排序
	assert.Equal(t, 100*time.Millisecond, vs[0])
}

func TestSummarize(t *testing.T) {
	s := Summarize([]time.Duration{time.Millisecond, 3 * time.Millisecond})
	assert.Equal(t, 2, s.Samples)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Contains(t, s.String(), "samples=2")

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestEnvInt(t *testing.T) {
	t.Setenv("BENCH_N", "42")
	assert.Equal(t, 42, EnvInt("BENCH_N", 7))

	t.Setenv("BENCH_N", "-1")
	assert.Equal(t, 7, EnvInt("BENCH_N", 7))

	t.Setenv("BENCH_N", "abc")
	assert.Equal(t, 7, EnvInt("BENCH_N", 7))
	assert.Equal(t, 7, EnvInt("BENCH_UNSET", 7))
}

func TestSeedUsers(t *testing.T) {
	db := testutil.NewDB(t)

	users, err := SeedUsers(context.Background(), db, "fan", 3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.NotZero(t, u.ID)
		assert.Contains(t, u.Username, "fan_")
	}
	assert.NotEqual(t, users[0].Username, users[1].Username)
}
