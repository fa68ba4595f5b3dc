package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefiner struct {
	calls  int
	result []string
	err    error
}

func (r *countingRefiner) Refine(_ context.Context, _, _ string, _ []string) ([]string, error) {
	r.calls++
	return r.result, r.err
}

func TestPassthroughRefiner(t *testing.T) {
	in := []string{"agriculture", "water"}

	out, err := PassthroughRefiner{}.Refine(context.Background(), "n", "d", in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out[0] = "changed"
	assert.Equal(t, "agriculture", in[0], "result must not alias input")
}

func TestNewCachingRefiner_RequiresRefiner(t *testing.T) {
	_, err := NewCachingRefiner(nil, time.Minute)
	assert.ErrorIs(t, err, ErrRefinerRequired)
}

func TestCachingRefiner(t *testing.T) {
	ctx := context.Background()

	t.Run("caches successful answers", func(t *testing.T) {
		next := &countingRefiner{result: []string{"water"}}
		c, err := NewCachingRefiner(next, time.Minute)
		require.NoError(t, err)

		for range 3 {
			out, err := c.Refine(ctx, "Irrigation", "water systems", []string{"irrigation"})
			require.NoError(t, err)
			assert.Equal(t, []string{"water"}, out)
		}
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("distinguishes inputs", func(t *testing.T) {
		next := &countingRefiner{result: []string{"water"}}
		c, err := NewCachingRefiner(next, time.Minute)
		require.NoError(t, err)

		_, _ = c.Refine(ctx, "a", "b", []string{"x"})
		_, _ = c.Refine(ctx, "a", "b", []string{"y"})
		_, _ = c.Refine(ctx, "ab", "", []string{"x"})
		assert.Equal(t, 3, next.calls)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		next := &countingRefiner{err: errors.New("unavailable")}
		c, err := NewCachingRefiner(next, time.Minute)
		require.NoError(t, err)

		_, err = c.Refine(ctx, "a", "b", nil)
		require.Error(t, err)
		_, err = c.Refine(ctx, "a", "b", nil)
		require.Error(t, err)

		assert.Equal(t, 2, next.calls)
		assert.Zero(t, c.Len())
	})

	t.Run("flush", func(t *testing.T) {
		next := &countingRefiner{result: []string{"water"}}
		c, err := NewCachingRefiner(next, time.Minute)
		require.NoError(t, err)

		_, _ = c.Refine(ctx, "a", "b", nil)
		c.Flush()
		_, _ = c.Refine(ctx, "a", "b", nil)
		assert.Equal(t, 2, next.calls)
	})
}

func TestCacheKey(t *testing.T) {
	base := cacheKey("Irrigation System Grant", "Funding for water pipes", []string{"agriculture", "water"})

	assert.Len(t, base, 32)
	assert.Equal(t, base, cacheKey("Irrigation System Grant", "Funding for water pipes", []string{"agriculture", "water"}))

	long := cacheKey("Irrigation System Grant", strings.Repeat("water pipes ", 1000), nil)
	assert.Len(t, long, 32, "key size must not grow with the input")

	others := []string{
		cacheKey("Irrigation System Grant", "Funding for water pipes", []string{"water"}),
		cacheKey("Irrigation System Grant", "Funding for water pipes", []string{"agriculture,water"}),
		cacheKey("Irrigation System Grant", "Funding for water pipes", nil),
		cacheKey("Irrigation System GrantFunding", " for water pipes", []string{"agriculture", "water"}),
		cacheKey("", "", nil),
	}
	for _, other := range others {
		assert.NotEqual(t, base, other)
	}
}
