package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := New(0, 0)
		require.NoError(t, err)
		assert.Equal(t, Params{Page: 1, Limit: 20}, p)
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("offset", func(t *testing.T) {
		p, err := New(3, 25)
		require.NoError(t, err)
		assert.Equal(t, 50, p.Offset())
	})

	t.Run("limit bounds", func(t *testing.T) {
		_, err := New(1, 100)
		assert.NoError(t, err)

		_, err = New(1, 101)
		assert.True(t, errors.Is(err, ErrInvalid))

		_, err = New(1, -1)
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	t.Run("negative page", func(t *testing.T) {
		_, err := New(-2, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page")
	})
}

func TestParse(t *testing.T) {
	p, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	p, err = Parse("2", "5")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 2, Limit: 5}, p)

	for _, tc := range []struct{ page, limit string }{
		{"abc", ""},
		{"", "1.5"},
		{"0", "10"},
		{"1", "0"},
		{"1", "500"},
	} {
		_, err := Parse(tc.page, tc.limit)
		assert.ErrorIs(t, err, ErrInvalid, "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestNewPage_HasMoreHeuristic(t *testing.T) {
	p := Params{Page: 1, Limit: 3}

	full := NewPage([]int{1, 2, 3}, p)
	assert.True(t, full.HasMore)

	short := NewPage([]int{1, 2}, p)
	assert.False(t, short.HasMore)

	empty := NewPage[int](nil, Params{Page: 2, Limit: 3})
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasMore)
	assert.Equal(t, 2, empty.Page)
}
