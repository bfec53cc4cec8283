package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"empty matches all", "", "%"},
		{"plain prefix", "run", "run%"},
		{"percent matches literally", "50%", `50\%%`},
		{"underscore matches literally", "a_b", `a\_b%`},
		{"backslash matches literally", `a\b`, `a\\b%`},
		{"case preserved", "Run", "Run%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likePrefix(tt.prefix))
		})
	}
}

func TestStoreError(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := &StoreError{Op: "list_clusters", Err: inner}

	assert.True(t, IsStoreError(err))
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "list_clusters")

	wrapped := &StoreError{Op: "outer", Err: err}
	assert.True(t, IsStoreError(wrapped))

	assert.False(t, IsStoreError(inner))
	assert.False(t, IsStoreError(nil))
	assert.False(t, IsStoreError(ErrNotFound))
}
