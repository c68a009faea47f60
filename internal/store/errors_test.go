package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic", ErrNotFound, true},
		{"post", ErrPostNotFound, true},
		{"comment", ErrCommentNotFound, true},
		{"tag", ErrTagNotFound, true},
		{"wrapped", fmt.Errorf("get post: %w", ErrPostNotFound), true},
		{"store error", NewStoreError("tag", "get", "missing", ErrTagNotFound), true},
		{"duplicate", ErrSlugExists, false},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrSlugExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrTagSlugExists)))
	assert.False(t, IsDuplicateError(ErrPostNotFound))
}

func TestStoreError(t *testing.T) {
	withCause := NewStoreError("post", "create", "insert failed", ErrSlugExists)
	assert.Equal(t, "create operation on post failed: insert failed: entity already exists: post slug", withCause.Error())
	assert.ErrorIs(t, withCause, ErrDuplicate)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", withCause), &se))
	assert.Equal(t, "post", se.Entity)

	bare := NewStoreError("tag", "delete", "no rows", nil)
	assert.Equal(t, "delete operation on tag failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
