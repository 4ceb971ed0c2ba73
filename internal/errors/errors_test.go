package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenaforge/arena-api/internal/errors"
)

func TestWrapPreservesCode(t *testing.T) {
	base := errors.NotFound("session not found")
	wrapped := errors.Wrap(base, "failed to load session")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeNotFound, wrapped.Code)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to load session")
	assert.Contains(t, wrapped.Error(), "session not found")
}

func TestWrapPlainErrorDefaultsToInternal(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to dial")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.True(t, errors.IsInternal(wrapped))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing happened"))
}

func TestWrapWithCodeOverrides(t *testing.T) {
	wrapped := errors.WrapWithCode(fmt.Errorf("bad script"), errors.CodeInvalidArgument, "failed to load decider")

	require.NotNil(t, wrapped)
	assert.True(t, errors.IsInvalidArgument(wrapped))
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	wrapped := errors.Wrap(cause, "failed to append event")

	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.FailedPrecondition("session already started")
	b := errors.FailedPrecondition("no combat is running")

	// Two distinct instances with the same code compare as equivalent
	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, errors.NotFound("x")))
}

func TestWithMeta(t *testing.T) {
	err := errors.InvalidArgument("bad DC").WithMeta("dc", 99)

	require.NotNil(t, err.Meta)
	assert.Equal(t, 99, err.Meta["dc"])
}

func TestValidationBuilderEmptyBuildsNil(t *testing.T) {
	assert.NoError(t, errors.NewValidationBuilder().Build())
}

func TestValidationBuilderCollectsFields(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("Sequencer").
		Field("Timing.SessionDuration", "must be positive").
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Sequencer: is required")
	assert.Contains(t, err.Error(), "Timing.SessionDuration: must be positive")
}

func TestValidationBuilderFieldf(t *testing.T) {
	err := errors.NewValidationBuilder().
		Fieldf("STORAGE_BACKEND", "must be one of %s, %s", "memory", "redis").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of memory, redis")
}
