package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "custodia/pkg/domain-errors"
)

func TestHasCode(t *testing.T) {
	err := dErrors.New(dErrors.CodeNotFound, "customer %s not found", "cust-001")

	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.False(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.False(t, dErrors.HasCode(nil, dErrors.CodeNotFound))
	assert.False(t, dErrors.HasCode(errors.New("plain"), dErrors.CodeNotFound))
}

func TestHasCodeSeesThroughWrapping(t *testing.T) {
	inner := dErrors.New(dErrors.CodeConflict, "card exists")
	wrapped := fmt.Errorf("executing command: %w", inner)

	assert.True(t, dErrors.HasCode(wrapped, dErrors.CodeConflict))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(cause, dErrors.CodeInternal, "failed to load customer")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to load customer")
}

func TestCodeOfUnknownError(t *testing.T) {
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("plain")))
}
