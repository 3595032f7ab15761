package grabbr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := grabbr.Errorf(grabbr.ENOTFOUND, "deck %q not found", "test")

	assert.Equal(t, grabbr.ENOTFOUND, grabbr.ErrorCode(err))
	assert.Equal(t, "deck \"test\" not found", grabbr.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, grabbr.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, grabbr.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving deck: %w", grabbr.Errorf(grabbr.ECONFLICT, "deck exists"))

	assert.Equal(t, grabbr.ECONFLICT, grabbr.ErrorCode(err))
	assert.Equal(t, "deck exists", grabbr.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, grabbr.EINTERNAL, grabbr.ErrorCode(err))
	assert.Equal(t, "Internal error.", grabbr.ErrorMessage(err))
}
