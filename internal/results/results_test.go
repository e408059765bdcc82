package results

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationResult(t *testing.T) {
	ok := SuccessResult[int, error](7)
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsFailure())
	assert.Equal(t, 7, *ok.Success)

	failErr := errors.New("nope")
	bad := FailureResult[int, error](failErr)
	assert.True(t, bad.IsFailure())
	assert.False(t, bad.IsSuccess())
	assert.ErrorIs(t, *bad.Failure, failErr)

	var zero OperationResult[int, error]
	assert.False(t, zero.IsSuccess())
	assert.False(t, zero.IsFailure())
}

func TestMap(t *testing.T) {
	doubled := Map(SuccessResult[int, error](21), func(v int) int { return v * 2 })
	assert.Equal(t, 42, *doubled.Success)

	failErr := errors.New("nope")
	mapped := Map(FailureResult[int, error](failErr), func(v int) string { return "unused" })
	assert.True(t, mapped.IsFailure())
	assert.Nil(t, mapped.Success)

	empty := Map(OperationResult[int, error]{}, func(v int) int { return v })
	assert.False(t, empty.IsSuccess())
	assert.False(t, empty.IsFailure())
}
