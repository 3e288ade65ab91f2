package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentopia/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("check_out must be after check_in"),
			code:    http.StatusBadRequest,
			message: "check_out must be after check_in",
		},
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("place is already booked for these dates")),
			code:    http.StatusBadRequest,
			message: "place is already booked for these dates",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("login required"),
			code:    http.StatusUnauthorized,
			message: "login required",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("subscription required"),
			code:    http.StatusForbidden,
			message: "subscription required",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking"),
			code:    http.StatusNotFound,
			message: "booking",
		},
		{
			name:    "unprocessable",
			err:     failure.Unprocessable("booking already reviewed"),
			code:    http.StatusUnprocessableEntity,
			message: "booking already reviewed",
		},
		{
			name:    "forbidden sentinel",
			err:     failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			require.ErrorAs(t, tt.err, &fail)

			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.IsFailure(tt.err))
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.NotFound("place"), want: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("loading place: %w", failure.Forbidden("not your place")), want: http.StatusForbidden},
		{name: "plain error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIsFailure(t *testing.T) {
	assert.True(t, failure.IsFailure(fmt.Errorf("wrap: %w", failure.Unprocessable("too early"))))
	assert.False(t, failure.IsFailure(errors.New("boom")))
	assert.False(t, failure.IsFailure(nil))
}
