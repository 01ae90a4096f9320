package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrappedErrors(t *testing.T) {
	testcases := []struct {
		Name     string
		Err      error
		Target   error
		Expected string
	}{
		{
			Name:     "Unexpected type",
			Err:      WrapUnexpectedType("string", 42),
			Target:   ErrorUnexpectedType,
			Expected: "unexpected type: expected string, got int",
		},
		{
			Name:     "Not found",
			Err:      WrapNotFound("hunch", 37),
			Target:   ErrorNotFound,
			Expected: "record not found: hunch 37",
		},
		{
			Name:     "Invalid id",
			Err:      WrapInvalidID("abc"),
			Target:   ErrorInvalidID,
			Expected: `invalid id: "abc"`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			require.ErrorIs(t, testcase.Err, testcase.Target)
			require.EqualError(t, testcase.Err, testcase.Expected)
			require.False(t, errors.Is(testcase.Err, ErrorUnsupportedDriver))
		})
	}
}
