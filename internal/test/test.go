// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/gram"
)

// AsError requires e to be (or wrap) *gram.Error and returns it.
func AsError(t testing.TB, e error) *gram.Error {
	t.Helper()
	var ge *gram.Error
	require.Truef(t, errors.As(e, &ge), "expecting *gram.Error, got %v", e)
	return ge
}

// ExpectErrorCode requires e to be *gram.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	require.Equalf(t, expected, AsError(t, e).Code, "unexpected error: %v", e)
}

// ExpectErrorClass requires e to be *gram.Error of expected class.
func ExpectErrorClass(t testing.TB, class int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error of class %d", class)
	require.Equalf(t, class, AsError(t, e).Class(), "unexpected error: %v", e)
}
