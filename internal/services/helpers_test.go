package service_test

import (
	"testing"

	appErrors "github.com/PeterMetero/metero-store/internal/errors"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.Code)

	return appErr
}

func ptr[T any](v T) *T {
	return &v
}
