package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/internal/auth"
	"github.com/mmynk/neondara/internal/calculator"
	"github.com/mmynk/neondara/internal/middleware"
	"github.com/mmynk/neondara/internal/storage"
	"github.com/mmynk/neondara/internal/validation"
)

// requireUser returns the authenticated owner's ID set by the auth interceptor.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// invalidArgument wraps a boundary problem found outside the validator.
func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", validation.ErrInvalid, fmt.Sprintf(format, args...))
}

// toConnectError maps domain and storage errors to connect codes.
// Internal errors are logged; the rest are expected and only logged at debug.
func toConnectError(logger *slog.Logger, op string, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := codeFor(err)
	if code == connect.CodeInternal {
		logger.Error(op+" failed", "error", err)
		return connect.NewError(code, errors.New("internal error"))
	}
	logger.Debug(op+" rejected", "code", code.String(), "error", err)
	return connect.NewError(code, err)
}

func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrConflict), errors.Is(err, auth.ErrEmailExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.CodeUnauthenticated
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrDuplicateParticipant),
		errors.Is(err, calculator.ErrSharesExceedTotal),
		errors.Is(err, calculator.ErrNegativeShare):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
