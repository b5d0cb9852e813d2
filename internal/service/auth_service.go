package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/internal/auth"
	"github.com/mmynk/neondara/internal/middleware"
	"github.com/mmynk/neondara/internal/storage"
	"github.com/mmynk/neondara/internal/validation"
	"github.com/mmynk/neondara/pkg/api"
)

const maxDisplayNameLen = 100

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	validate      *validation.Validator
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, validate *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		validate:      validate,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	email := auth.NormalizeEmail(req.Msg.Email)
	displayName := strings.TrimSpace(req.Msg.DisplayName)
	s.logger.Info("Register request", "email", email)

	if err := s.validate.Email(email); err != nil {
		return nil, toConnectError(s.logger, "Register", err)
	}
	if displayName == "" || utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return nil, toConnectError(s.logger, "Register", invalidArgument("displayName: required, at most %d characters", maxDisplayNameLen))
	}

	user, err := s.authenticator.Register(ctx, email, displayName, req.Msg.Password)
	if err != nil {
		return nil, toConnectError(s.logger, "Register", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, toConnectError(s.logger, "Generate token", err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	email := auth.NormalizeEmail(req.Msg.Email)
	s.logger.Info("Login request", "email", email)

	if email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, toConnectError(s.logger, "Login", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, toConnectError(s.logger, "Generate token", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// Logout is a no-op: tokens are stateless and the client discards its copy.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request", "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the signed-in user's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetCurrentUser", err)
	}
	if user == nil {
		// The token outlived the account.
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}
