package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/auth"
	"github.com/fliamecomm/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Login outcomes reported to the LoginRecorder
const (
	LoginResultSuccess  = "success"
	LoginResultInvalid  = "invalid"
	LoginResultMismatch = "mismatch"
)

// LoginRecorder counts login attempts by outcome
type LoginRecorder interface {
	RecordLogin(ctx context.Context, result string)
}

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	userRepo  identity.UserRepository
	sessions  *auth.SessionService
	blacklist auth.TokenBlacklist
	events    shared.EventPublisher
	clock     shared.Clock
	recorder  LoginRecorder
	logger    *zap.Logger
}

// AuthServiceOption configures an AuthService
type AuthServiceOption func(*AuthService)

// WithClock overrides the clock used to stamp logins
func WithClock(clock shared.Clock) AuthServiceOption {
	return func(s *AuthService) { s.clock = clock }
}

// WithLoginRecorder reports login outcomes to r
func WithLoginRecorder(r LoginRecorder) AuthServiceOption {
	return func(s *AuthService) { s.recorder = r }
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	sessions *auth.SessionService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		userRepo:  userRepo,
		sessions:  sessions,
		blacklist: blacklist,
		events:    events,
		clock:     shared.SystemClock,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a regular account and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (result *AuthResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Register")
	defer func() { telemetry.EndSpan(span, err) }()

	fields := FieldErrors{}
	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "This field is required."
	}
	if input.Password == "" {
		fields["password1"] = "This field is required."
	}
	if input.Password != input.ConfirmPassword {
		fields["password2"] = "The two password fields didn't match."
	}
	if len(fields) > 0 {
		return nil, validationFailed(fields)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username already taken.")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, asFieldError(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Username already taken.")
		}
		return nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	if s.events != nil {
		if err := s.events.Publish(ctx, user.GetDomainEvents()...); err != nil {
			s.logger.Warn("Failed to publish identity events", zap.Error(err))
		}
	}
	user.ClearDomainEvents()

	return &AuthResult{User: user, Session: session}, nil
}

// Login checks credentials and opens a session. A role that does not fit the
// account still opens the session; the result's Destination reports the mismatch.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (result *LoginResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Login")
	defer func() { telemetry.EndSpan(span, err) }()

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn("Login for unknown user", zap.String("username", input.Username))
		s.record(ctx, LoginResultInvalid)
		return nil, shared.ErrInvalidCredentials
	}

	if !user.CanLogin() || !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid login attempt", zap.String("username", input.Username))
		s.record(ctx, LoginResultInvalid)
		return nil, shared.ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(s.clock())
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the session is valid without the timestamp
		s.logger.Error("Failed to record login time", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	destination := identity.ResolveLoginDestination(identity.ParseLoginRole(input.Role), user.IsStaff)
	if destination == identity.DestinationRoleMismatch {
		s.logger.Warn("Login role does not match account",
			zap.String("username", user.Username),
			zap.String("role", input.Role),
		)
		s.record(ctx, LoginResultMismatch)
	} else {
		s.logger.Info("User logged in",
			zap.String("user_id", user.ID.String()),
			zap.String("destination", string(destination)),
		)
		s.record(ctx, LoginResultSuccess)
	}

	return &LoginResult{
		AuthResult:  AuthResult{User: user, Session: session},
		Destination: destination,
	}, nil
}

// Logout revokes the session token until it would have expired.
// An invalid or expired token needs no revocation.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ResolveSession returns the identity carried by a session token.
// Invalid, expired and revoked tokens all resolve to an error and the caller treats the request as anonymous.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (identity.Identity, error) {
	if token == "" {
		return identity.Anonymous, auth.ErrInvalidToken
	}
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return identity.Anonymous, err
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return identity.Anonymous, err
	}
	if revoked {
		return identity.Anonymous, auth.ErrTokenBlacklisted
	}
	return claims.Identity(), nil
}

// GetUser loads the account behind an identity
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *AuthService) issue(user *identity.User) (*auth.SessionToken, error) {
	session, err := s.sessions.Issue(auth.IssueInput{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		s.logger.Error("Failed to sign session", zap.Error(err))
		return nil, shared.NewDomainErrorWithCause("INTERNAL_ERROR", "Failed to start session", err)
	}
	return session, nil
}

func (s *AuthService) record(ctx context.Context, result string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(ctx, result)
	}
}

// asFieldError maps user construction errors onto the form field they concern
func asFieldError(err error) error {
	de, ok := shared.AsDomainError(err)
	if !ok {
		return err
	}
	switch de.Code {
	case "INVALID_USERNAME":
		return validationFailed(FieldErrors{"username": de.Message})
	case "INVALID_EMAIL":
		return validationFailed(FieldErrors{"email": de.Message})
	case "INVALID_PASSWORD":
		return validationFailed(FieldErrors{"password1": de.Message})
	default:
		return err
	}
}
