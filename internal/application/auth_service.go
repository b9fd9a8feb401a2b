package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	repo "github.com/oksasatya/go-hris/internal/domain/repository"
	"github.com/oksasatya/go-hris/pkg/helpers"
	"github.com/oksasatya/go-hris/pkg/validation"
)

// Defaults identifies the tenant and role that self-registered users join.
type Defaults struct {
	OrganizationID int64
	RoleID         int64
}

type AuthService struct {
	Users    repo.UserRepository
	Refs     repo.ReferenceRepository
	Sessions SessionStore
	JWT      *helpers.JWTManager
	Index    UserIndex
	Notifier Notifier
	Logger   *logrus.Logger
	Defaults Defaults
}

// SessionTokens is what the HTTP layer turns into cookies.
type SessionTokens struct {
	SessionID          string
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,pwd"`
	VerifyPassword string `json:"verifyPassword" validate:"required,eqfield=Password"`
}

func NewAuthService(users repo.UserRepository, refs repo.ReferenceRepository, sessions SessionStore, jwt *helpers.JWTManager, index UserIndex, notifier Notifier, logger *logrus.Logger, defaults Defaults) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{
		Users:    users,
		Refs:     refs,
		Sessions: sessions,
		JWT:      jwt,
		Index:    index,
		Notifier: notifier,
		Logger:   logger,
		Defaults: defaults,
	}
}

// dummyHash is compared against when the email is unknown so both failure paths pay for a bcrypt check.
var dummyHash = sync.OnceValue(func() string {
	h, _ := helpers.HashPassword("not-a-real-password")
	return h
})

// Login verifies credentials. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.PublicUser, error) {
	if email == "" || password == "" {
		return nil, apperr.Invalid("Email and password are required")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		helpers.CompareHashAndPassword(dummyHash(), password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, verr := helpers.VerifyPassword(u.Password, password)
	if verr != nil {
		s.Logger.WithError(verr).WithField("user_id", u.ID).Error("stored password hash is malformed")
		return nil, apperr.ErrInvalidCredentials
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials
	}
	return u.Public(), nil
}

// Register creates a user in the default organization with the default role and
// returns the new id. The default reference rows must already exist.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if err := validation.Struct(in); err != nil {
		return 0, registerValidationError(err)
	}

	taken, err := s.Users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	if err := s.requireDefaults(ctx); err != nil {
		return 0, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	u := &entity.User{
		Email:          in.Email,
		Password:       hash,
		Name:           localPart(in.Email),
		RoleID:         s.Defaults.RoleID,
		OrganizationID: s.Defaults.OrganizationID,
	}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidReference) {
			s.Logger.WithError(err).Warn("default role or organization vanished during registration")
			return 0, fmt.Errorf("%w: %w", apperr.ErrSetupIncomplete, err)
		}
		return 0, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": id, "email": u.Email}).Info("user registered")
	indexUser(ctx, s.Users, s.Index, s.Logger, id)
	s.welcome(ctx, u)
	return id, nil
}

// requireDefaults fails fast with ErrSetupIncomplete when the seed step has not run.
func (s *AuthService) requireDefaults(ctx context.Context) error {
	orgOK, err := s.Refs.OrganizationExists(ctx, s.Defaults.OrganizationID)
	if err != nil {
		return err
	}
	roleOK, err := s.Refs.RoleExists(ctx, s.Defaults.RoleID)
	if err != nil {
		return err
	}
	if !orgOK || !roleOK {
		s.Logger.WithFields(logrus.Fields{
			"organization_id": s.Defaults.OrganizationID,
			"organization_ok": orgOK,
			"role_id":         s.Defaults.RoleID,
			"role_ok":         roleOK,
		}).Error("default reference data missing; run the seed command")
		return fmt.Errorf("%w: default organization %d or role %d missing",
			apperr.ErrSetupIncomplete, s.Defaults.OrganizationID, s.Defaults.RoleID)
	}
	return nil
}

func (s *AuthService) welcome(ctx context.Context, u *entity.User) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Welcome(ctx, u.Public()); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome notification failed")
	}
}

func registerValidationError(err error) error {
	details := validation.ToDetails(err)
	switch validation.FirstTag(err, "required", "eqfield", "pwd", "email") {
	case "required":
		return apperr.InvalidFields("All fields are required", details)
	case "eqfield":
		return apperr.InvalidFields("Passwords do not match", details)
	case "pwd":
		return apperr.InvalidFields(fmt.Sprintf("Password must be at least %d characters long", validation.MinPasswordLength), details)
	case "email":
		return apperr.InvalidFields("Invalid email address", details)
	default:
		return apperr.InvalidFields("Invalid registration data", details)
	}
}

// localPart returns the substring before the first "@".
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// StartSession issues a token pair bound to a new server-side session.
// It returns nil tokens when sessions are not configured.
func (s *AuthService) StartSession(ctx context.Context, u *entity.PublicUser) (*SessionTokens, error) {
	if s.Sessions == nil || s.JWT == nil {
		return nil, nil
	}
	sess := &entity.Session{ID: uuid.NewString(), User: *u, CreatedAt: time.Now().UTC()}
	tokens, err := s.issue(sess)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess, s.JWT.RefreshTTL); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Authenticate resolves an access token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*entity.Session, error) {
	if s.Sessions == nil || s.JWT == nil {
		return nil, apperr.ErrUnauthorized
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.liveSession(ctx, claims)
}

// CurrentSession loads a session by id with the user re-read from the store.
func (s *AuthService) CurrentSession(ctx context.Context, sid string) (*entity.Session, error) {
	if s.Sessions == nil || sid == "" {
		return nil, apperr.ErrUnauthorized
	}
	sess, err := s.Sessions.Get(ctx, sid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return s.withCurrentUser(ctx, sess)
}

// Refresh rotates the session behind refreshToken and returns a new token pair.
// The new session carries the user as currently stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	if s.Sessions == nil || s.JWT == nil {
		return nil, apperr.ErrUnauthorized
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	old, err := s.liveSession(ctx, claims)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Delete(ctx, old.ID); err != nil {
		return nil, err
	}
	return s.StartSession(ctx, &old.User)
}

// Logout revokes the session; unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if s.Sessions == nil || sid == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sid)
}

// SessionIDFromToken extracts the session id from a refresh or access token without
// requiring it to be live. Used by logout, which should succeed for stale tokens too.
func (s *AuthService) SessionIDFromToken(accessToken, refreshToken string) string {
	if s.JWT == nil {
		return ""
	}
	if c, err := s.JWT.ParseAccessToken(accessToken); err == nil {
		return c.SessionID
	}
	if c, err := s.JWT.ParseRefreshToken(refreshToken); err == nil {
		return c.SessionID
	}
	return ""
}

func (s *AuthService) liveSession(ctx context.Context, claims *helpers.Claims) (*entity.Session, error) {
	sess, err := s.Sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if sess.User.ID != claims.UserID {
		return nil, apperr.ErrUnauthorized
	}
	return s.withCurrentUser(ctx, sess)
}

// withCurrentUser replaces the user captured at login with the stored row.
// A deleted user's session is revoked.
func (s *AuthService) withCurrentUser(ctx context.Context, sess *entity.Session) (*entity.Session, error) {
	d, err := s.Users.GetByID(ctx, sess.User.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		if derr := s.Sessions.Delete(ctx, sess.ID); derr != nil {
			s.Logger.WithError(derr).WithField("sid", sess.ID).Warn("revoking orphaned session failed")
		}
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	sess.User = *d.Public()
	return sess, nil
}

func (s *AuthService) issue(sess *entity.Session) (*SessionTokens, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(sess.User.ID, sess.ID)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(sess.User.ID, sess.ID)
	if err != nil {
		return nil, err
	}
	return &SessionTokens{
		SessionID:          sess.ID,
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}
