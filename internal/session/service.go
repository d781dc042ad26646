package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/store"
)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password, so sign-in failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid identifier or password")

var ErrInactiveAccount = errors.New("account is deactivated")

// Session is the signed-in state handed back to the client.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
	Role  string      `json:"role,omitempty"`
}

type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	AvatarURL *string
}

// Service owns sign-up, sign-in and profile updates. On the fallback path
// the current session record also persists to the file store so a restart
// resumes signed in, matching how the installation-local mode behaves.
type Service struct {
	store  store.Store
	files  *store.FileStore
	tokens *TokenIssuer
	logger *logrus.Logger
}

// NewService builds the service. files may be nil on the real backend
// path, where the bearer token is the only session state.
func NewService(st store.Store, files *store.FileStore, tokens *TokenIssuer, log *logrus.Logger) *Service {
	return &Service{store: st, files: files, tokens: tokens, logger: log}
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	at := strings.Index(in.Email, "@")
	if at <= 0 {
		return nil, fmt.Errorf("invalid email address")
	}
	if in.Username == "" {
		in.Username = in.Email[:at]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Address:      in.Address,
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("an account with this email or username already exists")
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	return s.openSession(ctx, user)
}

// SignIn matches the identifier against stored email or phone, exact
// equality only, then verifies the password against the bcrypt hash.
func (s *Service) SignIn(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.store.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.WithError(err).Error("Sign-in lookup failed")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return s.openSession(ctx, user)
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*Session, error) {
	role := ""
	if admin, err := s.store.GetAdminByUserID(ctx, user.ID); err == nil {
		role = admin.Role
	}

	token, err := s.tokens.Issue(user.ID, user.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	sess := &Session{User: *user, Token: token, Role: role}

	if s.files != nil {
		if err := s.files.Write(store.KeySessionUser, user); err != nil {
			s.logger.WithError(err).Warn("Failed to persist session record")
		}
	}

	return sess, nil
}

// SignOut clears the persisted session record, if any.
func (s *Service) SignOut(_ context.Context) error {
	if s.files == nil {
		return nil
	}
	return s.files.Remove(store.KeySessionUser)
}

// CurrentUser returns the persisted session record read at startup, or
// nil when nobody is signed in.
func (s *Service) CurrentUser(_ context.Context) (*models.User, error) {
	if s.files == nil {
		return nil, nil
	}
	var user models.User
	found, err := s.files.Read(store.KeySessionUser, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of patch to the user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to update profile")
		return nil, err
	}

	if s.files != nil {
		if err := s.files.Write(store.KeySessionUser, user); err != nil {
			s.logger.WithError(err).Warn("Failed to refresh session record")
		}
	}

	return user, nil
}

// Validate exposes token validation for the API middleware.
func (s *Service) Validate(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}
