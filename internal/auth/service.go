// Package auth is the session and role gate. Login is a demo stub: one
// configured credential pair maps to the administrator, any other non-empty
// pair mints a customer identity. The persisted session carries a signed
// token so a hand-edited session file cannot claim the admin role.
package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

// ErrInvalidCredentials is returned when email or password is empty.
var ErrInvalidCredentials = errors.New("email and password are required")

type Service struct {
	store      *storage.Store
	adminEmail string
	adminHash  []byte
	secret     []byte
	log        zerolog.Logger
}

// New builds the gate. adminHash is the bcrypt hash of the administrator
// password; see HashPassword.
func New(store *storage.Store, adminEmail string, adminHash []byte, secret string, logger zerolog.Logger) *Service {
	return &Service{
		store:      store,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		adminHash:  adminHash,
		secret:     []byte(secret),
		log:        logger,
	}
}

// HashPassword prepares a credential for New.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Login replaces the session singleton with the identity matching the
// credentials. The configured admin pair yields the administrator; any other
// non-empty pair yields a customer named after the email's local part. Empty
// credentials fail without touching the session.
func (s *Service) Login(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrInvalidCredentials
	}

	var user models.User
	if email == s.adminEmail && bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) == nil {
		user = models.User{ID: "admin", Email: email, Name: "Admin", IsAdmin: true}
	} else {
		user = models.User{ID: uuid.NewString(), Email: email, Name: localPart(email), IsAdmin: false}
	}

	token, err := signToken(s.secret, user)
	if err != nil {
		return models.User{}, err
	}
	user.Token = token

	if err := s.store.SaveUser(user); err != nil {
		return models.User{}, err
	}
	s.log.Info().Str("email", user.Email).Str("role", roleOf(user)).Msg("signed in")
	return user, nil
}

// Logout clears the session singleton.
func (s *Service) Logout() error {
	return s.store.ClearUser()
}

// CurrentUser returns the verified session record. ok is false when nobody
// is signed in or the record fails verification.
func (s *Service) CurrentUser() (models.User, bool, error) {
	u, ok, err := s.store.CurrentUser()
	if err != nil {
		return models.User{}, false, err
	}
	if !ok {
		return models.User{}, false, nil
	}
	claims, err := verifyToken(s.secret, u.Token)
	if err != nil {
		s.log.Warn().Str("email", u.Email).Msg("rejecting session with invalid token")
		return models.User{}, false, nil
	}
	if role, _ := claims["role"].(string); role != roleOf(u) {
		s.log.Warn().Str("email", u.Email).Msg("rejecting session with mismatched role")
		return models.User{}, false, nil
	}
	return u, true, nil
}

// IsAuthenticated reports whether a verified session exists.
func (s *Service) IsAuthenticated() bool {
	_, ok, err := s.CurrentUser()
	return err == nil && ok
}

// IsAdmin reports whether the current session belongs to the administrator.
// It is false when no session exists.
func (s *Service) IsAdmin() bool {
	u, ok, err := s.CurrentUser()
	return err == nil && ok && u.IsAdmin
}

// localPart mirrors the storefront's display-name rule: everything before
// the first "@", or the whole address when there is none.
func localPart(email string) string {
	if name, _, found := strings.Cut(email, "@"); found {
		return name
	}
	return email
}
