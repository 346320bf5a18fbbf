// Package session tracks the current authenticated identity. At most one
// identity is current at a time; all other storefront components read it
// through this container instead of any process-wide state.
package session

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/go-faster/errors"

	"github.com/avivros/bookme/internal/storefront/client"
)

// ErrInvalidCredentials is returned when the user does not exist or the
// submitted secret does not match the stored one. Both cases look identical
// to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Identity is the credential-bearing record of the signed-in user.
type Identity struct {
	ID               string
	DisplayName      string
	Username         string
	Email            string
	CredentialSecret string
}

// Directory is the slice of the API client the session needs for
// authentication and registration.
type Directory interface {
	GetUser(ctx context.Context, userName string) (*client.User, error)
	CreateUser(ctx context.Context, req client.CreateUserRequest) (*client.User, error)
}

var _ Directory = (*client.Client)(nil)

// Session holds the current identity. Reads dominate; the authentication
// flow is the single writer.
type Session struct {
	directory Directory

	mu      sync.RWMutex
	current *Identity
}

// New returns an empty session backed by the given directory.
func New(directory Directory) *Session {
	return &Session{directory: directory}
}

// SetCurrent installs id as the current identity, replacing any previous one.
func (s *Session) SetCurrent(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &id
}

// ClearCurrent signs the current identity out.
func (s *Session) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns a copy of the current identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// CurrentID returns the current identity's ID, or "" when signed out.
func (s *Session) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Login fetches the account by username and compares the stored secret with
// the submitted one. The comparison is plain equality over the stored value;
// the backend keeps credentials unhashed, a known gap carried over from the
// existing data model.
func (s *Session) Login(ctx context.Context, username, secret string) (Identity, error) {
	u, err := s.directory.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, "fetch user")
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(secret)) != 1 {
		return Identity{}, ErrInvalidCredentials
	}

	id := identityFromUser(u)
	s.SetCurrent(id)
	return id, nil
}

// Register creates a new account and signs it in.
func (s *Session) Register(ctx context.Context, fullName, username, email, secret string) (Identity, error) {
	u, err := s.directory.CreateUser(ctx, client.CreateUserRequest{
		FullName: fullName,
		UserName: username,
		Email:    email,
		Password: secret,
	})
	if err != nil {
		return Identity{}, errors.Wrap(err, "create user")
	}

	id := identityFromUser(u)
	s.SetCurrent(id)
	return id, nil
}

func identityFromUser(u *client.User) Identity {
	return Identity{
		ID:               u.UserID,
		DisplayName:      u.FullName,
		Username:         u.UserName,
		Email:            u.Email,
		CredentialSecret: u.Password,
	}
}
