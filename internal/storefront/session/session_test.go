package session

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivros/bookme/internal/storefront/client"
)

type mockDirectory struct {
	users      map[string]client.User
	createErr  error
	getCalls   int
	lastCreate client.CreateUserRequest
}

func (m *mockDirectory) GetUser(_ context.Context, userName string) (*client.User, error) {
	m.getCalls++
	u, ok := m.users[userName]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &u, nil
}

func (m *mockDirectory) CreateUser(_ context.Context, req client.CreateUserRequest) (*client.User, error) {
	m.lastCreate = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &client.User{
		UserID:   "u-1",
		FullName: req.FullName,
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	}, nil
}

func TestLogin_Success(t *testing.T) {
	dir := &mockDirectory{users: map[string]client.User{
		"paul": {UserID: "u-7", FullName: "Paul Atreides", UserName: "paul", Password: "melange"},
	}}
	s := New(dir)

	id, err := s.Login(context.Background(), "paul", "melange")
	require.NoError(t, err)
	assert.Equal(t, "u-7", id.ID)
	assert.Equal(t, "u-7", s.CurrentID())

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "paul", current.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	dir := &mockDirectory{users: map[string]client.User{
		"paul": {UserID: "u-7", UserName: "paul", Password: "melange"},
	}}
	s := New(dir)

	_, err := s.Login(context.Background(), "paul", "water")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, s.CurrentID())
}

func TestLogin_UnknownUserLooksLikeBadPassword(t *testing.T) {
	s := New(&mockDirectory{users: map[string]client.User{}})

	_, err := s.Login(context.Background(), "nobody", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, s.CurrentID())
}

func TestRegister_SetsCurrent(t *testing.T) {
	dir := &mockDirectory{}
	s := New(dir)

	id, err := s.Register(context.Background(), "Paul Atreides", "paul", "paul@arrakis.example", "melange")
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.ID)
	assert.Equal(t, "u-1", s.CurrentID())
	assert.Equal(t, "paul", dir.lastCreate.UserName)
}

func TestRegister_FailureLeavesSessionEmpty(t *testing.T) {
	dir := &mockDirectory{createErr: errors.New("boom")}
	s := New(dir)

	_, err := s.Register(context.Background(), "Paul", "paul", "p@x", "melange")
	require.Error(t, err)
	assert.Empty(t, s.CurrentID())
}

func TestClearCurrent(t *testing.T) {
	s := New(&mockDirectory{})
	s.SetCurrent(Identity{ID: "u-9"})
	require.Equal(t, "u-9", s.CurrentID())

	s.ClearCurrent()
	assert.Empty(t, s.CurrentID())
	_, ok := s.Current()
	assert.False(t, ok)
}
