package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/avivros/bookme/internal/domain/user"
)

// UserDTO is the wire representation of a user. The password travels in
// the clear; the storefront performs the credential comparison client-side.
// This mirrors the system being fronted and is a known security gap.
type UserDTO struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest is the registration payload. The server assigns the ID.
type CreateUserRequest struct {
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetUser returns a single user by username, or 404.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")

	u, err := h.users.GetByUserName(r.Context(), userName)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "get user %s", userName))
		return
	}
	respondJSON(w, http.StatusOK, userToDTO(*u))
}

// GetUserByID returns a single user by identifier, or 404.
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "get user by id %s", id))
		return
	}
	respondJSON(w, http.StatusOK, userToDTO(*u))
}

// CreateUser registers a new user and returns it with the assigned ID.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserName == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "userName and password required")
		return
	}

	u := &user.User{
		ID:       uuid.New().String(),
		UserName: req.UserName,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		respondInternal(w, r, errors.Wrapf(err, "create user %s", req.UserName))
		return
	}
	respondJSON(w, http.StatusCreated, userToDTO(*u))
}

// UpdateUser rewrites a user's mutable fields, keyed by userId.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var dto UserDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId required")
		return
	}

	u := user.User{
		ID:       dto.UserID,
		UserName: dto.UserName,
		FullName: dto.FullName,
		Email:    dto.Email,
		Password: dto.Password,
	}
	if err := h.users.Update(r.Context(), &u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "update user %s", dto.UserID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userToDTO(u user.User) UserDTO {
	return UserDTO{
		UserID:   u.ID,
		FullName: u.FullName,
		UserName: u.UserName,
		Email:    u.Email,
		Password: u.Password,
	}
}
