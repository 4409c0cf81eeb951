package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/access"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/auth"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/metrics"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

type AuthHandler struct {
	Store            *store.Store
	Tokens           *auth.TokenService
	CookieSecure     bool
	AllowAdminSignup bool
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registration struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		respond.Error(w, r, apperr.Validation("Email and password are required"))
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), in.Email)
	if err != nil {
		metrics.RecordAuthFailure(string(apperr.From(err).Code))
		respond.Error(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		metrics.RecordAuthFailure(string(apperr.CodeUnauthorized))
		respond.Error(w, r, apperr.Unauthorized("Invalid password"))
		return
	}

	h.startSession(w, r, http.StatusOK, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in registration
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validateRegistration(&in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if in.Role == models.RoleAdmin && !h.AllowAdminSignup {
		respond.Error(w, r, apperr.Validation("Admin accounts cannot be self-registered"))
		return
	}

	user, err := createUser(r, h.Store, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	h.startSession(w, r, http.StatusCreated, user)
}

// Logout clears the cookie and, when revocation is enabled, revokes the token
// that was presented.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := access.TokenFromRequest(r); token != "" {
		if revoked, err := h.Tokens.Revoke(token); err != nil {
			slog.Debug("Logout with unusable token", "error", err)
		} else if revoked {
			slog.Info("Token revoked on logout")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     access.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	respond.Message(w, http.StatusOK, "Logged out successfully")
}

// CurrentUser returns the authenticated caller's account.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	user, err := h.Store.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, expires, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     access.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	respond.JSON(w, status, sessionResponse{User: user, Token: token})
}

func validateRegistration(in *registration) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		return apperr.Validation("Username is required")
	case in.Email == "":
		return apperr.Validation("Email is required")
	case len(in.Password) < 6:
		return apperr.Validation("Password must be at least 6 characters")
	case !in.Role.Valid():
		return apperr.Validation("Role must be one of admin, seller, buyer")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("Invalid email address")
	}
	return nil
}

func createUser(r *http.Request, s *store.Store, in registration) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.CreateUser(r.Context(), in.Username, in.Email, hash, in.Role)
}
