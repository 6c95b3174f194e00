package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbelkacem/gosocial/internal/metrics"
	"github.com/sbelkacem/gosocial/internal/models"
	"github.com/sbelkacem/gosocial/internal/repo"
	"github.com/sbelkacem/gosocial/internal/session"
	"github.com/sbelkacem/gosocial/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Tokens   *token.Service
	Sessions *session.Manager
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// decodeBody accepts JSON or a classic form post; the original served both
// express.json() and urlencoded bodies.
func decodeBody(r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	switch v := dst.(type) {
	case *registerInput:
		v.Username = r.PostFormValue("username")
		v.Email = r.PostFormValue("email")
		v.Password = r.PostFormValue("password")
	case *loginInput:
		v.Username = r.PostFormValue("username")
		v.Password = r.PostFormValue("password")
	default:
		return errors.New("unsupported body type")
	}
	return nil
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := decodeBody(r, &input); err != nil {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Passwords are stored only as bcrypt hashes.
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("hash password failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Username, input.Email, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			JSONError(w, "user already exists", http.StatusBadRequest)
			return
		}
		slog.Error("create user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/post?username="+url.QueryEscape(user.Username), http.StatusFound)
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := decodeBody(r, &input); err != nil {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Error("get user failed", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		metrics.RecordLogin("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// bcrypt comparison is constant-time; credentials never go through the
	// token layer.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.RecordLogin("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordLogin("success")
	http.Redirect(w, r, "/post", http.StatusFound)
}

// ==========================
// Logout
// ==========================
// Logout clears the session unconditionally; store failures are logged inside
// the manager and the client lands on /login either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// startSession issues a fresh token for the user and binds it to the caller's
// session, replacing whatever token was there before.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	signed, err := h.Tokens.Issue(models.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		slog.Error("issue token failed", "error", err)
		return err
	}
	if err := h.Sessions.Bind(w, r, signed); err != nil {
		slog.Error("bind session failed", "error", err)
		return err
	}
	return nil
}
