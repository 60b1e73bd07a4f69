package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/middleware"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

// profile is the public shape of a user; the password never appears.
type profile struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Telephone string      `json:"telephone"`
	Role      models.Role `json:"role"`
}

func publicProfile(u *models.User) profile {
	return profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Telephone: u.Telephone,
		Role:      u.Role,
	}
}

// sendTokenResponse delivers the session both as an httpOnly cookie and
// in the body. The cookie is Secure only in production.
func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, status int, session *services.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.CookieExpire),
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSON(w, status, utils.Envelope{
		Success: true,
		Token:   session.Token,
		Data:    publicProfile(session.User),
	})
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	session, err := h.auth.Register(in)
	if err != nil {
		utils.Error(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusCreated, session)
}

// -------------- LOGIN -------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	session, err := h.auth.Login(in)
	if err != nil {
		utils.Error(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, session)
}

// -------------- ME ----------------------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.auth.Me(claims.SubjectID())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, publicProfile(user))
}

// -------------- LOGOUT ------------------------

// Logout instructs the client to discard the token by overwriting the
// cookie with a short-lived marker. There is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})

	utils.OK(w, http.StatusOK, struct{}{})
}

// -------------- UPDATE ROLE (admin) -----------

func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "Invalid user id"))
		return
	}

	var body struct {
		Role models.Role `json:"role"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	user, err := h.auth.UpdateRole(id, body.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, publicProfile(user))
}
