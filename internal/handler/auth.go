package handler

import (
	"net/http"

	"laundry-be/internal/auth"
	"laundry-be/internal/middleware"
	"laundry-be/internal/transport"
	"laundry-be/internal/user"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	svc          user.Service
	cookieSecure bool
}

func NewAuthHandler(svc user.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// RegisterPublicRoutes mounts the endpoints reachable without a session.
func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/register-admin", h.RegisterAdmin)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

// RegisterRoutes mounts the session endpoints. It expects RequireAuth to
// run first.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.Profile)
	r.Put("/profile", h.UpdateProfile)
	r.Delete("/profile", h.DeleteAccount)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminOnly)
		r.Post("/register-cashier", h.RegisterCashier)
		r.Get("/admin/profile", h.AdminProfile)
		r.Put("/admin/profile", h.UpdateAdminProfile)
	})
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	SecretKey string `json:"secretKey"`
}

func (req registerRequest) input() user.RegisterInput {
	return user.RegisterInput{Username: req.Username, Password: req.Password, Name: req.Name}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileRequest struct {
	Username        *string `json:"username"`
	Name            *string `json:"name"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
	SecretKey       string  `json:"secretKey"`
}

func (req profileRequest) update() user.ProfileUpdate {
	return user.ProfileUpdate{
		Username:        req.Username,
		Name:            req.Name,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

type userResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token,omitempty"`
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.RegisterAdmin(r.Context(), req.input(), req.SecretKey)
	if err != nil {
		respondError(w, r, "register admin", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, userResponse{Message: "Admin registered", User: u})
}

func (h *AuthHandler) RegisterCashier(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.RegisterCashier(r.Context(), req.input())
	if err != nil {
		respondError(w, r, "register cashier", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, userResponse{Message: "Cashier registered", User: u})
}

// Login sets the session cookie and also returns the token for clients
// that send it as a Bearer header.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, r, "login", err)
		return
	}

	auth.SetTokenCookie(w, token, h.cookieSecure)
	transport.WriteJSON(w, http.StatusOK, userResponse{Message: "Logged in", User: u, Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w, h.cookieSecure)
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		respondError(w, r, "get profile", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())

	var req profileRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), id, req.update())
	if err != nil {
		respondError(w, r, "update profile", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, userResponse{Message: "Profile updated successfully", User: u})
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())

	var req deleteAccountRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), id, req.Password); err != nil {
		respondError(w, r, "delete account", err)
		return
	}

	auth.ClearTokenCookie(w, h.cookieSecure)
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}

func (h *AuthHandler) AdminProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.svc.AdminProfile(r.Context(), id)
	if err != nil {
		respondError(w, r, "get admin profile", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) UpdateAdminProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())

	var req profileRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.UpdateAdminProfile(r.Context(), id, req.update(), req.SecretKey)
	if err != nil {
		respondError(w, r, "update admin profile", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, userResponse{Message: "Admin profile updated successfully", User: u})
}
