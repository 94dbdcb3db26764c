package controllers

import (
	"encoding/json"
	"net/http"

	"kbase/app/dto"
	jwtutil "kbase/app/jwt"
	"kbase/app/services"
)

type APIAuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAPIAuthController(users *services.UserService, signer *jwtutil.Signer) *APIAuthController {
	return &APIAuthController{Users: users, Signer: signer}
}

// Login issues a short-lived bearer token. The failure message is the
// same for unknown users and wrong passwords.
func (c *APIAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, dto.MessageResponse{Message: "username and password are required"})
		return
	}
	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid username or password"})
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.MessageResponse{Message: "token error"})
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
