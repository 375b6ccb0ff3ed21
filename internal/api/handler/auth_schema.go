package handler

import (
	"strings"

	"github.com/storelink/catalog-api/internal/core/domain"
)

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// normalize applies the pipeline's trimming and case folding before
// validation runs, so the value that reaches the service is canonical.
func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	Data    *domain.User `json:"data,omitempty"`
}
