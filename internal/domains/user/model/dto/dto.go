package dto

import (
	"yujin/internal/domains/user/model"
)

type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	FullName *string `json:"full_name,omitempty"`
	Active   bool    `json:"active"`
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.Role = mod.Role
	r.FullName = mod.FullName
	r.Active = mod.Active
}
