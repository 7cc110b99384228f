package dto

import "reviewhub/internal/http-api/models"

// CreateUserDTO: admin-side user creation. Password is optional, code
// based auth does not need one.
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,min=3,max=150"`
	Email     string  `json:"email" binding:"required,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// UpdateUserDTO: admin-side partial update
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=150"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	Active    *bool   `json:"active,omitempty"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// UpdateProfileDTO: self-service /users/me patch, deliberately without a
// role field
type UpdateProfileDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=150"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// UserResponse mirrors the profile fields exposed by the API
type UserResponse struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Bio:       user.Bio,
		Email:     user.Email,
		Role:      user.Role,
	}
}
