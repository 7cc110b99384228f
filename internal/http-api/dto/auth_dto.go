package dto

// Data Transfer Objects for the confirmation-code auth flow

// EmailRequest: payload for requesting a confirmation code
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailResponse echoes the address the code was sent to
type EmailResponse struct {
	Email string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a token
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the issued bearer access token
type TokenResponse struct {
	Token string `json:"token"`
}
