package dto

import "vacancy_backend/internal/models"

// RegisterRequest - регистрация соискателя или рекрутера; Position только для рекрутера
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Position  string `json:"position" validate:"omitempty,max=255"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type GoogleLoginRequest struct {
	TokenID string `json:"tokenId" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ChangePasswordRequest проверяется в сервисе, сообщения об ошибках фиксированы
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type MarkPaymentRequest struct {
	AmountPaid float64 `json:"amountPaid" validate:"min=0"`
}

type MessageResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type LoginResponse struct {
	Message    string          `json:"message"`
	Token      string          `json:"token"`
	User       *models.Account `json:"user"`
	RememberMe bool            `json:"rememberMe"`
}

type GoogleLoginResponse struct {
	User  *models.Account `json:"user"`
	Token string          `json:"token"`
}

type AccountResponse struct {
	Message string          `json:"message"`
	User    *models.Account `json:"user"`
}
