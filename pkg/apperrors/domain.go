package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки доменов: аккаунты, вакансии,
отклики, платежи и файлы. Тексты сообщений видит фронтенд.
*/

// =========================================================================
// Фабричные функции
// =========================================================================

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrUpstream - сбой внешнего сервиса (почта, хранилище, шлюз).
// Причина уходит в лог, клиент видит только message.
func ErrUpstream(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusInternalServerError)
}

// =========================================================================
// Аккаунты и аутентификация
// =========================================================================

var ErrEmailAlreadyInUse = New(CodeAlreadyExists, "account", "Email already in use", http.StatusBadRequest)

var ErrUserNotFound = New(CodeNotFound, "account", "User not found", http.StatusNotFound)

// ErrLoginUserNotFound - при логине отсутствующий аккаунт это 400, а не 404
var ErrLoginUserNotFound = New(CodeInvalidCredentials, "auth", "User not found", http.StatusBadRequest)

var ErrRecruiterNotFound = New(CodeInvalidCredentials, "auth", "Recruiter not found", http.StatusBadRequest)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusBadRequest)

var ErrEmailNotVerified = New(CodeNotVerified, "auth", "Please verify your email first", http.StatusUnauthorized)

var ErrEmailAlreadyVerified = ErrInvalidOperation("account", "Email already verified")

var ErrInvalidVerificationCode = New(CodeInvalidToken, "account", "Invalid verification code", http.StatusBadRequest)

var ErrVerificationCodeExpired = New(CodeTokenExpired, "account", "Verification code expired", http.StatusBadRequest)

var ErrInvalidResetToken = New(CodeInvalidToken, "account", "Invalid or expired token", http.StatusBadRequest)

var ErrPasswordsDoNotMatch = New(CodeValidationFailed, "account", "Passwords do not match", http.StatusBadRequest)

var ErrCurrentPasswordIncorrect = New(CodeInvalidCredentials, "account", "Current password is incorrect", http.StatusBadRequest)

var ErrWeakPassword = New(CodeValidationFailed, "account", "Password must be at least 6 characters", http.StatusBadRequest)

var ErrNoToken = New(CodeUnauthorized, "auth", "No token provided", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrTokenRevoked = New(CodeTokenRevoked, "auth", "Token has been revoked", http.StatusUnauthorized)

var ErrInvalidGoogleToken = New(CodeInvalidToken, "auth", "Google login failed", http.StatusBadRequest)

var ErrAccessDenied = NewForbiddenError("Access denied")

var ErrInsufficientPermissions = NewForbiddenError("Insufficient permissions")

// =========================================================================
// Вакансии и отклики
// =========================================================================

// ErrJobNotFound - вакансии нет, или она чужая. Клиент не различает эти случаи.
var ErrJobNotFound = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

var ErrAlreadyApplied = New(CodeAlreadyExists, "application", "You already applied for this job", http.StatusBadRequest)

var ErrResumeRequired = New(CodeValidationFailed, "application", "Resume file is required", http.StatusBadRequest)

var ErrResumeNotFound = New(CodeNotFound, "account", "Resume not found", http.StatusNotFound)

var ErrApplicationFinalized = ErrInvalidStatus("application", "Application status can no longer be changed")

var ErrPaymentRequired = New(CodePaymentRequired, "job", "Payment required before posting jobs", http.StatusForbidden)

// =========================================================================
// Платежи
// =========================================================================

var ErrPaymentVerificationFailed = New(CodeExternalServiceError, "payment", "Payment verification failed", http.StatusBadRequest)

var ErrPaymentInitFailed = New(CodeExternalServiceError, "payment", "Error initializing payment", http.StatusInternalServerError)

// ErrPaymentReferenceUsed - успешная транзакция уже засчитана другому аккаунту
var ErrPaymentReferenceUsed = ErrConflict(nil, "payment", "Payment reference already used")

// =========================================================================
// Файлы
// =========================================================================

var ErrFileTooLarge = New(CodeLimitExceeded, "validation", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)

var ErrInvalidFileType = New(CodeValidationFailed, "validation", "The provided file type is not allowed", http.StatusUnsupportedMediaType)

var ErrStorageFailure = New(CodeExternalServiceError, "storage", "File upload failed", http.StatusInternalServerError)

var ErrEmailDelivery = New(CodeExternalServiceError, "email", "Failed to send email", http.StatusInternalServerError)

var ErrTooManyRequests = New(CodeLimitExceeded, "request", "Too many requests", http.StatusTooManyRequests)
