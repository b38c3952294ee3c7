package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/cache"
	"vacancy_backend/internal/email"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, role models.Role, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest, recruiterOnly bool) (*dto.LoginResponse, error)
	GoogleLogin(ctx context.Context, db *gorm.DB, req *dto.GoogleLoginRequest) (*dto.GoogleLoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, token, password string) error
	ChangePassword(db *gorm.DB, accountID string, req *dto.ChangePasswordRequest) error
	MarkPaymentSuccess(db *gorm.DB, accountID string, amountPaid float64) (*models.Account, error)
	SeedAdmin(db *gorm.DB, emailAddr, password string) (bool, error)
}

type AuthServiceImpl struct {
	accountRepo repositories.AccountRepository
	tokens      *auth.TokenManager
	mailer      *email.Mailer
	google      auth.GoogleVerifier
	blacklist   cache.TokenBlacklist // nil, если Redis не настроен
	clientURL   string
	now         func() time.Time
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	tokens *auth.TokenManager,
	mailer *email.Mailer,
	google auth.GoogleVerifier,
	blacklist cache.TokenBlacklist,
	clientURL string,
) AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		tokens:      tokens,
		mailer:      mailer,
		google:      google,
		blacklist:   blacklist,
		clientURL:   strings.TrimRight(clientURL, "/"),
		now:         time.Now,
	}
}

// Register создает неподтвержденный аккаунт и отправляет код.
// Если письмо не ушло, аккаунт откатывается.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, role models.Role, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if role != models.RoleUser && role != models.RoleRecruiter {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.accountRepo.EmailExists(tx, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	expires := s.now().Add(auth.VerificationCodeTTL)

	account := &models.Account{
		Role:                role,
		FirstName:           strings.TrimSpace(req.FirstName),
		LastName:            strings.TrimSpace(req.LastName),
		Email:               req.Email,
		PasswordHash:        hash,
		Phone:               req.Phone,
		VerificationCode:    code,
		VerificationExpires: &expires,
	}
	if role == models.RoleRecruiter {
		account.RecruiterProfile = &models.RecruiterProfile{
			Position: req.Position,
			Company:  models.Company{PaymentStatus: models.CompanyPaymentPending},
		}
	} else {
		account.UserProfile = &models.UserProfile{}
	}

	if err := s.accountRepo.Create(tx, account); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyInUse
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.mailer.SendVerificationCode(ctx, account.Email, account.FirstName, code, auth.VerificationCodeTTL); err != nil {
		logger.CtxWithError(ctx, "Failed to send verification email", err, "email", account.Email)
		return nil, apperrors.ErrEmailDelivery.WithError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RegisterResponse{
		Message: "Registration successful. Please check your email for the verification code.",
		Email:   account.Email,
	}, nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error {
	account, err := s.accountRepo.FindByEmail(db, req.Email)
	if err != nil {
		return handleAccountError(err)
	}
	if account.IsVerified {
		return apperrors.ErrEmailAlreadyVerified
	}
	if account.VerificationCode == "" || account.VerificationCode != req.Code {
		return apperrors.ErrInvalidVerificationCode
	}
	if account.VerificationExpires == nil || s.now().After(*account.VerificationExpires) {
		return apperrors.ErrVerificationCodeExpired
	}

	err = s.accountRepo.UpdateFields(db, account.ID, map[string]interface{}{
		"is_verified":          true,
		"verification_code":    "",
		"verification_expires": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Login - пароль проверяется раньше подтверждения email
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest, recruiterOnly bool) (*dto.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			if recruiterOnly {
				return nil, apperrors.ErrRecruiterNotFound
			}
			return nil, apperrors.ErrLoginUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if recruiterOnly && account.Role != models.RoleRecruiter {
		return nil, apperrors.ErrRecruiterNotFound
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !account.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	token, err := s.tokens.Issue(account.ID, account.Role, req.RememberMe)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Message:    "Login successful",
		Token:      token,
		User:       account,
		RememberMe: req.RememberMe,
	}, nil
}

// GoogleLogin создает подтвержденного соискателя при первом входе
func (s *AuthServiceImpl) GoogleLogin(ctx context.Context, db *gorm.DB, req *dto.GoogleLoginRequest) (*dto.GoogleLoginResponse, error) {
	if s.google == nil {
		return nil, apperrors.ErrInvalidGoogleToken
	}
	identity, err := s.google.Verify(ctx, req.TokenID)
	if err != nil {
		logger.CtxWarn(ctx, "Google token rejected", "error", err)
		return nil, apperrors.ErrInvalidGoogleToken.WithError(err)
	}

	account, err := s.accountRepo.FindByEmail(db, identity.Email)
	switch {
	case err == nil:
		if account.GoogleID == "" {
			if err := s.accountRepo.UpdateFields(db, account.ID, map[string]interface{}{"google_id": identity.Subject}); err != nil {
				return nil, apperrors.InternalError(err)
			}
			account.GoogleID = identity.Subject
		}
	case errors.Is(err, repositories.ErrAccountNotFound):
		account = &models.Account{
			Role:        models.RoleUser,
			FirstName:   identity.FirstName,
			LastName:    identity.LastName,
			Email:       identity.Email,
			GoogleID:    identity.Subject,
			IsVerified:  true,
			UserProfile: &models.UserProfile{},
		}
		if err := s.accountRepo.Create(db, account); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	token, err := s.tokens.Issue(account.ID, account.Role, false)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.GoogleLoginResponse{User: account, Token: token}, nil
}

// Logout кладет jti в blacklist до истечения токена; без Redis ничего не хранится
func (s *AuthServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.blacklist == nil || tokenID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, tokenID, expiresAt.Sub(s.now())); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword не раскрывает, существует ли email
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr string) error {
	account, err := s.accountRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			logger.CtxInfo(ctx, "Password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expires := s.now().Add(auth.ResetTokenTTL)

	err = s.accountRepo.UpdateFields(db, account.ID, map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	link := s.clientURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(ctx, account.Email, account.FirstName, link, auth.ResetTokenTTL); err != nil {
		logger.CtxWithError(ctx, "Failed to send password reset email", err, "account_id", account.ID)
		return apperrors.ErrEmailDelivery.WithError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, password string) error {
	if err := auth.ValidatePassword(password); err != nil {
		return apperrors.ErrWeakPassword
	}

	account, err := s.accountRepo.FindByResetToken(db, token, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	err = s.accountRepo.UpdateFields(db, account.ID, map[string]interface{}{
		"password_hash":          hash,
		"reset_password_token":   "",
		"reset_password_expires": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, accountID string, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return apperrors.NewBadRequestError("All fields are required")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordsDoNotMatch
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	account, err := s.accountRepo.FindByID(db, accountID)
	if err != nil {
		return handleAccountError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, account.PasswordHash) {
		return apperrors.ErrCurrentPasswordIncorrect
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.accountRepo.UpdateFields(db, accountID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkPaymentSuccess - ручная отметка оплаты администратором
func (s *AuthServiceImpl) MarkPaymentSuccess(db *gorm.DB, accountID string, amountPaid float64) (*models.Account, error) {
	err := s.accountRepo.UpdateFields(db, accountID, map[string]interface{}{
		"has_paid":    true,
		"amount_paid": amountPaid,
	})
	if err != nil {
		return nil, handleAccountError(err)
	}

	account, err := s.accountRepo.FindByID(db, accountID)
	if err != nil {
		return nil, handleAccountError(err)
	}
	return account, nil
}

// SeedAdmin создает первого администратора, если его еще нет
func (s *AuthServiceImpl) SeedAdmin(db *gorm.DB, emailAddr, password string) (bool, error) {
	exists, err := s.accountRepo.EmailExists(db, emailAddr)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.Account{
		Role:         models.RoleAdmin,
		FirstName:    "Admin",
		Email:        emailAddr,
		PasswordHash: hash,
		IsVerified:   true,
		AdminProfile: &models.AdminProfile{Title: "Administrator"},
	}
	if err := s.accountRepo.Create(db, admin); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func handleAccountError(err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}
