package handlers

import (
	"net/http"
	"time"

	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/middleware"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService    services.AuthService
	profileService services.ProfileService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, profileService services.ProfileService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    base,
		authService:    authService,
		profileService: profileService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации и профиля
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", g.limited(h.Register)...)
		auth.POST("/verify-email", g.limited(h.VerifyEmail)...)
		auth.POST("/login", g.limited(h.Login)...)
		auth.POST("/google", g.limited(h.GoogleLogin)...)
		auth.POST("/forgot-password", g.limited(h.ForgotPassword)...)
		auth.POST("/reset-password/:token", g.limited(h.ResetPassword)...)
	}

	protected := rg.Group("/auth", g.authed()...)
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/profile", h.GetProfile)
		protected.GET("/settings", h.GetSettings)
		protected.PUT("/settings", h.UpdateSettings)
		protected.PUT("/change-password", h.ChangePassword)
		protected.POST("/upload-profile", h.UploadProfileImage)
	}

	users := rg.Group("/auth", g.authed(models.RoleUser)...)
	{
		users.POST("/upload-resume", h.UploadResume)
		users.DELETE("/delete-resume/:resumeId", h.DeleteResume)
	}

	admin := rg.Group("/auth", g.authed(models.RoleAdmin)...)
	{
		admin.PUT("/payment-success/:id", h.MarkPaymentSuccess)
	}

	// Старый фронтенд подтверждает email соискателя через /user
	rg.POST("/user/verify-email", g.limited(h.VerifyEmail)...)
}

// Register godoc
// @Summary Регистрация соискателя
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} apperrors.AppError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.authService.Register(c.Request.Context(), h.GetDB(c), models.RoleUser, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// VerifyEmail godoc
// @Summary Подтверждение email кодом
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Email и код"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified successfully!"})
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.authService.Login(h.GetDB(c), &req, false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GoogleLogin godoc
// @Summary Вход через Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "ID token"
// @Success 200 {object} dto.GoogleLoginResponse
// @Failure 400 {object} apperrors.AppError
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.authService.GoogleLogin(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Logout godoc
// @Summary Выход, токен попадает в blacklist до истечения
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		apperrors.HandleError(c, apperrors.ErrNoToken)
		return
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.authService.Logout(c.Request.Context(), claims.RegisteredClaims.ID, expiresAt); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}

// ForgotPassword всегда отвечает 200, чтобы не раскрывать наличие аккаунта
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset link sent to your email"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(h.GetDB(c), c.Param("token"), req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password updated successfully!"})
}

// GetProfile godoc
// @Summary Профиль текущего аккаунта
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Account
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	account, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AuthHandler) GetSettings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	account, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": account})
}

// UpdateSettings godoc
// @Summary Обновление настроек профиля
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SettingsRequest true "Изменяемые поля"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} apperrors.AppError
// @Router /auth/settings [put]
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SettingsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.profileService.UpdateSettings(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{Message: "Settings updated successfully", User: account})
}

// UploadProfileImage godoc
// @Summary Загрузка аватара (multipart поле image)
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Изображение"
// @Success 200 {object} dto.ProfileImageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 415 {object} apperrors.AppError
// @Router /auth/upload-profile [post]
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fh, err := OptionalFile(c, "image")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if fh == nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No image file provided"))
		return
	}

	url, err := h.profileService.UploadProfileImage(c.Request.Context(), h.GetDB(c), userID, fh)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Profile image uploaded", "size", fh.Size)
	c.JSON(http.StatusOK, dto.ProfileImageResponse{
		Message:      "Profile image uploaded successfully",
		ProfileImage: url,
	})
}

func (h *AuthHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fh, err := OptionalFile(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if fh == nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}

	resume, err := h.profileService.UploadResume(c.Request.Context(), h.GetDB(c), userID, fh)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ResumeResponse{
		Success: true,
		Message: "Resume uploaded successfully",
		Resume:  resume,
	})
}

func (h *AuthHandler) DeleteResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.profileService.DeleteResume(c.Request.Context(), h.GetDB(c), userID, c.Param("resumeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResumeResponse{Success: true, Message: "Resume deleted successfully"})
}

// MarkPaymentSuccess godoc
// @Summary Ручная отметка оплаты (admin)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID аккаунта"
// @Param request body dto.MarkPaymentRequest true "Сумма"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /auth/payment-success/{id} [put]
func (h *AuthHandler) MarkPaymentSuccess(c *gin.Context) {
	var req dto.MarkPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.authService.MarkPaymentSuccess(h.GetDB(c), c.Param("id"), req.AmountPaid)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{Message: "Payment updated", User: account})
}
