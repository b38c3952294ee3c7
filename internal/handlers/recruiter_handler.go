package handlers

import (
	"net/http"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	*BaseHandler
	authService    services.AuthService
	profileService services.ProfileService
}

func NewRecruiterHandler(base *BaseHandler, authService services.AuthService, profileService services.ProfileService) *RecruiterHandler {
	return &RecruiterHandler{
		BaseHandler:    base,
		authService:    authService,
		profileService: profileService,
	}
}

func (h *RecruiterHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	recruiter := rg.Group("/recruiter")
	{
		recruiter.POST("/register", g.limited(h.Register)...)
		recruiter.POST("/login", g.limited(h.Login)...)
		recruiter.POST("/verify-email", g.limited(h.VerifyEmail)...)
	}

	protected := rg.Group("/recruiter", g.authed(models.RoleRecruiter)...)
	{
		protected.PUT("/setup", h.Setup)
	}
}

// Register godoc
// @Summary Регистрация рекрутера
// @Tags recruiter
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} apperrors.AppError
// @Router /recruiter/register [post]
func (h *RecruiterHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.authService.Register(c.Request.Context(), h.GetDB(c), models.RoleRecruiter, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *RecruiterHandler) VerifyEmail(c *gin.Context) {
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

// Login - тот же вход, но только для role=recruiter
func (h *RecruiterHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.authService.Login(h.GetDB(c), &req, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Setup godoc
// @Summary Настройка компании рекрутера
// @Tags recruiter
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param logo formData file false "Логотип"
// @Param banner formData file false "Баннер"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} apperrors.AppError
// @Router /recruiter/setup [put]
func (h *RecruiterHandler) Setup(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RecruiterSetupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	logo, err := OptionalFile(c, "logo")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	banner, err := OptionalFile(c, "banner")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	account, err := h.profileService.SetupRecruiter(c.Request.Context(), h.GetDB(c), userID, &req, logo, banner)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		Message: "Recruiter profile setup completed successfully!",
		User:    account,
	})
}
