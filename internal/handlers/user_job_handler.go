package handlers

import (
	"net/http"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserJobHandler - действия соискателя с вакансиями: отклики и избранное
type UserJobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
	favoriteService    services.FavoriteService
}

func NewUserJobHandler(
	base *BaseHandler,
	jobService services.JobService,
	applicationService services.ApplicationService,
	favoriteService services.FavoriteService,
) *UserJobHandler {
	return &UserJobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
		favoriteService:    favoriteService,
	}
}

func (h *UserJobHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	rg.GET("/user/jobs/experience-count", g.cached(h.ExperienceCounts)...)

	jobs := rg.Group("/user/jobs", g.authed(models.RoleUser)...)
	{
		jobs.POST("/:jobId/apply", h.Apply)
		jobs.GET("/:jobId/status", h.CheckApplied)
		jobs.GET("/applied", h.ListApplied)
		jobs.GET("/applied/count", h.CountApplied)
		jobs.POST("/favorites/toggle", h.ToggleFavorite)
		jobs.GET("/favorites", h.ListFavorites)
		jobs.GET("/favorite/count", h.CountFavorites)
	}
}

// Apply godoc
// @Summary Отклик на вакансию
// @Description Резюме передается ссылкой (resume + resumeId) или файлом в поле resume
// @Tags user-jobs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param coverLetter formData string false "Сопроводительное письмо"
// @Param resume formData file false "Файл резюме (PDF, DOC, DOCX)"
// @Success 201 {object} dto.ApplyResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /user/jobs/{jobId}/apply [post]
func (h *UserJobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	file, err := OptionalFile(c, "resume")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	applied, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"), &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplyResponse{
		Success:    true,
		Message:    "Application submitted successfully",
		AppliedJob: applied,
	})
}

func (h *UserJobHandler) CheckApplied(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applied, err := h.applicationService.HasApplied(h.GetDB(c), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AppliedStatusResponse{Success: true, Applied: applied})
}

func (h *UserJobHandler) ListApplied(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.applicationService.ListApplied(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appliedJobs": items})
}

func (h *UserJobHandler) CountApplied(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.applicationService.CountApplied(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: count})
}

// ToggleFavorite godoc
// @Summary Добавить или убрать вакансию из избранного
// @Tags user-jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ToggleFavoriteRequest true "ID вакансии"
// @Success 200 {object} dto.FavoriteResponse
// @Failure 404 {object} apperrors.AppError
// @Router /user/jobs/favorites/toggle [post]
func (h *UserJobHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleFavoriteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	favorite, err := h.favoriteService.Toggle(h.GetDB(c), userID, req.JobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FavoriteResponse{Favorite: favorite})
}

func (h *UserJobHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.favoriteService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobsResponse{Success: true, Jobs: jobs})
}

func (h *UserJobHandler) CountFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.favoriteService.Count(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: count})
}

// ExperienceCounts godoc
// @Summary Число видимых вакансий по уровням опыта
// @Tags user-jobs
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /user/jobs/experience-count [get]
func (h *UserJobHandler) ExperienceCounts(c *gin.Context) {
	counts, err := h.jobService.ExperienceCounts(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
