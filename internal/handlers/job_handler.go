package handlers

import (
	"net/http"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	public := rg.Group("/jobs")
	{
		public.GET("/all", g.cached(h.ListJobs)...)
	}

	recruiters := rg.Group("/jobs", g.authed(models.RoleRecruiter, models.RoleAdmin)...)
	{
		recruiters.POST("/add", h.CreateJob)
		recruiters.GET("/recruiter", h.ListRecruiterJobs)
		recruiters.GET("/recruiter/total", h.CountRecruiterJobs)
		recruiters.GET("/applications/recruiter", h.ListRecruiterApplications)
		recruiters.PATCH("/applications/:applicationId", h.UpdateApplicationStatus)

		// Владение проверяется в сервисе, чужая вакансия выглядит как отсутствующая
		recruiters.GET("/:jobId/applicants", h.ListApplicants)
		recruiters.PUT("/:jobId", h.UpdateJob)
		recruiters.DELETE("/:jobId", h.DeleteJob)
		recruiters.PATCH("/:jobId/visibility", h.SetVisibility)
	}

	authed := rg.Group("/jobs", g.authed()...)
	{
		authed.GET("/download-resume/:applicationId", h.DownloadResume)
	}

	rg.GET("/jobs/:jobId", h.GetJob)
}

// ListJobs godoc
// @Summary Список видимых вакансий
// @Tags jobs
// @Produce json
// @Param jobRole query string false "Роль"
// @Param industry query string false "Отрасль"
// @Param location query string false "Локация"
// @Param jobType query string false "Тип занятости"
// @Param experience query string false "Опыт"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.JobListResponse
// @Router /jobs/all [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dto.JobFilterQuery
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	page, pageSize := ParsePagination(c)

	res, err := h.jobService.ListJobs(h.GetDB(c), &filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetJob godoc
// @Summary Одна видимая вакансия
// @Tags jobs
// @Produce json
// @Param jobId path string true "ID вакансии"
// @Success 200 {object} dto.JobResult
// @Failure 404 {object} apperrors.AppError
// @Router /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(h.GetDB(c), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobResult{Success: true, Job: job})
}

// CreateJob godoc
// @Summary Публикация вакансии
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Вакансия"
// @Success 201 {object} dto.JobResult
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Router /jobs/add [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.JobResult{
		Success: true,
		Message: "Job created successfully",
		Job:     dto.NewJobResponse(job),
	})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), actor, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobResult{
		Success: true,
		Message: "Job updated successfully",
		Job:     dto.NewJobResponse(job),
	})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), actor, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Job deleted successfully"})
}

// SetVisibility godoc
// @Summary Показать или скрыть вакансию
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param request body dto.VisibilityRequest true "Видимость"
// @Success 200 {object} dto.JobResult
// @Failure 404 {object} apperrors.AppError
// @Router /jobs/{jobId}/visibility [patch]
func (h *JobHandler) SetVisibility(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.VisibilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.SetVisibility(c.Request.Context(), h.GetDB(c), actor, c.Param("jobId"), *req.IsVisible)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "Job is now hidden"
	if job.IsVisible {
		message = "Job is now visible"
	}
	c.JSON(http.StatusOK, dto.JobResult{Success: true, Message: message, Job: dto.NewJobResponse(job)})
}

func (h *JobHandler) ListRecruiterJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListRecruiterJobs(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecruiterJobsResponse{Success: true, Jobs: jobs})
}

func (h *JobHandler) CountRecruiterJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	total, err := h.jobService.CountRecruiterJobs(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalResponse{Success: true, Total: total})
}

// --- Отклики ---

func (h *JobHandler) ListApplicants(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	applicants, err := h.applicationService.ListApplicants(c.Request.Context(), h.GetDB(c), actor, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicantsResponse{Success: true, Applicants: applicants})
}

func (h *JobHandler) ListRecruiterApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListForRecruiter(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationsResponse{Success: true, Applications: applications})
}

// UpdateApplicationStatus godoc
// @Summary Принять или отклонить отклик
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Param request body dto.UpdateApplicationStatusRequest true "accepted или rejected"
// @Success 200 {object} dto.ApplicationStatusResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /jobs/applications/{applicationId} [patch]
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), actor, c.Param("applicationId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationStatusResponse{
		Success:     true,
		Message:     "Application " + string(application.Status),
		Application: application,
	})
}

// DownloadResume отдает ссылку, а не сам файл
func (h *JobHandler) DownloadResume(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	url, err := h.applicationService.ResumeDownloadURL(c.Request.Context(), h.GetDB(c), actor, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignedURLResponse{URL: url})
}
