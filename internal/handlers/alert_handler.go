package handlers

import (
	"net/http"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	*BaseHandler
	alertService services.AlertService
}

func NewAlertHandler(base *BaseHandler, alertService services.AlertService) *AlertHandler {
	return &AlertHandler{
		BaseHandler:  base,
		alertService: alertService,
	}
}

func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	alerts := rg.Group("/user/alerts", g.authed(models.RoleUser)...)
	{
		alerts.POST("/create", h.CreateAlert)
		alerts.GET("/matches", h.Matches)
		alerts.GET("/count", h.Count)
	}
}

// CreateAlert godoc
// @Summary Сохранить фильтр для подбора вакансий
// @Tags alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AlertRequest true "Фильтр"
// @Success 201 {object} dto.AlertResponse
// @Router /user/alerts/create [post]
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AlertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	alert, err := h.alertService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AlertResponse{Success: true, Message: "Job alert created", Alert: alert})
}

// Matches - вакансии по последнему сохраненному фильтру
func (h *AlertHandler) Matches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.alertService.Matches(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobsResponse{Success: true, Jobs: jobs})
}

func (h *AlertHandler) Count(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.alertService.Count(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: count})
}
