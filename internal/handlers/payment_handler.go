package handlers

import (
	"net/http"

	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	recruiter := rg.Group("/payment", g.authed()...)
	{
		recruiter.POST("/recruiter/initiate", h.InitiateRecruiter)
		recruiter.GET("/recruiter/verify", h.VerifyRecruiter)
		recruiter.GET("/recruiter/status/:id", h.RecruiterStatus)
		recruiter.POST("/verify", h.VerifyForCaller)
	}

	user := rg.Group("/user", g.authed()...)
	{
		user.POST("/initiate", h.InitiateUser)
		user.GET("/verify", h.VerifyUser)
		user.GET("/status/:id", h.UserStatus)
		user.POST("/payment/initialize", h.InitializeForCaller)
		user.GET("/payment/verify/:reference", h.VerifyReference)
	}
}

// InitiateRecruiter godoc
// @Summary Начать оплату размещения вакансий
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InitiatePaymentRequest true "Email и сумма в naira"
// @Success 200 {object} payment.Authorization
// @Failure 500 {object} apperrors.AppError
// @Router /payment/recruiter/initiate [post]
func (h *PaymentHandler) InitiateRecruiter(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	authz, err := h.paymentService.InitiateRecruiter(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authz)
}

// VerifyRecruiter godoc
// @Summary Проверить оплату рекрутера
// @Tags payment
// @Produce json
// @Security BearerAuth
// @Param reference query string true "Reference транзакции"
// @Param recruiterId query string false "ID рекрутера, по умолчанию вызывающий"
// @Success 200 {object} dto.PaymentVerifiedResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Router /payment/recruiter/verify [get]
func (h *PaymentHandler) VerifyRecruiter(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var q dto.VerifyPaymentQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	res, err := h.paymentService.VerifyRecruiter(c.Request.Context(), h.GetDB(c), actor, q.Reference, q.RecruiterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) RecruiterStatus(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	res, err := h.paymentService.RecruiterStatus(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) InitiateUser(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	authz, err := h.paymentService.InitiateUser(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authz)
}

func (h *PaymentHandler) VerifyUser(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var q dto.VerifyPaymentQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	res, err := h.paymentService.VerifyUser(c.Request.Context(), h.GetDB(c), actor, q.Reference, q.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) UserStatus(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	res, err := h.paymentService.UserStatus(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// InitializeForCaller - email берется из аккаунта, callback ведет на /pricing/verify
func (h *PaymentHandler) InitializeForCaller(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.InitializePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	authz, err := h.paymentService.InitializeForCaller(c.Request.Context(), h.GetDB(c), actor, req.Amount)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authz)
}

func (h *PaymentHandler) VerifyReference(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	res, err := h.paymentService.VerifyForCaller(c.Request.Context(), h.GetDB(c), actor, c.Param("reference"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// VerifyForCaller godoc
// @Summary Проверить оплату и отметить вызывающего оплатившим
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyReferenceRequest true "Reference"
// @Success 200 {object} dto.PaymentVerifiedResponse
// @Failure 400 {object} apperrors.AppError
// @Router /payment/verify [post]
func (h *PaymentHandler) VerifyForCaller(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.VerifyReferenceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.paymentService.VerifyForCaller(c.Request.Context(), h.GetDB(c), actor, req.Reference)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
