package handlers

import (
	"net/http"

	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CandidateHandler - публичные каталоги соискателей и рекрутеров
type CandidateHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewCandidateHandler(base *BaseHandler, profileService services.ProfileService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup, g *RouteGuards) {
	candidates := rg.Group("/candidates")
	{
		candidates.GET("", h.ListCandidates)
		candidates.GET("/rec", h.ListRecruiters)
	}
}

// ListCandidates godoc
// @Summary Каталог соискателей
// @Tags candidates
// @Produce json
// @Param gender query string false "Male, Female, Other или All"
// @Param location query string false "Подстрока"
// @Param experience query string false "Подстрока"
// @Param education query string false "Подстрока"
// @Param search query string false "Имя, профессия или навык"
// @Success 200 {array} dto.CandidateResponse
// @Router /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	var q dto.CandidateQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	candidates, err := h.profileService.ListCandidates(h.GetDB(c), &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

func (h *CandidateHandler) ListRecruiters(c *gin.Context) {
	recruiters, err := h.profileService.ListRecruiters(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recruiters)
}
