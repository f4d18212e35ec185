package tasting

import (
	"strings"

	"github.com/cellar-club/tasting/internal/middleware"
	"github.com/cellar-club/tasting/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wines", h.wines)
	rg.POST("/submissions", h.submit)
	rg.GET("/records", h.records)
	rg.GET("/view", h.view)
	rg.POST("/view/regenerate", h.regenerate)
}

func (h *Handler) wines(c *gin.Context) {
	response.OK(c, h.svc.Wines())
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	// A blank form field binds as 0; treat it like a missing rating.
	if raw, ok := c.GetPostForm("rating"); ok && strings.TrimSpace(raw) == "" {
		dto.Rating = nil
	}
	result, err := h.svc.Submit(c.Request.Context(), dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *Handler) records(c *gin.Context) {
	records, err := h.svc.Records(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, records)
}

func (h *Handler) view(c *gin.Context) {
	var q ViewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.render(c, q)
}

func (h *Handler) regenerate(c *gin.Context) {
	var q ViewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&q); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	q.Regenerate = true
	h.render(c, q)
}

func (h *Handler) render(c *gin.Context, q ViewQuery) {
	result, err := h.svc.View(c.Request.Context(), middleware.SessionID(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, result)
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	if IsValidationError(err) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err)
}
