package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type TemplateRequest struct {
	ID      string `json:"id" validate:"omitempty,max=64"`
	Name    string `json:"name" validate:"required,max=80"`
	Content string `json:"content" validate:"required,max=4000"`
}

// @Summary List message templates
// @Tags templates
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/templates [get]
func (h *Handler) TemplatesList(c *gin.Context) {
	items, err := h.Templates.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list templates")
		return
	}
	if items == nil {
		items = []models.Template{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Create message template
// @Description Placeholders: {name} {plate} {vehicle} {date} {time} {address}
// @Tags templates
// @Accept json
// @Produce json
// @Param body body TemplateRequest true "template"
// @Success 201 {object} models.Template
// @Router /api/templates [post]
func (h *Handler) TemplateCreate(c *gin.Context) {
	var req TemplateRequest
	if !h.bind(c, &req) {
		return
	}
	t, err := h.Templates.Create(c.Request.Context(), models.Template{ID: req.ID, Name: req.Name, Content: req.Content})
	if err != nil {
		h.fail(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) TemplateUpdate(c *gin.Context) {
	var req TemplateRequest
	if !h.bind(c, &req) {
		return
	}
	t, err := h.Templates.Update(c.Request.Context(), c.Param("id"), models.Template{Name: req.Name, Content: req.Content})
	if err != nil {
		h.fail(c, err, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) TemplateDelete(c *gin.Context) {
	if err := h.Templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}
