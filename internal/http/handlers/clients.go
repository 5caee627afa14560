package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type ClientRequest struct {
	Name          string `json:"name" validate:"max=120"`
	Phone         string `json:"phone" validate:"max=20"`
	CPF           string `json:"cpf" validate:"max=14"`
	Address       string `json:"address" validate:"max=300"`
	Vehicle       string `json:"vehicle" validate:"max=120"`
	Plate         string `json:"plate" validate:"max=10"`
	TrackerNumber string `json:"tracker_number" validate:"max=20"`
	TrackerModel  string `json:"tracker_model" validate:"max=60"`
	Observations  string `json:"observations" validate:"max=2000"`
	ScheduledDate string `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	Status        string `json:"status" validate:"omitempty,oneof=Fazer Agendado Retirado"`
}

func (r ClientRequest) toModel() models.Client {
	return models.Client{
		Name:          r.Name,
		Phone:         r.Phone,
		CPF:           r.CPF,
		Address:       r.Address,
		Vehicle:       r.Vehicle,
		Plate:         r.Plate,
		TrackerNumber: r.TrackerNumber,
		TrackerModel:  r.TrackerModel,
		Observations:  r.Observations,
		ScheduledDate: r.ScheduledDate,
		ScheduledTime: r.ScheduledTime,
		Status:        models.ClientStatus(r.Status),
	}
}

type ClientListResponse struct {
	Items []models.Client `json:"items"`
	Stats models.Stats    `json:"stats"`
}

// @Summary List clients
// @Description Pending work first, newest first within a status. Stats always cover every client.
// @Tags clients
// @Produce json
// @Param q query string false "search over name, plate and vehicle"
// @Param status query string false "Fazer, Agendado, Retirado or Todos"
// @Success 200 {object} ClientListResponse
// @Router /api/clients [get]
func (h *Handler) ClientsList(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.ClientFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Status: c.Query("status"),
	}
	items, err := h.Clients.List(ctx, filter)
	if err != nil {
		h.fail(c, err, "Failed to list clients")
		return
	}
	stats, err := h.Clients.Stats(ctx)
	if err != nil {
		h.fail(c, err, "Failed to count clients")
		return
	}
	if items == nil {
		items = []models.Client{}
	}
	c.JSON(http.StatusOK, ClientListResponse{Items: items, Stats: stats})
}

// @Summary Client counters by status
// @Tags clients
// @Produce json
// @Success 200 {object} models.Stats
// @Router /api/clients/stats [get]
func (h *Handler) ClientStats(c *gin.Context) {
	stats, err := h.Clients.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to count clients")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ClientDetails(c *gin.Context) {
	client, err := h.Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Create client
// @Description Missing fields get defaults: name "Sem Nome", status Fazer.
// @Tags clients
// @Accept json
// @Produce json
// @Param body body ClientRequest true "client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]any
// @Router /api/clients [post]
func (h *Handler) ClientCreate(c *gin.Context) {
	var req ClientRequest
	if !h.bind(c, &req) {
		return
	}
	client, err := h.Clients.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.fail(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "client id"
// @Param body body ClientRequest true "client"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]any
// @Router /api/clients/{id} [put]
func (h *Handler) ClientUpdate(c *gin.Context) {
	var req ClientRequest
	if !h.bind(c, &req) {
		return
	}
	client, err := h.Clients.Update(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		h.fail(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) ClientDelete(c *gin.Context) {
	if err := h.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle client status
// @Description Retirado goes back to Fazer, anything else becomes Retirado.
// @Tags clients
// @Produce json
// @Param id path string true "client id"
// @Success 200 {object} models.Client
// @Router /api/clients/{id}/toggle [post]
func (h *Handler) ClientToggle(c *gin.Context) {
	client, err := h.Clients.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to toggle status")
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Render a message template for a client
// @Tags clients
// @Produce json
// @Param id path string true "client id"
// @Param template_id query string true "template id"
// @Success 200 {object} map[string]string
// @Router /api/clients/{id}/message [get]
func (h *Handler) ClientMessage(c *gin.Context) {
	templateID := strings.TrimSpace(c.Query("template_id"))
	if templateID == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "template_id is required", nil)
		return
	}
	msg, err := h.Templates.Message(c.Request.Context(), c.Param("id"), templateID)
	if err != nil {
		h.fail(c, err, "Failed to render message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"template_id": templateID, "message": msg})
}
