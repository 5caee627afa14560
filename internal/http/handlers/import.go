package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Import an installer spreadsheet
// @Description Every client row of the first sheet becomes a client with status Fazer.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "installer .xlsx"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Router /api/import/spreadsheet [post]
func (h *Handler) ImportSpreadsheet(c *gin.Context) {
	fh, data, ok := h.readUpload(c, "file")
	if !ok {
		return
	}
	summary, err := h.Importer.ImportSpreadsheet(c.Request.Context(), fh.Filename, data)
	if err != nil {
		h.fail(c, err, "Failed to import spreadsheet")
		return
	}
	c.JSON(http.StatusOK, summary)
}
