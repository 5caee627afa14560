package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the extractor suggestion plus display forms of the phone
// and plate.
type ParseResponse struct {
	models.ParsedClient
	PhoneDisplay string `json:"phone_display,omitempty"`
	PlateDisplay string `json:"plate_display,omitempty"`
}

type ParseFileResponse struct {
	Filename string        `json:"filename"`
	Text     string        `json:"text"`
	Client   ParseResponse `json:"client"`
}

func newParseResponse(p models.ParsedClient) ParseResponse {
	return ParseResponse{
		ParsedClient: p,
		PhoneDisplay: extractor.FormatPhone(p.Phone),
		PlateDisplay: extractor.FormatPlate(p.Plate),
	}
}

// @Summary Extract client data from pasted text
// @Tags parse
// @Accept json
// @Produce json
// @Param body body ParseRequest true "free text"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} map[string]any
// @Router /api/parse [post]
func (h *Handler) Parse(c *gin.Context) {
	var req ParseRequest
	if !h.bind(c, &req) {
		return
	}
	if h.MaxPasteBytes > 0 && len(req.Text) > h.MaxPasteBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Text too long",
			fmt.Sprintf("limit is %d bytes", h.MaxPasteBytes))
		return
	}
	c.JSON(http.StatusOK, newParseResponse(h.Parser.Parse(req.Text)))
}

// @Summary Extract client data from an uploaded document
// @Description Accepts .txt, .pdf, .docx and .xlsx files.
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Success 200 {object} ParseFileResponse
// @Failure 400 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /api/parse/file [post]
func (h *Handler) ParseFile(c *gin.Context) {
	fh, data, ok := h.readUpload(c, "file")
	if !ok {
		return
	}
	text, err := h.Files.Extract(fh.Filename, data)
	if err != nil {
		h.Logger.Warn().Err(err).Str("file", fh.Filename).Msg("text extraction failed")
		h.fail(c, err, "Failed to extract text")
		return
	}
	c.JSON(http.StatusOK, ParseFileResponse{
		Filename: fh.Filename,
		Text:     text,
		Client:   newParseResponse(h.Parser.Parse(text)),
	})
}
