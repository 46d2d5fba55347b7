package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeiq-backend/internal/ingest"
	"resumeiq-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.upload)
	rg.GET("/session", h.snapshot)
	rg.DELETE("/session", h.reset)
	rg.POST("/chat", h.ask)
	rg.GET("/chat", h.transcript)
}

func (h *Handler) upload(c *gin.Context) {
	// Cap the request body at the document limit plus multipart overhead.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ingest.MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "file_too_large", "File size too large. Max 10MB.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "ingestion_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	mediaType := fileHeader.Header.Get("Content-Type")
	snap, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, mediaType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "upload_in_flight", "an upload is already being processed", nil)
		case errors.Is(err, ingest.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Please upload a PDF or TXT file.", nil)
		case errors.Is(err, ingest.ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "file_too_large", "File size too large. Max 10MB.", nil)
		case errors.Is(err, ingest.ErrUnreadable):
			respond.Error(c, http.StatusBadRequest, "ingestion_error", "Error reading file.", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "extraction_failed", extractionFailedMessage, nil)
		}
		return
	}

	respond.OK(c, snap)
}

func (h *Handler) snapshot(c *gin.Context) {
	respond.OK(c, h.Svc.Snapshot())
}

func (h *Handler) reset(c *gin.Context) {
	h.Svc.Reset()
	c.Status(http.StatusNoContent)
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	Reply Message `json:"reply"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	reply, err := h.Svc.Ask(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusConflict, "no_resume", "upload a resume before asking questions", nil)
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "question_in_flight", "a question is already being answered", nil)
		case errors.Is(err, ErrSuperseded):
			respond.Error(c, http.StatusConflict, "session_changed", "the session changed before the answer arrived", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question", nil)
		}
		return
	}

	respond.OK(c, askResponse{Reply: reply})
}

func (h *Handler) transcript(c *gin.Context) {
	respond.OK(c, gin.H{"messages": h.Svc.Session.Messages()})
}
