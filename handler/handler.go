package handler

import (
	"clipvault/dto"
	"clipvault/service"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"net/http"
)

// IdentityHeader carries the user id resolved by the fronting auth
// gateway. Requests reaching this service are already authenticated;
// an absent header means anonymous.
const IdentityHeader = "X-User-Id"

const identityKey = "userId"

type Handler struct {
	svc service.VideoService
}

func New(svc service.VideoService) *Handler {
	return &Handler{svc: svc}
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(IdentityHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, userID)
		c.Next()
	}
}

func (h *Handler) ListPublic(c *gin.Context) {
	videos, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) ListOwned(c *gin.Context) {
	videos, err := h.svc.ListOwned(c.Request.Context(), c.GetString(identityKey))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) ToggleVisibility(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}

	var req dto.ToggleVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	video, err := h.svc.ToggleVisibility(c.Request.Context(), c.GetString(identityKey), videoID, *req.IsPublic)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *Handler) Delete(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}

	var req dto.DeleteVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	video, err := h.svc.Delete(c.Request.Context(), c.GetString(identityKey), videoID, req.PublicID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *Handler) Ingest(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not found"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	video, err := h.svc.Ingest(c.Request.Context(), c.GetString(identityKey), service.IngestInput{
		File:        file,
		FileName:    fileHeader.Filename,
		Size:        fileHeader.Size,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		IsPublic:    c.PostForm("isPublic") == "true",
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
	case errors.Is(err, service.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, service.ErrPartialFailure):
		// 502 keeps a half-applied cross-service mutation distinguishable
		// from a total failure so operators know to reconcile.
		c.JSON(http.StatusBadGateway, gin.H{"error": "partial failure", "reconcile": "scheduled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
