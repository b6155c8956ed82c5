package controllers

import (
	"context"
	"errors"
	"net/http"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/internal/service/curriculum"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EditorService interface {
	Structure(ctx context.Context, courseID uuid.UUID) ([]models.Section, bool, error)
	Search(ctx context.Context, courseID uuid.UUID, term string) ([]models.Section, error)
	Reorder(ctx context.Context, courseID uuid.UUID, move models.MoveDescriptor) ([]models.Section, bool, error)
	AddSection(ctx context.Context, courseID uuid.UUID, title string) (models.Section, error)
	AddItem(ctx context.Context, courseID, sectionID uuid.UUID, draft models.ContentDraft) (models.ContentItem, error)
	Toggle(ctx context.Context, courseID, contentID uuid.UUID, attribute string) (models.ContentItem, <-chan curriculum.ToggleResult, error)
	RequestDelete(ctx context.Context, courseID, contentID uuid.UUID) (uuid.UUID, string, error)
	RequestSaveOrder(ctx context.Context, courseID uuid.UUID) (uuid.UUID, string, error)
	Confirm(ctx context.Context, token uuid.UUID) error
	Cancel(token uuid.UUID) error
}

type CurriculumHandler struct {
	log     logger.Log
	service EditorService
}

func NewCurriculumHandler(log logger.Log, service EditorService) *CurriculumHandler {
	return &CurriculumHandler{log: log, service: service}
}

func (h *CurriculumHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrContentNotFound),
		errors.Is(err, app_errors.ErrSectionNotFound),
		errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrConfirmationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrPublishLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrToggleInProgress),
		errors.Is(err, app_errors.ErrDuplicateContent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrInvalidMove),
		errors.Is(err, app_errors.ErrOutOfRange),
		errors.Is(err, app_errors.ErrUnknownAttribute):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.ErrorErr("unexpected error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// Structure returns the canonical snapshot, or the projected view when a
// search term is supplied.
func (h *CurriculumHandler) Structure(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	if term := c.Query("q"); term != "" {
		sections, err := h.service.Search(c.Request.Context(), courseID, term)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sections": sections, "q": term})
		return
	}

	sections, dirty, err := h.service.Structure(c.Request.Context(), courseID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "dirty": dirty})
}

func (h *CurriculumHandler) Reorder(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	var move models.MoveDescriptor
	if err := c.ShouldBindJSON(&move); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sections, dirty, err := h.service.Reorder(c.Request.Context(), courseID, move)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "dirty": dirty})
}

type createSectionRequest struct {
	Title string `json:"section_title" binding:"required"`
}

func (h *CurriculumHandler) CreateSection(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	var req createSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.AddSection(c.Request.Context(), courseID, req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *CurriculumHandler) CreateItem(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	sectionID, ok := pathUUID(c, "section_id")
	if !ok {
		return
	}

	var draft models.ContentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), courseID, sectionID, draft)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ToggleFree and TogglePublish answer 202 with the optimistic item; the
// commit resolves asynchronously and a rollback is announced through the
// notification channel.
func (h *CurriculumHandler) ToggleFree(c *gin.Context) {
	h.toggle(c, models.AttributeFree)
}

func (h *CurriculumHandler) TogglePublish(c *gin.Context) {
	h.toggle(c, models.AttributePublished)
}

func (h *CurriculumHandler) toggle(c *gin.Context, attribute string) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}

	item, _, err := h.service.Toggle(c.Request.Context(), courseID, contentID, attribute)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"item": item, "state": "pending"})
}

func (h *CurriculumHandler) RequestDelete(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}

	token, description, err := h.service.RequestDelete(c.Request.Context(), courseID, contentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "description": description})
}

func (h *CurriculumHandler) RequestSaveOrder(c *gin.Context) {
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	token, description, err := h.service.RequestSaveOrder(c.Request.Context(), courseID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "description": description})
}

func (h *CurriculumHandler) Confirm(c *gin.Context) {
	token, ok := pathUUID(c, "token")
	if !ok {
		return
	}

	if err := h.service.Confirm(c.Request.Context(), token); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

func (h *CurriculumHandler) Cancel(c *gin.Context) {
	token, ok := pathUUID(c, "token")
	if !ok {
		return
	}

	if err := h.service.Cancel(token); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
