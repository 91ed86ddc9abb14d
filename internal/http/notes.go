package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/repository"
	"sl-notes/internal/service"
)

type noteListResponse struct {
	Notes   []NoteResponse `json:"notes"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

func (h *Handler) listNotes(c *gin.Context) {
	subjectID, _ := strconv.ParseInt(c.Query("subject_id"), 10, 64)
	publishedOnly, err := strconv.ParseBool(c.DefaultQuery("published_only", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag published_only"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	list, err := h.notes.List(c.Request.Context(), repository.NoteFilter{
		SubjectID:     subjectID,
		ExamType:      c.Query("exam_type"),
		Topic:         c.Query("topic"),
		PublishedOnly: publishedOnly,
	}, page, perPage)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, noteListResponse{
		Notes:   notesToResponse(list.Notes),
		Total:   list.Total,
		Page:    list.Page,
		PerPage: list.PerPage,
	})
}

func (h *Handler) getNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.notes.Get(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, noteToResponse(*note))
}

func (h *Handler) listMyNotes(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	notes, err := h.notes.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notesToResponse(notes))
}

type createNoteRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	SubjectID   int64  `json:"subject_id" binding:"required"`
	Topic       string `json:"topic"`
	FileURL     string `json:"file_url"`
	IsPublished *bool  `json:"is_published"`
}

func (h *Handler) createNote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	note, err := h.notes.Create(c.Request.Context(), user.ID, service.NoteCreate{
		Title:       req.Title,
		Content:     req.Content,
		SubjectID:   req.SubjectID,
		Topic:       req.Topic,
		FileURL:     req.FileURL,
		IsPublished: published,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, noteToResponse(*note))
}

type updateNoteRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Topic       *string `json:"topic"`
	FileURL     *string `json:"file_url"`
	IsPublished *bool   `json:"is_published"`
}

func (h *Handler) updateNote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.Update(c.Request.Context(), user, id, service.NoteUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Topic:       req.Topic,
		FileURL:     req.FileURL,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, noteToResponse(*note))
}

func (h *Handler) deleteNote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), user, id); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
