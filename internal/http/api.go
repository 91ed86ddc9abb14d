package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sl-notes/internal/auth"
	"sl-notes/internal/domain"
	"sl-notes/internal/service"
	"sl-notes/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	subjects  service.SubjectService
	notes     service.NoteService
	stats     service.StatsService
	storage   storage.Service
	tokens    *auth.Tokens
	maxUpload int64
	uploadDir string
	logger    *logrus.Logger
}

// Options carries the dependencies for NewHandler.
type Options struct {
	Users     service.UserService
	Subjects  service.SubjectService
	Notes     service.NoteService
	Stats     service.StatsService
	Storage   storage.Service
	Tokens    *auth.Tokens
	MaxUpload int64
	UploadDir string // non-empty when uploads are served from local disk
	Logger    *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	return &Handler{
		users:     opts.Users,
		subjects:  opts.Subjects,
		notes:     opts.Notes,
		stats:     opts.Stats,
		storage:   opts.Storage,
		tokens:    opts.Tokens,
		maxUpload: opts.MaxUpload,
		uploadDir: opts.UploadDir,
		logger:    opts.Logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	if h.uploadDir != "" {
		router.Static("/uploads", h.uploadDir)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "SL Notes API", "docs": "/api/health"})
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.GET("/verify/:token", h.verifyEmail)
			authGroup.GET("/me", h.requireUser(), h.getMe)
			authGroup.PUT("/me", h.requireUser(), h.requireActive(), h.updateMe)
		}

		subjects := api.Group("/subjects")
		{
			subjects.GET("", h.listSubjects)
			subjects.GET("/:id", h.getSubject)
			subjects.POST("", h.requireUser(), h.requireActive(), h.requireAdmin(), h.createSubject)
			subjects.PUT("/:id", h.requireUser(), h.requireActive(), h.requireAdmin(), h.updateSubject)
			subjects.DELETE("/:id", h.requireUser(), h.requireActive(), h.requireAdmin(), h.deleteSubject)
		}

		notes := api.Group("/notes")
		{
			// static route must register before the dynamic :id route
			notes.GET("/user/me", h.requireUser(), h.listMyNotes)
			notes.GET("", h.listNotes)
			notes.GET("/:id", h.getNote)
			notes.POST("", h.requireUser(), h.requireActive(), h.createNote)
			notes.PUT("/:id", h.requireUser(), h.requireActive(), h.updateNote)
			notes.DELETE("/:id", h.requireUser(), h.requireActive(), h.deleteNote)
		}

		search := api.Group("/search")
		{
			search.GET("", h.searchNotes)
			search.GET("/subjects", h.searchSubjects)
		}

		upload := api.Group("/upload", h.requireUser(), h.requireActive())
		{
			upload.POST("", h.uploadFile)
			upload.DELETE("/:filename", h.deleteFile)
		}

		admin := api.Group("/admin", h.requireUser(), h.requireActive(), h.requireAdmin())
		{
			admin.GET("/stats", h.adminStats)
			admin.GET("/users", h.adminListUsers)
			admin.PUT("/users/:id", h.adminUpdateUser)
			admin.DELETE("/users/:id", h.adminDeleteUser)
			admin.GET("/notes", h.adminListNotes)
			admin.PUT("/notes/:id/publish", h.adminTogglePublish)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// serviceError maps service sentinels onto their HTTP status.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrInvalidVerification):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrSubjectExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type UserResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	IsAdmin    bool   `json:"is_admin"`
	CreatedAt  string `json:"created_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		IsAdmin:    user.IsAdmin,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}

type SubjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ExamType    string `json:"exam_type"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

func subjectToResponse(subject domain.Subject) SubjectResponse {
	return SubjectResponse{
		ID:          subject.ID,
		Name:        subject.Name,
		ExamType:    string(subject.ExamType),
		Description: subject.Description,
		IsActive:    subject.IsActive,
		CreatedAt:   subject.CreatedAt.Format(time.RFC3339),
	}
}

type NoteResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	SubjectID   int64  `json:"subject_id"`
	Topic       string `json:"topic,omitempty"`
	AuthorID    int64  `json:"author_id"`
	FileURL     string `json:"file_url,omitempty"`
	IsPublished bool   `json:"is_published"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func noteToResponse(note domain.Note) NoteResponse {
	return NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Content:     note.Content,
		SubjectID:   note.SubjectID,
		Topic:       note.Topic,
		AuthorID:    note.AuthorID,
		FileURL:     note.FileURL,
		IsPublished: note.IsPublished,
		ViewCount:   note.ViewCount,
		CreatedAt:   note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   note.UpdatedAt.Format(time.RFC3339),
	}
}

func notesToResponse(notes []domain.Note) []NoteResponse {
	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = noteToResponse(notes[i])
	}
	return resp
}
