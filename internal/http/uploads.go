package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedUploadExts = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

func allowedExtList() string {
	exts := make([]string, 0, len(allowedUploadExts))
	for ext := range allowedUploadExts {
		exts = append(exts, ext)
	}
	return strings.Join(exts, ", ")
}

func (h *Handler) uploadFile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no filename provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedUploadExts[ext]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file type not allowed. Allowed types: %s", allowedExtList()),
		})
		return
	}

	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file too large. Maximum size: %dMB", h.maxUpload/1024/1024),
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102"),
		uuid.NewString()[:8],
		ext,
	)

	contentType := fileHeader.Header.Get("Content-Type")
	fileURL, err := h.storage.Put(c.Request.Context(), filename, contentType, src)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	// attach to the caller's note when requested; a foreign or missing note
	// is skipped without failing the upload
	if noteIDStr := c.Query("note_id"); noteIDStr != "" {
		if noteID, err := strconv.ParseInt(noteIDStr, 10, 64); err == nil && noteID > 0 {
			if err := h.notes.AttachFile(c.Request.Context(), user.ID, noteID, fileURL); err != nil {
				h.logger.WithError(err).WithField("note_id", noteID).Warn("attach upload to note")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"file_url": fileURL,
		"filename": filename,
	})
}

func (h *Handler) deleteFile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	// basename only, to block path traversal
	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == ".." {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), filename)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), filename); err != nil && !os.IsNotExist(err) {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
