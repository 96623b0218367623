package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileHandler serves the per-user file operations. Every route is
// registered behind the session gate, so the resolved user is always in
// the request context.
type FileHandler struct {
	Files *service.FileService
}

// NewFileHandler creates the file handler.
func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{Files: files}
}

func currentUser(c *gin.Context) *model.User {
	value, _ := c.Get("user")
	user, _ := value.(*model.User)
	return user
}

// Upload stores a multipart file in the caller's bucket.
func (h *FileHandler) Upload(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty"})
		return
	}
	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed: " + err.Error()})
		return
	}
	defer src.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = utils.ContentTypeByName(header.Filename)
	}

	err = h.Files.Upload(c.Request.Context(), user, header.Filename, src, header.Size, mimeType)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "File uploaded successfully"})
	case errors.Is(err, service.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty"})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File with the same name already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed: " + err.Error()})
	}
}

// Download streams an object back as an attachment.
func (h *FileHandler) Download(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
		return
	}
	filename := c.Param("filename")

	content, err := h.Files.Download(c.Request.Context(), user, filename)
	switch {
	case err == nil:
		safeName := utils.SanitizeHeaderFilename(filename)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", safeName))
		c.Data(http.StatusOK, "application/octet-stream", content)
	case errors.Is(err, service.ErrBucketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bucket not found"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File download failed: " + err.Error()})
	}
}

// Update renames a file.
func (h *FileHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
		return
	}
	filename := c.Param("filename")

	var req dto.UpdateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err := h.Files.Rename(c.Request.Context(), user, filename, req.Name)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "File updated successfully"})
	case errors.Is(err, service.ErrBucketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bucket not found"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File with the same name already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File update failed: " + err.Error()})
	}
}

// Delete removes a file.
func (h *FileHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
		return
	}
	filename := c.Param("filename")

	err := h.Files.Delete(c.Request.Context(), user, filename)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
	case errors.Is(err, service.ErrBucketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bucket not found"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File deletion failed: " + err.Error()})
	}
}
