package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"assoblog/pkg/logger"
	"assoblog/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

type GalleryHandler struct {
	storageClient *storage.Client
	logger        *logger.Logger
}

func NewGalleryHandler(storageClient *storage.Client, logger *logger.Logger) *GalleryHandler {
	return &GalleryHandler{
		storageClient: storageClient,
		logger:        logger,
	}
}

// Upload godoc
// @Summary      Upload a gallery image
// @Description  Admin only. Stores the image under a generated key and returns its public URL.
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "Image file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /gallery [post]
func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	key := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	url, err := h.storageClient.UploadFile(key, file, contentType)
	if err != nil {
		h.logger.Error("Failed to upload %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}

// List godoc
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	files, err := h.storageClient.ListFiles()
	if err != nil {
		h.logger.Error("Failed to list gallery: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list gallery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files, "count": len(files)})
}

// Delete godoc
// @Summary      Delete a gallery image
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        key path string true "Object key"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /gallery/{key} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	key := c.Param("key")
	if err := h.storageClient.DeleteFile(key); err != nil {
		h.logger.Error("Failed to delete %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
