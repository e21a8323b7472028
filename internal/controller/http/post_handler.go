package http

import (
	"net/http"
	"strconv"
	"time"

	"assoblog/internal/entity"
	"assoblog/internal/usecase"
	"assoblog/pkg/logger"
	"assoblog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewPostHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

type SubmitPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
	Image    string `json:"image"`
}

// ListPosts godoc
// @Summary      List published posts
// @Description  Public listing: approved posts only, newest first.
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, offset := pagination(c)

	posts, err := h.moderationUseCase.ListApproved(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list approved posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetPost godoc
// @Summary      Get a published post
// @Description  Public detail path. Pending and rejected posts read as not found.
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.moderationUseCase.GetApproved(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// SubmitPost godoc
// @Summary      Submit a post for review
// @Description  Authors and admins submit drafts. The post enters the moderation queue as pending, never as approved.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitPostRequest true "Draft"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) SubmitPost(c *gin.Context) {
	var req SubmitPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := entity.Identity{
		ID:       c.GetString(middleware.UserIDKey),
		Email:    c.GetString(middleware.EmailKey),
		IssuedAt: time.Now(),
	}
	role := entity.Role(c.GetString(middleware.RoleKey))

	post, err := h.moderationUseCase.Submit(identity, role, usecase.SubmitInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Admin only. Deletion is irreversible and idempotent: deleting an already-removed post reports success.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	role := entity.Role(c.GetString(middleware.RoleKey))

	if err := h.moderationUseCase.Remove(c.Param("id"), role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
