package http

import (
	"net/http"

	"assoblog/internal/entity"
	"assoblog/internal/usecase"
	"assoblog/pkg/logger"
	"assoblog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewModerationHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

type ReviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetPendingPosts godoc
// @Summary      List posts awaiting review
// @Description  Admin review queue: pending posts only, newest first.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /moderation/pending [get]
func (h *ModerationHandler) GetPendingPosts(c *gin.Context) {
	limit, offset := pagination(c)

	posts, err := h.moderationUseCase.ListPending(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list pending posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pending posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// ReviewPost godoc
// @Summary      Approve or reject a pending post
// @Description  Admin only. The only legal targets are the two terminal states; concurrent reviews are last-write-wins.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body ReviewRequest true "Target status (approved or rejected)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /moderation/review/{post_id} [post]
func (h *ModerationHandler) ReviewPost(c *gin.Context) {
	postID := c.Param("post_id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := entity.Role(c.GetString(middleware.RoleKey))

	post, err := h.moderationUseCase.SetStatus(postID, entity.PostStatus(req.Status), role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "post reviewed",
		"post_id": post.ID,
		"status":  post.Status,
	})
}
