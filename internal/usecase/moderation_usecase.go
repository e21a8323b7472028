package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/pkg/logger"
	"assoblog/pkg/queue"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	publishedChannel = "published_posts"
	postCacheTTL     = 24 * time.Hour
)

type SubmitInput struct {
	Title    string
	Content  string
	Category string
	Image    string
}

// ModerationUseCase owns the post lifecycle state machine. Posts enter as
// pending and move to exactly one of the two terminal states; deletion is an
// orthogonal, idempotent operation available from any state.
type ModerationUseCase interface {
	Submit(identity entity.Identity, role entity.Role, input SubmitInput) (*entity.Post, error)
	SetStatus(postID string, target entity.PostStatus, actorRole entity.Role) (*entity.Post, error)
	Remove(postID string, actorRole entity.Role) error
	ListApproved(limit, offset int) ([]*entity.Post, error)
	GetApproved(postID string) (*entity.Post, error)
	ListPending(limit, offset int) ([]*entity.Post, error)
}

type moderationUseCase struct {
	posts       persistent.PostRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewModerationUseCase(
	posts persistent.PostRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		posts:       posts,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *moderationUseCase) Submit(identity entity.Identity, role entity.Role, input SubmitInput) (*entity.Post, error) {
	if role != entity.RoleAuthor && role != entity.RoleAdmin {
		return nil, &entity.PermissionError{Role: role, Action: "submit posts"}
	}

	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Content == "" {
		missing = append(missing, "content")
	}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, &entity.ValidationError{Fields: missing}
	}

	post := &entity.Post{
		Title:       input.Title,
		Content:     input.Content,
		Category:    input.Category,
		Image:       input.Image,
		AuthorID:    identity.ID,
		AuthorEmail: identity.Email,
		Status:      entity.StatusPending,
	}

	if err := uc.posts.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if uc.queueClient != nil {
		go uc.publishEvent("post_submitted", post)
	}

	return post, nil
}

// SetStatus moves a pending post to one of the two terminal states. The
// underlying update carries no version stamp: two concurrent calls on the
// same post are last-write-wins.
func (uc *moderationUseCase) SetStatus(postID string, target entity.PostStatus, actorRole entity.Role) (*entity.Post, error) {
	if actorRole != entity.RoleAdmin {
		return nil, &entity.PermissionError{Role: actorRole, Action: "moderate posts"}
	}
	if target != entity.StatusApproved && target != entity.StatusRejected {
		return nil, &entity.InvalidTransitionError{Target: target}
	}

	post, err := uc.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &entity.NotFoundError{Resource: "post", ID: postID}
		}
		return nil, err
	}

	rows, err := uc.posts.UpdateStatus(postID, target)
	if err != nil {
		uc.logger.Error("Failed to update post status: %v", err)
		return nil, err
	}
	if rows == 0 {
		// Deleted out from under us between the read and the write.
		return nil, &entity.NotFoundError{Resource: "post", ID: postID}
	}
	post.Status = target

	if target == entity.StatusApproved {
		uc.cachePost(post)
		if uc.redisClient != nil {
			ctx := context.Background()
			if err := uc.redisClient.Publish(ctx, publishedChannel, post.ID).Err(); err != nil {
				uc.logger.Warn("Failed to publish approval of %s: %v", post.ID, err)
			}
		}
	} else {
		uc.dropCachedPost(postID)
	}

	if uc.queueClient != nil {
		go uc.publishEvent("post_"+string(target), post)
	}

	return post, nil
}

// Remove deletes the row regardless of state. Deleting a post that a
// concurrent actor already removed reports success: deletion is idempotent,
// unlike the status update.
func (uc *moderationUseCase) Remove(postID string, actorRole entity.Role) error {
	if actorRole != entity.RoleAdmin {
		return &entity.PermissionError{Role: actorRole, Action: "delete posts"}
	}

	if err := uc.posts.Delete(postID); err != nil {
		uc.logger.Error("Failed to delete post %s: %v", postID, err)
		return err
	}

	uc.dropCachedPost(postID)
	return nil
}

func (uc *moderationUseCase) ListApproved(limit, offset int) ([]*entity.Post, error) {
	return uc.posts.ListByStatus(entity.StatusApproved, limit, offset)
}

// GetApproved serves the public detail path. Anything that is not an approved
// post, including pending and rejected ones, reads as not found.
func (uc *moderationUseCase) GetApproved(postID string) (*entity.Post, error) {
	if post := uc.cachedPost(postID); post != nil {
		return post, nil
	}

	post, err := uc.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &entity.NotFoundError{Resource: "post", ID: postID}
		}
		return nil, err
	}
	if post.Status != entity.StatusApproved {
		return nil, &entity.NotFoundError{Resource: "post", ID: postID}
	}

	uc.cachePost(post)
	return post, nil
}

func (uc *moderationUseCase) ListPending(limit, offset int) ([]*entity.Post, error) {
	return uc.posts.ListByStatus(entity.StatusPending, limit, offset)
}

func (uc *moderationUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}
	ctx := context.Background()
	key := postCacheKey(post.ID)
	fields := map[string]interface{}{
		"id":           post.ID,
		"title":        post.Title,
		"content":      post.Content,
		"category":     post.Category,
		"image":        post.Image,
		"author_id":    post.AuthorID,
		"author_email": post.AuthorEmail,
		"status":       string(post.Status),
		"created_at":   post.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := uc.redisClient.HSet(ctx, key, fields).Err(); err != nil {
		uc.logger.Warn("Failed to cache post %s: %v", post.ID, err)
		return
	}
	uc.redisClient.Expire(ctx, key, postCacheTTL)
}

func (uc *moderationUseCase) cachedPost(postID string) *entity.Post {
	if uc.redisClient == nil {
		return nil
	}
	ctx := context.Background()
	fields, err := uc.redisClient.HGetAll(ctx, postCacheKey(postID)).Result()
	if err != nil || len(fields) == 0 {
		return nil
	}
	if fields["status"] != string(entity.StatusApproved) {
		return nil
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	return &entity.Post{
		ID:          fields["id"],
		Title:       fields["title"],
		Content:     fields["content"],
		Category:    fields["category"],
		Image:       fields["image"],
		AuthorID:    fields["author_id"],
		AuthorEmail: fields["author_email"],
		Status:      entity.PostStatus(fields["status"]),
		CreatedAt:   createdAt,
	}
}

func (uc *moderationUseCase) dropCachedPost(postID string) {
	if uc.redisClient == nil {
		return
	}
	ctx := context.Background()
	if err := uc.redisClient.Del(ctx, postCacheKey(postID)).Err(); err != nil {
		uc.logger.Warn("Failed to drop cached post %s: %v", postID, err)
	}
}

func (uc *moderationUseCase) publishEvent(eventType string, post *entity.Post) {
	event := map[string]interface{}{
		"type":         eventType,
		"post_id":      post.ID,
		"author_id":    post.AuthorID,
		"author_email": post.AuthorEmail,
		"category":     post.Category,
	}
	if err := uc.queueClient.PublishModerationEvent(event); err != nil {
		uc.logger.Error("Failed to publish %s event for post %s: %v", eventType, post.ID, err)
	}
}

func postCacheKey(postID string) string {
	return "post:" + postID
}
