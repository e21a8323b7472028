package persistent

import (
	"assoblog/internal/entity"
	"assoblog/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	ListByStatus(status entity.PostStatus, limit, offset int) ([]*entity.Post, error)
	UpdateStatus(id string, status entity.PostStatus) (int64, error)
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	m := ToPostModel(post)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(m)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var m model.PostModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&m), nil
}

func (r *postRepository) ListByStatus(status entity.PostStatus, limit, offset int) ([]*entity.Post, error) {
	var ms []model.PostModel
	query := r.db.Where("status = ?", string(status)).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(ms))
	for i := range ms {
		posts[i] = ToPostEntity(&ms[i])
	}
	return posts, nil
}

// UpdateStatus is a plain single-row update with no version check:
// concurrent updates are last-write-wins.
func (r *postRepository) UpdateStatus(id string, status entity.PostStatus) (int64, error) {
	res := r.db.Model(&model.PostModel{}).Where("id = ?", id).Update("status", string(status))
	return res.RowsAffected, res.Error
}

// Delete removes the row. Deleting a row that is already gone is not an
// error: deletion is idempotent by contract.
func (r *postRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.PostModel{}).Error
}
