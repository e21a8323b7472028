package persistent

import (
	"assoblog/internal/entity"
	"assoblog/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	UpdateRole(id string, role entity.Role) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	m := ToUserModel(user)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(m)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var m model.UserModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&m), nil
}

func (r *userRepository) List(limit, offset int) ([]*entity.User, error) {
	var ms []model.UserModel
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(ms))
	for i := range ms {
		users[i] = ToUserEntity(&ms[i])
	}
	return users, nil
}

// UpdateRole returns the number of rows touched so callers can distinguish a
// missing user from a successful update.
func (r *userRepository) UpdateRole(id string, role entity.Role) (int64, error) {
	res := r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("role", string(role))
	return res.RowsAffected, res.Error
}
