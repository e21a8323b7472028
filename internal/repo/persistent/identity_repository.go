package persistent

import (
	"time"

	"assoblog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is the authenticated principal row plus its password hash. It
// never leaves the auth usecase.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type IdentityRepository interface {
	Create(cred *Credential) error
	GetByEmail(email string) (*Credential, error)
	GetByID(id string) (*Credential, error)
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(cred *Credential) error {
	m := &model.IdentityModel{
		ID:           cred.ID,
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	cred.ID = m.ID
	cred.CreatedAt = m.CreatedAt
	return nil
}

func (r *identityRepository) GetByEmail(email string) (*Credential, error) {
	var m model.IdentityModel
	if err := r.db.Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return &Credential{ID: m.ID, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}, nil
}

func (r *identityRepository) GetByID(id string) (*Credential, error) {
	var m model.IdentityModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &Credential{ID: m.ID, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}, nil
}
