package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/internal/session"
	"assoblog/pkg/jwt"
	"assoblog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthUseCase is the identity store boundary: it owns credential
// verification, session token issuance and revocation. Authorization
// attributes live in the user record, not here.
type AuthUseCase interface {
	SignUp(email, password string) (*entity.Session, error)
	SignIn(email, password string) (*entity.Session, error)
	SignOut(token string) error
	CurrentSession(token string) (*entity.Session, error)
	GetUser(identityID string) (*entity.User, error)
}

type authUseCase struct {
	identities  persistent.IdentityRepository
	users       persistent.UserRepository
	resolver    session.RoleResolver
	jwtService  *jwt.Service
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	identities persistent.IdentityRepository,
	users persistent.UserRepository,
	resolver session.RoleResolver,
	jwtService *jwt.Service,
	redisClient *redis.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		identities:  identities,
		users:       users,
		resolver:    resolver,
		jwtService:  jwtService,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *authUseCase) SignUp(email, password string) (*entity.Session, error) {
	_, err := uc.identities.GetByEmail(email)
	if err == nil {
		return nil, entity.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.NewAuthError(entity.AuthNetwork, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, entity.NewAuthError(entity.AuthUnknown, err)
	}

	cred := &persistent.Credential{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := uc.identities.Create(cred); err != nil {
		uc.logger.Error("Failed to create identity: %v", err)
		return nil, entity.NewAuthError(entity.AuthNetwork, err)
	}

	// The user record is provisioned out of band. Until it lands, the role
	// resolver reads the identity as a viewer.
	go uc.provisionUser(cred)

	// A fresh sign-up has no user record yet, so the token role claim is
	// viewer regardless of what the record will eventually say.
	return uc.issueSession(cred.ID, cred.Email, entity.RoleViewer)
}

func (uc *authUseCase) SignIn(email, password string) (*entity.Session, error) {
	cred, err := uc.identities.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewAuthError(entity.AuthInvalidCredentials, fmt.Errorf("invalid credentials"))
		}
		return nil, entity.NewAuthError(entity.AuthNetwork, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, entity.NewAuthError(entity.AuthInvalidCredentials, fmt.Errorf("invalid credentials"))
	}

	role := uc.resolver.Resolve(cred.ID)
	return uc.issueSession(cred.ID, cred.Email, role)
}

// SignOut revokes the token at the store. Revoking a token that no longer
// parses is a no-op: the session it named is already unusable.
func (uc *authUseCase) SignOut(token string) error {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	ctx := context.Background()
	if err := uc.redisClient.Set(ctx, jwt.RevocationKey(claims.ID), "1", ttl).Err(); err != nil {
		uc.logger.Error("Failed to revoke token: %v", err)
		return entity.NewAuthError(entity.AuthNetwork, err)
	}
	return nil
}

// CurrentSession returns the session a stored token still names, or nil if
// the token is absent, invalid, expired or revoked.
func (uc *authUseCase) CurrentSession(token string) (*entity.Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	ctx := context.Background()
	revoked, err := uc.redisClient.Exists(ctx, jwt.RevocationKey(claims.ID)).Result()
	if err != nil {
		return nil, entity.NewAuthError(entity.AuthNetwork, err)
	}
	if revoked > 0 {
		return nil, nil
	}

	return session.FromClaims(token, claims), nil
}

// GetUser builds the current view of an identity, re-resolving the role from
// the user record rather than trusting the token claim.
func (uc *authUseCase) GetUser(identityID string) (*entity.User, error) {
	cred, err := uc.identities.GetByID(identityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &entity.NotFoundError{Resource: "user", ID: identityID}
		}
		return nil, err
	}

	return &entity.User{
		ID:        cred.ID,
		Email:     cred.Email,
		Role:      uc.resolver.Resolve(cred.ID),
		CreatedAt: cred.CreatedAt,
	}, nil
}

func (uc *authUseCase) issueSession(id, email string, role entity.Role) (*entity.Session, error) {
	token, err := uc.jwtService.GenerateToken(id, email, string(role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, entity.NewAuthError(entity.AuthUnknown, err)
	}

	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil, entity.NewAuthError(entity.AuthUnknown, err)
	}
	return session.FromClaims(token, claims), nil
}

func (uc *authUseCase) provisionUser(cred *persistent.Credential) {
	user := &entity.User{
		ID:    cred.ID,
		Email: cred.Email,
		Role:  entity.RoleViewer,
	}
	if err := uc.users.Create(user); err != nil {
		uc.logger.Warn("Failed to provision user record for %s: %v", cred.ID, err)
	}
}

