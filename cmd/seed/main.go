package main

import (
	"errors"
	"flag"
	"fmt"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/internal/session"
	"assoblog/internal/usecase"
	"assoblog/pkg/cache"
	"assoblog/pkg/config"
	"assoblog/pkg/database"
	"assoblog/pkg/jwt"
	"assoblog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a local database with an account for each role and posts in every
// moderation state, driving the writes through the same use cases the service
// runs instead of raw SQL.
func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	if err := seedDatabase(cfg, db, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logger.Logger) error {
	identityRepo := persistent.NewIdentityRepository(db)
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	resolver := session.NewResolver(userRepo, log)
	jwtService := jwt.NewService(cfg.JWTSecret)
	authUseCase := usecase.NewAuthUseCase(identityRepo, userRepo, resolver, jwtService, redisClient, log)
	moderationUseCase := usecase.NewModerationUseCase(postRepo, redisClient, nil, log)

	accounts := []struct {
		email    string
		password string
		role     entity.Role
	}{
		{"admin@assoblog.test", "password123", entity.RoleAdmin},
		{"author@assoblog.test", "password123", entity.RoleAuthor},
		{"viewer@assoblog.test", "password123", entity.RoleViewer},
	}

	for _, acc := range accounts {
		if err := seedAccount(identityRepo, userRepo, acc.email, acc.password, acc.role); err != nil {
			return fmt.Errorf("failed to seed %s: %w", acc.email, err)
		}
		log.Info("Seeded %s account: %s", acc.role, acc.email)
	}

	// Drive the content through the session context so the seed exercises the
	// same sign-in and role resolution path clients use.
	sessCtx := session.NewContext(authUseCase, resolver, log)
	unsubscribe := sessCtx.Subscribe(func(snap session.Snapshot) {
		if snap.Authenticated() && snap.RoleResolved {
			log.Info("Session is now %s (%s)", snap.Session.Identity.Email, snap.Role)
		}
	})
	defer unsubscribe()

	if err := sessCtx.SignIn("author@assoblog.test", "password123"); err != nil {
		return fmt.Errorf("author sign-in failed: %w", err)
	}
	snap := sessCtx.Snapshot()

	drafts := []usecase.SubmitInput{
		{Title: "Annual general meeting recap", Content: "Minutes and decisions from this year's AGM.", Category: "news"},
		{Title: "Summer festival call for volunteers", Content: "We need hands for the booth and the stage.", Category: "events"},
		{Title: "Treasurer's quarterly report", Content: "Income, expenses and the state of the reserve fund.", Category: "reports"},
	}

	postIDs := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		post, err := moderationUseCase.Submit(snap.Session.Identity, snap.Role, draft)
		if err != nil {
			return fmt.Errorf("failed to submit %q: %w", draft.Title, err)
		}
		postIDs = append(postIDs, post.ID)
	}
	if err := sessCtx.SignOut(); err != nil {
		log.Warn("Author sign-out failed: %v", err)
	}

	if err := sessCtx.SignIn("admin@assoblog.test", "password123"); err != nil {
		return fmt.Errorf("admin sign-in failed: %w", err)
	}
	snap = sessCtx.Snapshot()

	// Approve the first draft, reject the second, leave the third pending.
	if _, err := moderationUseCase.SetStatus(postIDs[0], entity.StatusApproved, snap.Role); err != nil {
		return fmt.Errorf("failed to approve post: %w", err)
	}
	if _, err := moderationUseCase.SetStatus(postIDs[1], entity.StatusRejected, snap.Role); err != nil {
		return fmt.Errorf("failed to reject post: %w", err)
	}

	return sessCtx.SignOut()
}

func seedAccount(
	identities persistent.IdentityRepository,
	users persistent.UserRepository,
	email, password string,
	role entity.Role,
) error {
	if _, err := identities.GetByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cred := &persistent.Credential{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := identities.Create(cred); err != nil {
		return err
	}

	// Seed the user record synchronously so the role is visible immediately,
	// unlike the service's out-of-band provisioning.
	return users.Create(&entity.User{
		ID:    cred.ID,
		Email: cred.Email,
		Role:  role,
	})
}
