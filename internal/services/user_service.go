package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/auth"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserFieldsRequired = errors.New("email, name and password are required")
	ErrInvalidRole        = errors.New("role must be superadmin, admin or operator")
	ErrSelfDelete         = errors.New("users cannot delete themselves")
)

type UserService struct {
	users *repositories.UserRepo
	audit *AuditService
	cfg   *config.Config
	log   *zap.Logger
}

func NewUserService(users *repositories.UserRepo, audit *AuditService, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{users: users, audit: audit, cfg: cfg, log: log}
}

// Login verifies credentials and returns the user with a signed JWT. A
// successful login lands in the audit trail; a failed one only gets a log
// line, to keep credential-stuffing noise out of the trail.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		s.log.Info("failed login attempt", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, user.ID, user.Name, user.Role, user.UnitID, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.UpdateLastActive(ctx, user.ID); err != nil {
		s.log.Warn("failed to update last active", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:   &user.ID,
		ActorName: user.Name,
		Action:    models.ActionLogin,
		Details:   map[string]any{"email": user.Email},
	})
	return user, token, nil
}

func (s *UserService) Logout(ctx context.Context, actor Actor) {
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    models.ActionLogout,
		Details:   map[string]any{},
	})
}

func (s *UserService) Create(ctx context.Context, actor Actor, u *models.User, password string) error {
	if strings.TrimSpace(u.Email) == "" || strings.TrimSpace(u.Name) == "" || password == "" {
		return ErrUserFieldsRequired
	}
	if !models.IsValidRole(u.Role) {
		return ErrInvalidRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		return err
	}

	// The password never reaches the audit trail, hashed or otherwise.
	tbl, rec := auditRef("users", u.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionCreation,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"email": u.Email, "name": u.Name, "role": u.Role},
	})
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.ID != nil && *actor.ID == id {
		return ErrSelfDelete
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("users", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"email": existing.Email, "name": existing.Name},
	})
	return nil
}

// EnsureBootstrapAdmin creates the first superadmin from config when the
// users table is empty, so a fresh deployment can log in at all.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.cfg.AdminPassword == "" {
		s.log.Warn("users table is empty and ADMIN_PASSWORD is not set, skipping bootstrap")
		return nil
	}

	admin := &models.User{
		Email: s.cfg.AdminEmail,
		Name:  s.cfg.AdminName,
		Role:  models.RoleSuperadmin,
	}
	if err := s.Create(ctx, System(), admin, s.cfg.AdminPassword); err != nil {
		return err
	}
	s.log.Info("bootstrap superadmin created", zap.String("email", admin.Email))
	return nil
}
