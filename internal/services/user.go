package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

const (
	minPasswordLength = 8
	userColumns       = `id, username, email, display_name, created_at, updated_at, last_login_at, is_active`
)

var errInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid credentials")

type UserService struct {
	db     *database.DB
	logger *logger.Log
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db, logger: logger.Component("users")}
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if exists, err := s.UsernameExists(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperror.New(apperror.KindConflict, "username already exists")
	}

	if exists, err := s.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperror.New(apperror.KindConflict, "email already exists")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          uuid.NewString(),
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "hash password")
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, display_name, created_at, updated_at, is_active)
		VALUES (:id, :username, :email, :password_hash, :display_name, :created_at, :updated_at, :is_active)
	`
	if _, err := s.db.NamedExecContext(ctx, query, user); err != nil {
		return nil, apperror.Persistence(err, "create user")
	}

	s.logger.With("user_id", user.ID).Info("user registered")
	return user, nil
}

func validateRegistration(req *models.CreateUserRequest) error {
	if len(req.Username) < 3 {
		return apperror.Validation("username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperror.Validation("email address is invalid")
	}
	if len(req.Password) < minPasswordLength {
		return apperror.Validation("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// AuthenticateUser validates login credentials and returns the user
func (s *UserService) AuthenticateUser(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.New(apperror.KindUnauthorized, "account is disabled")
	}

	if err := s.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).With("user_id", user.ID).Warn("failed to update last login")
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetUserByUsername includes the password hash for authentication.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE username = ?`, username)
}

func (s *UserService) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "user not found")
	} else if err != nil {
		return nil, apperror.Persistence(err, "get user")
	}
	return &user, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email)
}

func (s *UserService) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, s.db.Rebind(query), args...); err != nil {
		return false, apperror.Persistence(err, "check user")
	}
	return count > 0, nil
}

func (s *UserService) UpdateLastLogin(ctx context.Context, userID string) error {
	query := s.db.Rebind(`UPDATE users SET last_login_at = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, time.Now().UTC(), userID); err != nil {
		return apperror.Persistence(err, "update last login")
	}
	return nil
}

// UpdateProfile allows users to update their display name and email
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.ProfileUpdateRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("email address is invalid")
	}

	taken, err := s.exists(ctx, `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.New(apperror.KindConflict, "email already exists")
	}

	query := s.db.Rebind(`UPDATE users SET display_name = ?, email = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, req.DisplayName, email, time.Now().UTC(), userID)
	if err != nil {
		return nil, apperror.Persistence(err, "update profile")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.New(apperror.KindNotFound, "user not found")
	}
	return s.GetUserByID(ctx, userID)
}

// ChangePassword allows users to change their password
func (s *UserService) ChangePassword(ctx context.Context, userID string, req *models.PasswordChangeRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return apperror.Validation("password must be at least %d characters", minPasswordLength)
	}

	var user models.User
	query := s.db.Rebind(`SELECT password_hash FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &user, query, userID); errors.Is(err, sql.ErrNoRows) {
		return apperror.New(apperror.KindNotFound, "user not found")
	} else if err != nil {
		return apperror.Persistence(err, "get user")
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return apperror.New(apperror.KindUnauthorized, "current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return apperror.Wrap(apperror.KindInternal, err, "hash password")
	}

	update := s.db.Rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, update, user.Password, time.Now().UTC(), userID); err != nil {
		return apperror.Persistence(err, "change password")
	}
	s.logger.With("user_id", userID).Info("password changed")
	return nil
}
