package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bistro-server/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

// RegisterIfAbsent creates the user on first sign-in. A nil id means the
// email is already registered. The unique index on email decides races
// between concurrent first sign-ins; the losing insert is reported as the
// already-exists outcome, not an error.
func (s *UserService) RegisterIfAbsent(ctx context.Context, req *models.RegisterRequest) (*int64, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}

	var existingID int
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
	if err == nil {
		return nil, nil
	} else if err != sql.ErrNoRows {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)",
		req.Name, req.Email,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Str("email", req.Email).Msg("User registered")
	return &userID, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, role, created_at FROM users ORDER BY id")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// IsAdmin reports whether the email belongs to an admin. Unknown emails are
// simply not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	var role string
	err := s.db.QueryRowContext(ctx, "SELECT role FROM users WHERE email = ?", email).Scan(&role)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error fetching user role")
		return false, fmt.Errorf("database error: %w", err)
	}

	return role == models.RoleAdmin, nil
}

func (s *UserService) PromoteToAdmin(ctx context.Context, userID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET role = ? WHERE id = ?", models.RoleAdmin, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Error promoting user")
		return 0, fmt.Errorf("failed to promote user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Msg("User promoted to admin")
	return affected, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Error deleting user")
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return deleted, nil
}
