package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
)

func CreateUser(ctx context.Context, db *sql.DB, fullName, email, passwordHash, role string) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (id, full_name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, full_name, email, password_hash, role, created_at`

	err := db.QueryRowContext(ctx, query, uuid.NewString(), fullName, email, passwordHash, role).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func GetUser(ctx context.Context, db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

func ListUsers(ctx context.Context, db *sql.DB) ([]models.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

// PromoteUser is one-way: user -> admin. Callers enforce the self-action
// guard; the store only knows about missing users.
func PromoteUser(ctx context.Context, db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}

	query := `
		UPDATE users
		SET role = $1
		WHERE id = $2
		RETURNING id, full_name, email, password_hash, role, created_at`

	err := db.QueryRowContext(ctx, query, models.RoleAdmin, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("promote user: %w", err)
	}

	return user, nil
}

func DeleteUser(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrUserNotFound
	}

	return nil
}
