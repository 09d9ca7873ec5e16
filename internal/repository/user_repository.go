package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/database"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user profile
func (r *UserRepository) Create(user *models.UserProfile) error {
	query := `
		INSERT INTO users (id, email, username, photo_url, role, comment_count, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		user.ID,
		user.Email,
		user.Username,
		user.PhotoURL,
		user.Role,
		user.CommentCount,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user profile by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.UserProfile, error) {
	query := `
		SELECT id, email, username, photo_url, role, comment_count, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &models.UserProfile{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PhotoURL,
		&user.Role,
		&user.CommentCount,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user profile by email
func (r *UserRepository) GetByEmail(email string) (*models.UserProfile, error) {
	query := `
		SELECT id, email, username, photo_url, role, comment_count, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &models.UserProfile{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PhotoURL,
		&user.Role,
		&user.CommentCount,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// List returns all user profiles. Username resolution scans this set because
// usernames are not a unique-indexed key.
func (r *UserRepository) List() ([]models.UserProfile, error) {
	query := `
		SELECT id, email, username, photo_url, role, comment_count, password_hash, created_at, updated_at
		FROM users
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserProfile{}
	for rows.Next() {
		var user models.UserProfile
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Username,
			&user.PhotoURL,
			&user.Role,
			&user.CommentCount,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

// UpdateRole sets the stored role field on a profile
func (r *UserRepository) UpdateRole(id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(query, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// IncrementCommentCount bumps the profile's comment counter
func (r *UserRepository) IncrementCommentCount(id uuid.UUID) error {
	query := `UPDATE users SET comment_count = comment_count + 1, updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	return nil
}
