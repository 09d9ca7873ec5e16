package database

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Up      string
	Down    string
}

// Migrations contains all database migrations
var Migrations = []Migration{
	{
		Version: 1,
		Up: `
			CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				email VARCHAR(255) UNIQUE NOT NULL,
				username VARCHAR(255) NOT NULL,
				photo_url TEXT,
				role VARCHAR(50) NOT NULL DEFAULT 'user',
				comment_count INT NOT NULL DEFAULT 0,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			-- username is intentionally NOT unique-indexed: moderation
			-- resolves usernames with a case-insensitive scan
			CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		`,
		Down: `
			DROP TABLE IF EXISTS users;
		`,
	},
	{
		Version: 2,
		Up: `
			CREATE TABLE IF NOT EXISTS messages (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				context VARCHAR(255) NOT NULL,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				author_name VARCHAR(255) NOT NULL,
				author_role VARCHAR(50) NOT NULL DEFAULT 'user',
				body TEXT NOT NULL,
				reply_to_id UUID,
				reply_to_author VARCHAR(255),
				reply_to_excerpt VARCHAR(100),
				deleted BOOLEAN NOT NULL DEFAULT false,
				deleted_by UUID,
				deleted_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_messages_context ON messages(context, created_at);
			CREATE INDEX IF NOT EXISTS idx_messages_author ON messages(author_id);
		`,
		Down: `
			DROP TABLE IF EXISTS messages;
		`,
	},
	{
		Version: 3,
		Up: `
			CREATE TABLE IF NOT EXISTS reactions (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				message_id UUID NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				type VARCHAR(20) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			-- no UNIQUE(message_id, user_id): the at-most-one invariant is
			-- maintained by the toggle upsert logic
			CREATE INDEX IF NOT EXISTS idx_reactions_message ON reactions(message_id);
			CREATE INDEX IF NOT EXISTS idx_reactions_user ON reactions(user_id);
		`,
		Down: `
			DROP TABLE IF EXISTS reactions;
		`,
	},
	{
		Version: 4,
		Up: `
			CREATE TABLE IF NOT EXISTS mutes (
				user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				username VARCHAR(255) NOT NULL,
				muted_at TIMESTAMP NOT NULL DEFAULT NOW(),
				expires_at TIMESTAMP NOT NULL,
				duration_minutes INT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS bans (
				user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				username VARCHAR(255) NOT NULL,
				banned_at TIMESTAMP NOT NULL DEFAULT NOW()
			);
		`,
		Down: `
			DROP TABLE IF EXISTS mutes;
			DROP TABLE IF EXISTS bans;
		`,
	},
	{
		Version: 5,
		Up: `
			CREATE TABLE IF NOT EXISTS moderators (
				user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				username VARCHAR(255) NOT NULL,
				added_by UUID NOT NULL,
				added_at TIMESTAMP NOT NULL DEFAULT NOW()
			);
		`,
		Down: `
			DROP TABLE IF EXISTS moderators;
		`,
	},
	{
		Version: 6,
		Up: `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INT PRIMARY KEY,
				applied_at TIMESTAMP NOT NULL DEFAULT NOW()
			);
		`,
		Down: `
			DROP TABLE IF EXISTS schema_migrations;
		`,
	},
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB) error {
	// Ensure migrations table exists
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	// Get current version
	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return err
	}

	// Run pending migrations in ascending order by version
	sorted := make([]Migration, len(Migrations))
	copy(sorted, Migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	for _, migration := range sorted {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d...\n", migration.Version)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to run migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("Migration %d completed\n", migration.Version)
	}

	return nil
}

func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func getCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}
