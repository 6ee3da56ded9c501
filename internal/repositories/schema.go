package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		city_name VARCHAR(100) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(256) NOT NULL,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(32) NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		rating DECIMAL(3,2) NOT NULL DEFAULT 5.00,
		region_id INT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email),
		CONSTRAINT fk_users_region FOREIGN KEY (region_id) REFERENCES regions(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		parent_id INT NULL,
		CONSTRAINT fk_categories_parent FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS advertisements (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		description TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id INT NOT NULL,
		category_id INT NOT NULL,
		region_id INT NOT NULL,
		KEY ix_advertisements_status_created (status, created_at),
		CONSTRAINT fk_advertisements_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_advertisements_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT,
		CONSTRAINT fk_advertisements_region FOREIGN KEY (region_id) REFERENCES regions(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS advertisement_photos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		advertisement_id INT NOT NULL,
		photo_url VARCHAR(500) NOT NULL,
		is_main BOOLEAN NOT NULL DEFAULT FALSE,
		CONSTRAINT fk_photos_advertisement FOREIGN KEY (advertisement_id) REFERENCES advertisements(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INT AUTO_INCREMENT PRIMARY KEY,
		text TEXT NOT NULL,
		sent_at DATETIME NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		from_user_id INT NOT NULL,
		to_user_id INT NOT NULL,
		advertisement_id INT NULL,
		KEY ix_messages_to_read (to_user_id, is_read),
		CONSTRAINT fk_messages_from FOREIGN KEY (from_user_id) REFERENCES users(id) ON DELETE RESTRICT,
		CONSTRAINT fk_messages_to FOREIGN KEY (to_user_id) REFERENCES users(id) ON DELETE RESTRICT,
		CONSTRAINT fk_messages_advertisement FOREIGN KEY (advertisement_id) REFERENCES advertisements(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user_id INT NOT NULL,
		advertisement_id INT NOT NULL,
		PRIMARY KEY (user_id, advertisement_id),
		CONSTRAINT fk_favorites_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT,
		CONSTRAINT fk_favorites_advertisement FOREIGN KEY (advertisement_id) REFERENCES advertisements(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS device_tokens (
		user_id INT NOT NULL,
		token VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, token),
		CONSTRAINT fk_device_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		city_name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(256) NOT NULL UNIQUE,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(32) NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		rating NUMERIC(3,2) NOT NULL DEFAULT 5.00,
		region_id INT NULL REFERENCES regions(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		parent_id INT NULL REFERENCES categories(id) ON DELETE RESTRICT
	)`,
	`CREATE TABLE IF NOT EXISTS advertisements (
		id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		description TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Active',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_id INT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		region_id INT NOT NULL REFERENCES regions(id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS ix_advertisements_status_created ON advertisements (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS advertisement_photos (
		id SERIAL PRIMARY KEY,
		advertisement_id INT NOT NULL REFERENCES advertisements(id) ON DELETE CASCADE,
		photo_url VARCHAR(500) NOT NULL,
		is_main BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		sent_at TIMESTAMP NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		from_user_id INT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		to_user_id INT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		advertisement_id INT NULL REFERENCES advertisements(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_to_read ON messages (to_user_id, is_read)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user_id INT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		advertisement_id INT NOT NULL REFERENCES advertisements(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, advertisement_id)
	)`,
	`CREATE TABLE IF NOT EXISTS device_tokens (
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, token)
	)`,
}

// Schema returns the DDL statements for d in dependency order.
func Schema(d Dialect) []string {
	if d == Postgres {
		return postgresSchema
	}
	return mysqlSchema
}

// Migrate applies Schema(d). Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for i, stmt := range Schema(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
