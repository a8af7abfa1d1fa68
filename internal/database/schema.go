package database

import (
	"fmt"
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables() {
	createUsersTable()
	createDietsTable()
}

// createUsersTable creates the users table. Username carries no unique
// index on purpose: uniqueness is enforced case-insensitively at
// registration time by scanning the existing users.
func createUsersTable() {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create users table:", err)
	}

	fmt.Println("Users table created successfully")
}

func createDietsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS diets (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		date_hour TIMESTAMP NOT NULL,
		is_diet BOOLEAN NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create diets table:", err)
	}

	ensureDietsSchema()
	fmt.Println("Diets table created successfully")
}

func ensureDietsSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS diets_user_idx ON diets(user_id)`); err != nil {
		log.Fatal("Failed to ensure diets user index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS diets_user_date_hour_idx ON diets(user_id, date_hour DESC)`); err != nil {
		log.Fatal("Failed to ensure diets user/date index:", err)
	}
}
