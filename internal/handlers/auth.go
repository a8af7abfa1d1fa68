package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"dailydiet/internal/database"
	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60

func setSessionCookie(c *gin.Context, token string) {
	// HTTP-only, whole-application path, same lifetime as the token itself.
	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
}

// Register handles user registration
func Register(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		// The users table has no unique index on username; uniqueness is a
		// case-insensitive scan over the full existing-user set.
		db := database.DB
		rows, err := db.Query(`SELECT id, username FROM users`)
		if err != nil {
			log.Printf("Error listing users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}
		defer rows.Close()

		for rows.Next() {
			var existing models.User
			if err := rows.Scan(&existing.ID, &existing.Username); err != nil {
				log.Printf("Error scanning user: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
				return
			}
			if strings.EqualFold(existing.Username, username) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already in use"})
				return
			}
		}
		if err := rows.Err(); err != nil {
			// A truncated scan cannot prove uniqueness.
			log.Printf("Error iterating users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}

		passwordHash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: passwordHash,
		}

		_, err = db.Exec(
			`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
			user.ID, user.Username, user.PasswordHash,
		)
		if err != nil {
			log.Printf("Error inserting user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		setSessionCookie(c, token)
		c.JSON(http.StatusCreated, gin.H{"id": user.ID})
	}
}

// Login handles user login. Unknown usernames and wrong passwords get the
// same answer so usernames cannot be enumerated.
func Login(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		db := database.DB
		var user models.User
		err := db.QueryRow(
			`SELECT id, username, password_hash FROM users WHERE username = $1`,
			credentials.Username,
		).Scan(&user.ID, &user.Username, &user.PasswordHash)

		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Printf("Error querying user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
			return
		}

		if !utils.CheckPasswordHash(credentials.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	}
}
