package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"dailydiet/internal/database"
	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.UserIDContextKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// CreateDiet records a new diet entry owned by the authenticated user.
func CreateDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Date        *time.Time `json:"date"`
		IsDiet      *bool      `json:"isDiet"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Date == nil || req.IsDiet == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, date and isDiet are required"})
		return
	}

	diet := models.Diet{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		DateHour:    *req.Date,
		IsDiet:      *req.IsDiet,
	}

	_, err := database.DB.Exec(
		`INSERT INTO diets (id, user_id, name, description, date_hour, is_diet) VALUES ($1, $2, $3, $4, $5, $6)`,
		diet.ID, diet.UserID, diet.Name, diet.Description, diet.DateHour, diet.IsDiet,
	)
	if err != nil {
		log.Printf("Error inserting diet entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating diet entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": diet.ID})
}

// ListDiets returns every diet entry owned by the authenticated user, in
// storage order.
func ListDiets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	diets, ok := queryUserDiets(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, diets)
}

// GetDiet returns one entry, only when it is owned by the caller. An entry
// owned by someone else is indistinguishable from a missing one.
func GetDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dietID := c.Param("id")

	var diet models.Diet
	err := database.DB.QueryRow(
		`SELECT id, name, description, date_hour, is_diet FROM diets WHERE id = $1 AND user_id = $2`,
		dietID, userID,
	).Scan(&diet.ID, &diet.Name, &diet.Description, &diet.DateHour, &diet.IsDiet)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diet entry not found"})
			return
		}
		log.Printf("Error querying diet entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading diet entry"})
		return
	}

	c.JSON(http.StatusOK, diet)
}

// UpdateDiet applies a sparse patch to an owned entry. Omitted or blank
// fields stay untouched; a patch with nothing to apply is rejected.
func UpdateDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dietID := c.Param("id")

	var req struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Date        *time.Time `json:"date"`
		IsDiet      *bool      `json:"isDiet"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if name := validString(req.Name); name != "" {
		args = append(args, name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if description := validString(req.Description); description != "" {
		args = append(args, description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if req.Date != nil && !req.Date.IsZero() {
		args = append(args, *req.Date)
		sets = append(sets, fmt.Sprintf("date_hour = $%d", len(args)))
	}
	if req.IsDiet != nil {
		args = append(args, *req.IsDiet)
		sets = append(sets, fmt.Sprintf("is_diet = $%d", len(args)))
	}

	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No request body information provided."})
		return
	}

	args = append(args, dietID, userID)
	query := fmt.Sprintf(
		`UPDATE diets SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)

	if _, err := database.DB.Exec(query, args...); err != nil {
		log.Printf("Error updating diet entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating diet entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteDiet removes an owned entry. Deleting a missing or not-owned entry
// is a silent no-op, not an error.
func DeleteDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dietID := c.Param("id")

	_, err := database.DB.Exec(
		`DELETE FROM diets WHERE id = $1 AND user_id = $2`,
		dietID, userID,
	)
	if err != nil {
		log.Printf("Error deleting diet entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting diet entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DietsSummary reports adherence statistics over the caller's entries.
func DietsSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	diets, ok := queryUserDiets(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.Summarize(diets))
}

func queryUserDiets(c *gin.Context, userID string) ([]models.Diet, bool) {
	rows, err := database.DB.Query(
		`SELECT id, name, description, date_hour, is_diet FROM diets WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Printf("Error listing diet entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading diet entries"})
		return nil, false
	}
	defer rows.Close()

	diets := make([]models.Diet, 0)
	for rows.Next() {
		var diet models.Diet
		if err := rows.Scan(&diet.ID, &diet.Name, &diet.Description, &diet.DateHour, &diet.IsDiet); err != nil {
			log.Printf("Error scanning diet entry: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading diet entries"})
			return nil, false
		}
		diets = append(diets, diet)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating diet entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading diet entries"})
		return nil, false
	}

	return diets, true
}

func validString(value *string) string {
	if value == nil {
		return ""
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return ""
	}
	return trimmed
}
