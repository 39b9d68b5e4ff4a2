package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// AchievementRepo implements repository.AchievementRepository
type AchievementRepo struct {
	db *sql.DB
}

// NewAchievementRepo creates a new achievement repository
func NewAchievementRepo(db *sql.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Exists reports whether the user already unlocked the achievement
func (r *AchievementRepo) Exists(userID int64, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM achievements WHERE user_id = $1 AND id = $2)`
	err := r.db.QueryRow(query, userID, id).Scan(&exists)
	return exists, err
}

// Insert records a new unlock
func (r *AchievementRepo) Insert(a *domain.Achievement) error {
	query := `
		INSERT INTO achievements (id, user_id, title, description, icon, category, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query, a.ID, a.UserID, a.Title, a.Description, a.Icon, a.Category, a.UnlockedAt)
	return err
}

// List returns all unlocked achievements
func (r *AchievementRepo) List() ([]domain.Achievement, error) {
	query := `
		SELECT id, user_id, title, description, icon, category, unlocked_at
		FROM achievements
		ORDER BY user_id, unlocked_at
	`
	return r.list(query)
}

// ListByUser returns the user's unlocked achievements
func (r *AchievementRepo) ListByUser(userID int64) ([]domain.Achievement, error) {
	query := `
		SELECT id, user_id, title, description, icon, category, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY unlocked_at
	`
	return r.list(query, userID)
}

func (r *AchievementRepo) list(query string, args ...interface{}) ([]domain.Achievement, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Icon, &a.Category, &a.UnlockedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}

	return achievements, rows.Err()
}
