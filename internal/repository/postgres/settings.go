package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// SettingsRepo implements repository.SettingsRepository
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the user's settings, or (nil, nil) if none are stored
func (r *SettingsRepo) Get(userID int64) (*domain.UserSettings, error) {
	var s domain.UserSettings
	query := `
		SELECT user_id, sound_enabled, theme, daily_goal
		FROM user_settings
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(&s.UserID, &s.SoundEnabled, &s.Theme, &s.DailyGoal)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Upsert inserts or replaces the user's settings row. Check-then-write;
// callers hold the per-user lock.
func (r *SettingsRepo) Upsert(s *domain.UserSettings) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_settings WHERE user_id = $1)`
	if err := r.db.QueryRow(query, s.UserID).Scan(&exists); err != nil {
		return err
	}

	if exists {
		query = `UPDATE user_settings SET sound_enabled = $2, theme = $3, daily_goal = $4 WHERE user_id = $1`
	} else {
		query = `INSERT INTO user_settings (user_id, sound_enabled, theme, daily_goal) VALUES ($1, $2, $3, $4)`
	}
	_, err := r.db.Exec(query, s.UserID, s.SoundEnabled, s.Theme, s.DailyGoal)
	return err
}

// List returns settings for all users
func (r *SettingsRepo) List() ([]domain.UserSettings, error) {
	query := `SELECT user_id, sound_enabled, theme, daily_goal FROM user_settings ORDER BY user_id`
	return r.list(query)
}

// ListByUser returns the user's settings as a slice, for export
func (r *SettingsRepo) ListByUser(userID int64) ([]domain.UserSettings, error) {
	query := `SELECT user_id, sound_enabled, theme, daily_goal FROM user_settings WHERE user_id = $1`
	return r.list(query, userID)
}

func (r *SettingsRepo) list(query string, args ...interface{}) ([]domain.UserSettings, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.UserSettings
	for rows.Next() {
		var s domain.UserSettings
		if err := rows.Scan(&s.UserID, &s.SoundEnabled, &s.Theme, &s.DailyGoal); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}
