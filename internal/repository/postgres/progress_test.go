package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"typelearn/internal/domain"
)

var progressTestColumns = []string{
	"user_id", "current_level", "total_sessions", "total_words_typed",
	"average_accuracy", "average_wpm", "streak", "last_session_date",
}

func TestProgressRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "summary found",
			mockRows: sqlmock.NewRows(progressTestColumns).
				AddRow(123, "intermediate", 40, 800, 82.5, 34.0, 3, time.Now()),
		},
		{
			name: "summary without last session date",
			mockRows: sqlmock.NewRows(progressTestColumns).
				AddRow(123, "beginner", 0, 0, 0.0, 0.0, 0, nil),
		},
		{
			name:        "never computed",
			mockRows:    sqlmock.NewRows(progressTestColumns),
			expectedNil: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows(progressTestColumns).
				AddRow(123, "intermediate", "invalid", 800, 82.5, 34.0, 3, time.Now()),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewProgressRepo(db)

			mock.ExpectQuery("FROM progress").
				WithArgs(int64(123)).
				WillReturnRows(tt.mockRows)

			p, err := repo.Get(123)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, p)
			} else {
				assert.NotNil(t, p)
				assert.Equal(t, int64(123), p.UserID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepo_Upsert_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	last := time.Now()
	p := &domain.ProgressSummary{
		UserID:          123,
		CurrentLevel:    "beginner",
		TotalSessions:   1,
		TotalWordsTyped: 20,
		AverageAccuracy: 90,
		AverageWPM:      35,
		Streak:          1,
		LastSessionDate: &last,
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(p.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO progress").
		WithArgs(p.UserID, "beginner", 1, 20, 90.0, 35.0, 1, nullableTime(&last)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(p)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_Upsert_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	last := time.Now()
	p := &domain.ProgressSummary{
		UserID:          123,
		CurrentLevel:    "intermediate",
		TotalSessions:   41,
		TotalWordsTyped: 820,
		AverageAccuracy: 82.7,
		AverageWPM:      34.2,
		Streak:          4,
		LastSessionDate: &last,
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(p.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE progress").
		WithArgs(p.UserID, "intermediate", 41, 820, 82.7, 34.2, 4, nullableTime(&last)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(p)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	rows := sqlmock.NewRows(progressTestColumns).
		AddRow(123, "intermediate", 40, 800, 82.5, 34.0, 3, time.Now())

	mock.ExpectQuery("FROM progress").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	summaries, err := repo.ListByUser(123)

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "intermediate", summaries[0].CurrentLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
