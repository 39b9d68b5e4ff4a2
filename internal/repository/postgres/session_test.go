package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"typelearn/internal/domain"
)

var sessionTestColumns = []string{
	"id", "user_id", "start_time", "end_time", "level", "total_words", "correct_words",
	"accuracy", "words_per_minute",
}

func TestSessionRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	s := &domain.Session{
		ID:        "11111111-2222-3333-4444-555555555555",
		UserID:    123,
		StartTime: time.Now(),
		Level:     "beginner",
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(s.ID, s.UserID, s.StartTime, nullableTime(nil), "beginner", 0, 0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Insert(s)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		expectedNil   bool
		expectedError bool
		wantClosed    bool
	}{
		{
			name: "open session",
			mockRows: sqlmock.NewRows(sessionTestColumns).
				AddRow("sess-1", 123, time.Now(), nil, "beginner", 0, 0, 0.0, 0.0),
		},
		{
			name: "closed session",
			mockRows: sqlmock.NewRows(sessionTestColumns).
				AddRow("sess-1", 123, time.Now().Add(-time.Hour), time.Now(), "beginner", 20, 18, 90.0, 35.0),
			wantClosed: true,
		},
		{
			name:        "not found",
			mockRows:    sqlmock.NewRows(sessionTestColumns),
			expectedNil: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows(sessionTestColumns).
				AddRow("sess-1", "invalid", time.Now(), nil, "beginner", 0, 0, 0.0, 0.0),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewSessionRepo(db)

			mock.ExpectQuery("FROM sessions WHERE id").
				WithArgs("sess-1").
				WillReturnRows(tt.mockRows)

			s, err := repo.Get("sess-1")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, s)
			} else {
				assert.NotNil(t, s)
				assert.Equal(t, tt.wantClosed, s.Closed())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	end := time.Now()
	s := &domain.Session{
		ID:             "sess-1",
		UserID:         123,
		StartTime:      end.Add(-time.Hour),
		EndTime:        &end,
		Level:          "beginner",
		TotalWords:     20,
		CorrectWords:   18,
		Accuracy:       90,
		WordsPerMinute: 35,
	}

	mock.ExpectExec("UPDATE sessions").
		WithArgs(s.ID, nullableTime(&end), "beginner", 20, 18, 90.0, 35.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(s)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_ListClosedByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	userID := int64(123)

	rows := sqlmock.NewRows(sessionTestColumns).
		AddRow("sess-1", userID, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour), "beginner", 20, 18, 90.0, 35.0).
		AddRow("sess-2", userID, time.Now().Add(-time.Hour), time.Now(), "beginner", 10, 10, 100.0, 40.0)

	mock.ExpectQuery("end_time IS NOT NULL").
		WithArgs(userID).
		WillReturnRows(rows)

	sessions, err := repo.ListClosedByUser(userID)

	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, "sess-1", sessions[0].ID)
	assert.True(t, sessions[1].Closed())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_ListRecentClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	userID := int64(123)
	limit := 20

	rows := sqlmock.NewRows(sessionTestColumns).
		AddRow("sess-2", userID, time.Now().Add(-time.Hour), time.Now(), "beginner", 10, 10, 100.0, 40.0)

	mock.ExpectQuery("ORDER BY end_time DESC").
		WithArgs(userID, limit).
		WillReturnRows(rows)

	sessions, err := repo.ListRecentClosed(userID, limit)

	assert.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, "sess-2", sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_ListByUser_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("FROM sessions").
		WithArgs(int64(123)).
		WillReturnError(fmt.Errorf("query error"))

	sessions, err := repo.ListByUser(123)

	assert.Error(t, err)
	assert.Nil(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
