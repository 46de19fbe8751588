package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupTokenMock(t *testing.T) (*PostgresTokenRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresTokenRepository(db, "six-cities-token")
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestSave_Success(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO client_tokens (slot, token, updated_at)`)).
		WithArgs("six-cities-token", "T1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), "T1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSave_Error(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO client_tokens`)).
		WithArgs("six-cities-token", "T1").
		WillReturnError(errors.New("insert failed"))

	err := repo.Save(context.Background(), "T1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDrop(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM client_tokens WHERE slot = $1`)).
		WithArgs("six-cities-token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Drop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		want    string
		wantErr bool
	}{
		{
			name: "stored",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(`SELECT token FROM client_tokens WHERE slot = $1`)).
					WithArgs("six-cities-token").
					WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("T9"))
			},
			want: "T9",
		},
		{
			name: "empty slot",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(`SELECT token FROM client_tokens`)).
					WithArgs("six-cities-token").
					WillReturnError(sql.ErrNoRows)
			},
			want: "",
		},
		{
			name: "query error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(`SELECT token FROM client_tokens`)).
					WithArgs("six-cities-token").
					WillReturnError(errors.New("conn reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTokenMock(t)
			defer cleanup()
			tt.setup(mock)

			got, err := repo.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error = %v; wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Load = %q; want %q", got, tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}
