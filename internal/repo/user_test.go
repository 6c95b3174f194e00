package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\)`).
		WithArgs("alice", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}).
			AddRow(1, "alice", "a@x.com", now))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "alice", "a@x.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "a@x.com", "hash").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice", "a@x.com", "hash")
	if err != ErrDuplicate {
		t.Errorf("expected ErrDuplicate, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(2, "bob", "b@x.com", "hash", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.ID != 2 || user.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	if _, err := repo.GetByUsername(context.Background(), "nobody"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
