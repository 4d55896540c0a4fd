// file: repository/user_repository_test.go

package repository

import (
	"go-auth-api/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_CreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		user := &model.User{Name: "Alice", Username: "alice", Email: "alice@x.com", Password: "hashed"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, username, email, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at`)).
			WithArgs("Alice", "alice", "alice@x.com", "hashed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`)).
			WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.CreateUser(user, 1)

		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uk_users_username"})
		mock.ExpectRollback()

		err = repo.CreateUser(&model.User{Username: "alice"}, 1)

		assert.ErrorIs(t, err, ErrDuplicateUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uk_users_email"})
		mock.ExpectRollback()

		err = repo.CreateUser(&model.User{Email: "alice@x.com"}, 1)

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "password", "created_at"}).
			AddRow(7, "Alice", "alice", "alice@x.com", "hashed", time.Now())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, username, email, password, created_at FROM users WHERE username = $1 OR email = $1`)).
			WithArgs("alice@x.com").
			WillReturnRows(rows)

		user, err := repo.GetByUsernameOrEmail("alice@x.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, username, email, password, created_at FROM users`)).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "email", "password", "created_at"}))

		_, err = repo.GetByUsernameOrEmail("nobody")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername("alice")

	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_GetRolesByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"name"}).AddRow("ROLE_ADMIN").AddRow("ROLE_USER")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT r.name FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id = $1`)).
		WithArgs(7).
		WillReturnRows(rows)

	roles, err := repo.GetRolesByUserID(7)

	assert.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, roles)
}
