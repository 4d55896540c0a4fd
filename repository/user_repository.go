package repository

import (
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User, roleID int) error
	GetByID(userID int) (*model.User, error)
	GetByUsernameOrEmail(usernameOrEmail string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	GetRolesByUserID(userID int) ([]string, error)
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts the user and its role association in a single
// transaction, so a failure on either side leaves no partial record. Unique
// constraint violations are translated to ErrDuplicateUsername or
// ErrDuplicateEmail; the caller never sees a raw driver error for those.
func (r *UserRepository) CreateUser(user *model.User, roleID int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username": user.Username,
		"role_id":  roleID,
	})
	log.Info("Executing query to create a new user")

	tx, err := r.DB.Begin()
	if err != nil {
		log.WithError(err).Error("Failed to begin create user transaction")
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (name, username, email, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err = tx.QueryRow(query, user.Name, user.Username, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "uk_users_username"):
			return ErrDuplicateUsername
		case isUniqueViolation(err, "uk_users_email"):
			return ErrDuplicateEmail
		}
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}

	if _, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
		log.WithError(err).Error("Failed to execute assign role query")
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a user by its primary key. Returns ErrUserNotFound when
// no row matches.
func (r *UserRepository) GetByID(userID int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, username, email, password, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute get user by id query")
		return nil, err
	}
	return user, nil
}

// GetByUsernameOrEmail retrieves a user matching either the username or the
// email column. Returns ErrUserNotFound when no row matches.
func (r *UserRepository) GetByUsernameOrEmail(usernameOrEmail string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, username, email, password, created_at FROM users WHERE username = $1 OR email = $1`
	err := r.DB.QueryRow(query, usernameOrEmail).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get user by username or email query")
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// GetRolesByUserID returns the names of all roles assigned to the user.
func (r *UserRepository) GetRolesByUserID(userID int) ([]string, error) {
	query := `SELECT r.name FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id = $1 ORDER BY r.name`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute get roles query")
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}
