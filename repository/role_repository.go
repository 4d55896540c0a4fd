// file: repository/role_repository.go

package repository

import (
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"
)

// IRoleRepository defines the contract for role lookups. Roles are seeded by
// migration; there is no create path.
type IRoleRepository interface {
	GetByName(name model.RoleName) (*model.Role, error)
}

// RoleRepository implements IRoleRepository.
type RoleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

// GetByName retrieves a seeded role by its name. Returns ErrRoleNotFound if
// the role was never provisioned, which signals a deployment problem.
func (r *RoleRepository) GetByName(name model.RoleName) (*model.Role, error) {
	role := &model.Role{}
	query := `SELECT id, name FROM roles WHERE name = $1`
	err := r.DB.QueryRow(query, string(name)).Scan(&role.ID, &role.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoleNotFound
		}
		logger.Log.WithError(err).WithField("role", name).Error("Failed to execute get role by name query")
		return nil, err
	}
	return role, nil
}
