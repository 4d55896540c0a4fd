// file: service/role_cache.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"
)

// roleCacheTTL bounds how long a cached role entry is served before the
// database is consulted again. Roles are seeded by migration and effectively
// immutable, so a long TTL would also be fine.
const roleCacheTTL = 1 * time.Hour

// RoleCache wraps a role repository with a cache-aside strategy. Every
// sign-up resolves the default role, and the role set is a small, pre-seeded,
// read-only table, which makes it an ideal cache candidate.
// RoleCache implements repository.IRoleRepository.
type RoleCache struct {
	repo  repository.IRoleRepository
	cache ICacheClient
}

func NewRoleCache(repo repository.IRoleRepository, cache ICacheClient) *RoleCache {
	return &RoleCache{
		repo:  repo,
		cache: cache,
	}
}

// GetByName resolves a role by name, trying the cache first and falling back
// to the repository. Cache failures are treated as misses; a role lookup
// never fails because the cache is unavailable.
func (c *RoleCache) GetByName(name model.RoleName) (*model.Role, error) {
	cacheKey := fmt.Sprintf("role:%s", name)
	ctx := context.Background()

	// 1. Try to get the role from Redis.
	cached, err := c.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var role model.Role
		if err := json.Unmarshal([]byte(cached), &role); err == nil {
			return &role, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	role, err := c.repo.GetByName(name)
	if err != nil {
		return nil, err
	}

	// 3. Store the result in Redis for future requests.
	if data, err := json.Marshal(role); err == nil {
		c.cache.Set(ctx, cacheKey, data, roleCacheTTL)
	}

	return role, nil
}
