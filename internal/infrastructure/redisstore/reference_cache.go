package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/helpers"
)

const (
	rolesKey = "hris:ref:roles"
	orgsKey  = "hris:ref:organizations"
)

// ReferenceCache keeps JSON copies of the pick-lists for ttl.
type ReferenceCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewReferenceCache(rdb redis.Cmdable, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{rdb: rdb, ttl: ttl}
}

func (c *ReferenceCache) Roles(ctx context.Context) ([]entity.Role, bool, error) {
	var roles []entity.Role
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, rolesKey, &roles)
	return roles, ok, err
}

func (c *ReferenceCache) SetRoles(ctx context.Context, roles []entity.Role) error {
	return helpers.RedisSetJSON(ctx, c.rdb, rolesKey, roles, c.ttl)
}

func (c *ReferenceCache) Organizations(ctx context.Context) ([]entity.Organization, bool, error) {
	var orgs []entity.Organization
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, orgsKey, &orgs)
	return orgs, ok, err
}

func (c *ReferenceCache) SetOrganizations(ctx context.Context, orgs []entity.Organization) error {
	return helpers.RedisSetJSON(ctx, c.rdb, orgsKey, orgs, c.ttl)
}

// Invalidate drops both lists; the seed command calls it after writing reference rows.
func (c *ReferenceCache) Invalidate(ctx context.Context) error {
	return helpers.RedisDel(ctx, c.rdb, rolesKey, orgsKey)
}

var _ application.ReferenceCache = (*ReferenceCache)(nil)
