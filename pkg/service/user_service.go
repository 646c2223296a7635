package service

import (
	"context"

	"github.com/you/storefront/pkg/cache"
	"github.com/you/storefront/pkg/model"
	"github.com/you/storefront/pkg/store"
)

// UserService wraps the user store with the cache-aside policy. Reads
// always hit the store first; the cache is only written after the fact so
// the service's own responses never depend on it.
type UserService struct {
	users *store.UserStore
	cache sideCache
}

// NewUserService creates a user service. cacheManager may be nil, which
// disables caching.
func NewUserService(users *store.UserStore, cacheManager *cache.Manager) *UserService {
	return &UserService{
		users: users,
		cache: sideCache{manager: cacheManager},
	}
}

// GetByID reads from the store and, on a hit, populates the cache entry for
// out-of-band consumers.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	s.cache.populate(ctx, cache.UserKey(u.ID), u, cache.UserTTL)
	return u, nil
}

// GetByEmail reads from the store without cache interaction.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// ListByFilter lists users and opportunistically stores the page snapshot
// under a key derived from the query arguments.
func (s *UserService) ListByFilter(ctx context.Context, page, pageSize int, filter store.UserFilter) ([]model.User, error) {
	users, err := s.users.ListByFilter(ctx, page, pageSize, filter)
	if err != nil {
		return nil, err
	}
	key := cache.FilterKey(cache.UserFilterKeyPrefix, page, pageSize, filter.Username, filter.Email, filter.Description)
	s.cache.populate(ctx, key, users, cache.FilterTTL)
	return users, nil
}

// Create persists the user. Entities are not pre-warmed into the cache on
// creation.
func (s *UserService) Create(ctx context.Context, u *model.User) error {
	return s.users.Create(ctx, u)
}

// Update merge-patches the user and invalidates its cache entry; the entry
// is never overwritten in place.
func (s *UserService) Update(ctx context.Context, id string, patch store.UserPatch) (*model.User, error) {
	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &UserNotFoundError{ID: id}
	}
	s.cache.invalidate(ctx, cache.UserKey(id))
	return u, nil
}

// Delete removes the user and its cache entry.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cache.UserKey(id))
	return nil
}
