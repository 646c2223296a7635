package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/you/storefront/pkg/model"
)

// pageOffset converts a 1-based page to an offset; pages <= 0 are treated
// as the first page.
func pageOffset(page, pageSize int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// listOrder is the stable ordering applied to every paginated listing so
// consecutive pages never overlap.
const listOrder = "created_at, id"

// UserPatch carries the fields a caller explicitly supplied for an update.
// Nil fields are left untouched (merge-patch, not replace).
type UserPatch struct {
	Username    *string
	Email       *string
	Description *string
}

func (p UserPatch) apply(u *model.User) bool {
	changed := false
	if p.Username != nil {
		u.Username = *p.Username
		changed = true
	}
	if p.Email != nil {
		u.Email = *p.Email
		changed = true
	}
	if p.Description != nil {
		u.Description = p.Description
		changed = true
	}
	return changed
}

// UserFilter enumerates the filterable user fields. All of them are
// string-typed and match with a case-insensitive substring; multiple set
// fields are combined with AND.
type UserFilter struct {
	Username    *string
	Email       *string
	Description *string
}

// UserStore is the relational persistence boundary for users.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store over the given connection or
// transaction handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByID returns (nil, nil) when no user has the given id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// GetByEmail returns (nil, nil) when no user has the given email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	return &u, nil
}

// List returns at most pageSize users at the given 1-based page, in
// insertion order.
func (s *UserStore) List(ctx context.Context, page, pageSize int) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Order(listOrder).
		Offset(pageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByFilter lists users matching the filter, paginated like List.
func (s *UserStore) ListByFilter(ctx context.Context, page, pageSize int, filter UserFilter) ([]model.User, error) {
	q := s.db.WithContext(ctx).Model(&model.User{})
	if filter.Username != nil {
		q = q.Where("LOWER(username) LIKE ?", substringPattern(*filter.Username))
	}
	if filter.Email != nil {
		q = q.Where("LOWER(email) LIKE ?", substringPattern(*filter.Email))
	}
	if filter.Description != nil {
		q = q.Where("LOWER(description) LIKE ?", substringPattern(*filter.Description))
	}

	var users []model.User
	err := q.Order(listOrder).
		Offset(pageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users by filter: %w", err)
	}
	return users, nil
}

func substringPattern(v string) string {
	return "%" + strings.ToLower(v) + "%"
}

// Create persists the user, assigning its id and timestamps.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update applies the patch to the stored user and returns the result.
// An absent id yields (nil, nil); an empty patch returns the user
// unchanged.
func (s *UserStore) Update(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if !patch.apply(u) {
		return u, nil
	}
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes the user; deleting a non-existent id is not an error.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
