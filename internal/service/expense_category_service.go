package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	expenseCategoryCacheKey = "backoffice:expense_categories"
	expenseCategoryCacheTTL = 10 * time.Minute
)

// ExpenseCategoryService expense taxonomy lookup with a redis read-through
// cache. Redis being down degrades to direct database reads.
type ExpenseCategoryService struct {
	repo   *repository.ExpenseCategoryRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewExpenseCategoryService(repo *repository.ExpenseCategoryRepository, rdb *redis.Client, logger *zap.Logger) *ExpenseCategoryService {
	return &ExpenseCategoryService{repo: repo, rdb: rdb, logger: logger}
}

// List returns all expense categories, cached.
func (s *ExpenseCategoryService) List(ctx context.Context) ([]entity.ExpenseCategory, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, expenseCategoryCacheKey).Bytes(); err == nil {
			var items []entity.ExpenseCategory
			if json.Unmarshal(cached, &items) == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, expenseCategoryCacheKey, data, expenseCategoryCacheTTL).Err(); err != nil {
				s.logger.Warn("expense category cache write failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

// ResolveGroup maps an expense type name to its reporting group. Unknown
// type names resolve to an empty group rather than an error; the group is
// display taxonomy, not a gate.
func (s *ExpenseCategoryService) ResolveGroup(ctx context.Context, typeName string) (string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	for _, cat := range items {
		if cat.TypeName == typeName {
			return cat.GroupName, nil
		}
	}
	return "", nil
}

// Create adds a category and invalidates the cache.
func (s *ExpenseCategoryService) Create(ctx context.Context, actor, typeName, groupName string) (*entity.ExpenseCategory, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	if typeName == "" {
		return nil, validationErr("type_name")
	}
	if groupName == "" {
		return nil, validationErr("group_name")
	}
	cat := &entity.ExpenseCategory{
		ID:        uuid.New().String()[:32],
		TypeName:  typeName,
		GroupName: groupName,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

// Delete removes a category and invalidates the cache.
func (s *ExpenseCategoryService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExpenseCategoryService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, expenseCategoryCacheKey).Err(); err != nil {
		s.logger.Warn("expense category cache invalidation failed", zap.Error(err))
	}
}
