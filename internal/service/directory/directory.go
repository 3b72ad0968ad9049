package directory

import (
	"context"
	"slices"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository"
)

//go:generate mockgen -source=./directory.go -destination=./mocks/directory.mock.go -package=directorymocks Directory
type Directory interface {
	// ListUsers 包含 everyone 时不做角色过滤，角色为空时没有接收者
	ListUsers(ctx context.Context, roles []domain.Role) ([]domain.Recipient, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Recipient, error)
}

type directory struct {
	repo repository.UserRepository
}

func NewDirectory(repo repository.UserRepository) Directory {
	return &directory{repo: repo}
}

func (d *directory) ListUsers(ctx context.Context, roles []domain.Role) ([]domain.Recipient, error) {
	if domain.IncludesEveryone(roles) {
		return d.repo.FindByRoles(ctx, nil)
	}
	if len(roles) == 0 {
		return nil, nil
	}
	return d.repo.FindByRoles(ctx, roles)
}

func (d *directory) ListByIDs(ctx context.Context, ids []int64) ([]domain.Recipient, error) {
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(ids) == 0 {
		return nil, nil
	}
	return d.repo.FindByIDs(ctx, ids)
}
