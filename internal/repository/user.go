package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository/dao"
)

type userRepository struct {
	dao dao.UserDAO
}

func NewUserRepository(d dao.UserDAO) UserRepository {
	return &userRepository{dao: d}
}

func (r *userRepository) FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.Recipient, error) {
	users, err := r.dao.FindByRoles(ctx, slice.Map(roles, func(_ int, src domain.Role) string {
		return src.String()
	}))
	if err != nil {
		return nil, err
	}
	return slice.Map(users, r.toDomain), nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Recipient, error) {
	users, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(users, r.toDomain), nil
}

func (r *userRepository) toDomain(_ int, u dao.User) domain.Recipient {
	return domain.Recipient{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Role:   domain.Role(u.Role),
	}
}
