package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/repository/dao"
)

type templateRepository struct {
	dao dao.TemplateDAO
}

func NewTemplateRepository(d dao.TemplateDAO) TemplateRepository {
	return &templateRepository{dao: d}
}

func (r *templateRepository) IncrUsage(ctx context.Context, id int64) error {
	err := r.dao.IncrUsage(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id = %d", errs.ErrTemplateNotFound, id)
	}
	return err
}
