package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"gorm.io/gorm"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/sqlx"
	"notification-delivery/internal/repository/dao"
)

const defaultBatchSize = 200

type deliveryRepository struct {
	dao       dao.DeliveryDAO
	batchSize int
}

func NewDeliveryRepository(d dao.DeliveryDAO) DeliveryRepository {
	return &deliveryRepository{dao: d, batchSize: defaultBatchSize}
}

func (r *deliveryRepository) Create(ctx context.Context, record domain.DeliveryRecord) error {
	return r.dao.Create(ctx, r.toEntity(record))
}

func (r *deliveryRepository) Save(ctx context.Context, record domain.DeliveryRecord) error {
	return r.dao.Save(ctx, r.toEntity(record))
}

func (r *deliveryRepository) FindByID(ctx context.Context, id int64) (domain.DeliveryRecord, error) {
	entity, err := r.dao.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DeliveryRecord{}, fmt.Errorf("%w: id = %d", errs.ErrDeliveryNotFound, id)
	}
	if err != nil {
		return domain.DeliveryRecord{}, err
	}
	return r.toDomain(entity), nil
}

// FindByCtimeRange 分批读完整个区间
func (r *deliveryRepository) FindByCtimeRange(ctx context.Context, start, end int64) ([]domain.DeliveryRecord, error) {
	var res []domain.DeliveryRecord
	for offset := 0; ; offset += r.batchSize {
		entities, err := r.dao.FindByCtimeRange(ctx, start, end, offset, r.batchSize)
		if err != nil {
			return nil, err
		}
		res = append(res, slice.Map(entities, func(_ int, src dao.DeliveryRecord) domain.DeliveryRecord {
			return r.toDomain(src)
		})...)
		if len(entities) < r.batchSize {
			return res, nil
		}
	}
}

func (r *deliveryRepository) FindStale(ctx context.Context, phase domain.DeliveryPhase, before int64, limit int) ([]domain.DeliveryRecord, error) {
	entities, err := r.dao.FindStale(ctx, phase.String(), before, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.DeliveryRecord) domain.DeliveryRecord {
		return r.toDomain(src)
	}), nil
}

func (r *deliveryRepository) toEntity(record domain.DeliveryRecord) dao.DeliveryRecord {
	return dao.DeliveryRecord{
		ID:                record.ID,
		Title:             record.Title,
		Body:              record.Body,
		SenderID:          record.SenderID,
		TemplateID:        record.TemplateID,
		RequestedChannels: sqlx.NewJSONColumn(record.RequestedChannels),
		AvailableChannels: sqlx.NewJSONColumn(record.AvailableChannels),
		Roles:             sqlx.NewJSONColumn(record.Roles),
		Metadata:          sqlx.NewJSONColumn(record.Metadata),
		Recipients:        sqlx.NewJSONColumn(record.Recipients),
		Phase:             record.Phase.String(),
		TotalSent:         record.TotalSent,
		TotalFailed:       record.TotalFailed,
		Ctime:             record.Ctime,
		Utime:             record.Utime,
	}
}

func (r *deliveryRepository) toDomain(entity dao.DeliveryRecord) domain.DeliveryRecord {
	return domain.DeliveryRecord{
		ID:                entity.ID,
		Title:             entity.Title,
		Body:              entity.Body,
		SenderID:          entity.SenderID,
		TemplateID:        entity.TemplateID,
		RequestedChannels: entity.RequestedChannels.Val,
		AvailableChannels: entity.AvailableChannels.Val,
		Roles:             entity.Roles.Val,
		Metadata:          entity.Metadata.Val,
		Recipients:        entity.Recipients.Val,
		Phase:             domain.DeliveryPhase(entity.Phase),
		TotalSent:         entity.TotalSent,
		TotalFailed:       entity.TotalFailed,
		Ctime:             entity.Ctime,
		Utime:             entity.Utime,
	}
}
