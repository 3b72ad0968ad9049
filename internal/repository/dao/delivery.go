package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/sqlx"
)

// DeliveryRecord 投递记录表，接收者和每个渠道的结果整体存为 JSON
type DeliveryRecord struct {
	ID                int64                                    `gorm:"primaryKey;autoIncrement:false;comment:'投递记录ID'"`
	Title             string                                   `gorm:"type:VARCHAR(255);NOT NULL;comment:'标题'"`
	Body              string                                   `gorm:"type:TEXT;comment:'正文'"`
	SenderID          int64                                    `gorm:"type:BIGINT;NOT NULL;index:idx_sender_id;comment:'发送者'"`
	TemplateID        int64                                    `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'模板ID，0表示不是来自模板'"`
	RequestedChannels sqlx.JSONColumn[[]domain.Channel]        `gorm:"type:JSON;comment:'请求的渠道'"`
	AvailableChannels sqlx.JSONColumn[[]domain.Channel]        `gorm:"type:JSON;comment:'实际可用的渠道'"`
	Roles             sqlx.JSONColumn[[]domain.Role]           `gorm:"type:JSON;comment:'目标角色'"`
	Metadata          sqlx.JSONColumn[map[string]string]       `gorm:"type:JSON;comment:'附加信息，例如跳转链接'"`
	Recipients        sqlx.JSONColumn[[]domain.RecipientEntry] `gorm:"type:JSON;comment:'接收者及每个渠道的投递结果'"`
	Phase             string                                   `gorm:"type:VARCHAR(20);NOT NULL;index:idx_phase_utime,priority:1;comment:'building/dispatching/finalizing/done'"`
	TotalSent         int64                                    `gorm:"type:INT;NOT NULL;DEFAULT:0"`
	TotalFailed       int64                                    `gorm:"type:INT;NOT NULL;DEFAULT:0"`
	Ctime             int64                                    `gorm:"index:idx_ctime"`
	Utime             int64                                    `gorm:"index:idx_phase_utime,priority:2"`
}

// TableName 重命名表
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}

type deliveryDAO struct {
	db *egorm.Component
}

func NewDeliveryDAO(db *egorm.Component) DeliveryDAO {
	return &deliveryDAO{db: db}
}

func (d *deliveryDAO) Create(ctx context.Context, record DeliveryRecord) error {
	now := time.Now().UnixMilli()
	if record.Ctime == 0 {
		record.Ctime = now
	}
	record.Utime = now
	err := d.db.WithContext(ctx).Create(&record).Error
	if isUniqueConstraintError(err) {
		return ErrDuplicateKey
	}
	return err
}

// Save 按 ID 整行覆盖，多次调用结果一致
func (d *deliveryDAO) Save(ctx context.Context, record DeliveryRecord) error {
	record.Utime = time.Now().UnixMilli()
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"available_channels", "recipients", "phase",
			"total_sent", "total_failed", "utime",
		}),
	}).Create(&record).Error
}

func (d *deliveryDAO) FindByID(ctx context.Context, id int64) (DeliveryRecord, error) {
	var record DeliveryRecord
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	return record, err
}

// FindByCtimeRange ctime 位于 [start, end) 的记录，按 ID 升序分页
func (d *deliveryDAO) FindByCtimeRange(ctx context.Context, start, end int64, offset, limit int) ([]DeliveryRecord, error) {
	var records []DeliveryRecord
	err := d.db.WithContext(ctx).
		Where("ctime >= ? AND ctime < ?", start, end).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	return records, err
}

// FindStale 找出停留在 phase 且 utime 早于 utime 的记录
func (d *deliveryDAO) FindStale(ctx context.Context, phase string, utime int64, limit int) ([]DeliveryRecord, error) {
	var records []DeliveryRecord
	err := d.db.WithContext(ctx).
		Where("phase = ? AND utime < ?", phase, utime).
		Order("utime ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
