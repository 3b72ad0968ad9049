package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// NotificationTemplate 通知模板
type NotificationTemplate struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"type:VARCHAR(128);NOT NULL;uniqueIndex:uk_name"`
	Title      string `gorm:"type:VARCHAR(255);NOT NULL"`
	Body       string `gorm:"type:TEXT"`
	UsageCount int64  `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'使用次数'"`
	Ctime      int64
	Utime      int64
}

// TableName 重命名表
func (NotificationTemplate) TableName() string {
	return "notification_templates"
}

type templateDAO struct {
	db *egorm.Component
}

func NewTemplateDAO(db *egorm.Component) TemplateDAO {
	return &templateDAO{db: db}
}

// IncrUsage 使用次数加一，模板不存在时返回 gorm.ErrRecordNotFound
func (t *templateDAO) IncrUsage(ctx context.Context, id int64) error {
	res := t.db.WithContext(ctx).Model(&NotificationTemplate{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"usage_count": gorm.Expr("usage_count + 1"),
			"utime":       time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t *templateDAO) FindByID(ctx context.Context, id int64) (NotificationTemplate, error) {
	var tmpl NotificationTemplate
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&tmpl).Error
	return tmpl, err
}
