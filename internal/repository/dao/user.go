package dao

import (
	"context"

	"github.com/ego-component/egorm"
)

// User 通讯录，只读
type User struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"type:VARCHAR(128);NOT NULL"`
	Email  string `gorm:"type:VARCHAR(255);comment:'可为空'"`
	Phone  string `gorm:"type:VARCHAR(32);comment:'可为空，未规范化'"`
	Role   string `gorm:"type:VARCHAR(32);NOT NULL;index:idx_role_status,priority:1"`
	Status string `gorm:"type:VARCHAR(16);NOT NULL;DEFAULT:'active';index:idx_role_status,priority:2"`
	Ctime  int64
	Utime  int64
}

// TableName 重命名表
func (User) TableName() string {
	return "users"
}

const UserStatusActive = "active"

type userDAO struct {
	db *egorm.Component
}

func NewUserDAO(db *egorm.Component) UserDAO {
	return &userDAO{db: db}
}

// FindByRoles roles 为空时返回全部活跃用户
func (u *userDAO) FindByRoles(ctx context.Context, roles []string) ([]User, error) {
	var users []User
	query := u.db.WithContext(ctx).Where("status = ?", UserStatusActive)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	err := query.Order("id ASC").Find(&users).Error
	return users, err
}

func (u *userDAO) FindByIDs(ctx context.Context, ids []int64) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	err := u.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, UserStatusActive).
		Order("id ASC").
		Find(&users).Error
	return users, err
}
