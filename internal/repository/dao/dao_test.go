package dao

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/sqlx"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestDeliveryDAO_Create(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "插入成功",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `delivery_records`").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "主键冲突",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `delivery_records`").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			wantErr: ErrDuplicateKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.mock(mock)

			d := NewDeliveryDAO(db)
			err := d.Create(t.Context(), DeliveryRecord{
				ID:                1,
				Title:             "活动通知",
				SenderID:          7,
				RequestedChannels: sqlx.NewJSONColumn([]domain.Channel{domain.ChannelEmail}),
				Phase:             domain.DeliveryPhaseDispatching.String(),
			})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalyticsDAO_FindByDate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "date", "total_sent", "total_failed", "by_channel", "by_role", "ctime", "utime"}).
		AddRow(1, "2026-03-01", 3, 1, `{"email":{"sent":2,"failed":1},"sms":{"sent":1,"failed":0}}`, `{"staff":{"sent":3,"failed":1}}`, 100, 100)
	mock.ExpectQuery("SELECT \\* FROM `daily_analytics`").WillReturnRows(rows)

	d := NewAnalyticsDAO(db)
	got, err := d.FindByDate(t.Context(), "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got.Date)
	assert.Equal(t, int64(3), got.TotalSent)
	assert.Equal(t, map[domain.Channel]domain.ChannelCount{
		domain.ChannelEmail: {Sent: 2, Failed: 1},
		domain.ChannelSMS:   {Sent: 1},
	}, got.ByChannel.Val)
	assert.Equal(t, domain.ChannelCount{Sent: 3, Failed: 1}, got.ByRole.Val[domain.RoleStaff])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsDAO_FindDates(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT `date` FROM `daily_analytics`").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow("2026-03-01").AddRow("2026-03-03"))

	d := NewAnalyticsDAO(db)
	dates, err := d.FindDates(t.Context(), "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-01", "2026-03-03"}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateDAO_IncrUsage(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("mock db error")
	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "计数成功",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `notification_templates` SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "模板不存在",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `notification_templates` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: gorm.ErrRecordNotFound,
		},
		{
			name: "数据库错误",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `notification_templates` SET").
					WillReturnError(dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.mock(mock)

			err := NewTemplateDAO(db).IncrUsage(t.Context(), 42)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDAO_FindByIDs_Empty(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	users, err := NewUserDAO(db).FindByIDs(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDAO_FindByRoles(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role", "status"}).
			AddRow(1, "张三", "zhangsan@example.org", "", "staff", UserStatusActive).
			AddRow(2, "李四", "", "5551234567", "volunteer", UserStatusActive))

	users, err := NewUserDAO(db).FindByRoles(t.Context(), []string{"staff", "volunteer"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "staff", users[0].Role)
	assert.Equal(t, "5551234567", users[1].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
