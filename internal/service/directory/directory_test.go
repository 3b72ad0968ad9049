package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"notification-delivery/internal/domain"
	repomocks "notification-delivery/internal/repository/mocks"
)

func TestDirectory_ListUsers(t *testing.T) {
	t.Parallel()

	users := []domain.Recipient{{UserID: 1, Role: domain.RoleStaff}}
	testCases := []struct {
		name  string
		roles []domain.Role
		mock  func(repo *repomocks.MockUserRepository)
		want  []domain.Recipient
	}{
		{
			name:  "everyone 不做过滤",
			roles: []domain.Role{domain.RoleStaff, domain.RoleEveryone},
			mock: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().FindByRoles(gomock.Any(), gomock.Nil()).Return(users, nil)
			},
			want: users,
		},
		{
			name:  "按角色查询",
			roles: []domain.Role{domain.RoleStaff},
			mock: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().FindByRoles(gomock.Any(), []domain.Role{domain.RoleStaff}).Return(users, nil)
			},
			want: users,
		},
		{
			name: "没有角色",
			mock: func(repo *repomocks.MockUserRepository) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := repomocks.NewMockUserRepository(ctrl)
			tc.mock(repo)

			got, err := NewDirectory(repo).ListUsers(t.Context(), tc.roles)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDirectory_ListByIDs(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockUserRepository(ctrl)
	repo.EXPECT().FindByIDs(gomock.Any(), []int64{1, 2, 3}).Return([]domain.Recipient{{UserID: 1}, {UserID: 2}, {UserID: 3}}, nil)

	got, err := NewDirectory(repo).ListByIDs(t.Context(), []int64{3, 1, 2, 1})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
