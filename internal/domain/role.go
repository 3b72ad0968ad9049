package domain

// Role 接收者角色
type Role string

const (
	// RoleEveryone 不做角色过滤
	RoleEveryone    Role = "everyone"
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleVolunteer   Role = "volunteer"
	RoleDonor       Role = "donor"
	RoleBeneficiary Role = "beneficiary"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleEveryone, RoleAdmin, RoleStaff, RoleVolunteer, RoleDonor, RoleBeneficiary:
		return true
	default:
		return false
	}
}

// IncludesEveryone 角色集合中包含 everyone 时忽略角色过滤
func IncludesEveryone(roles []Role) bool {
	for _, r := range roles {
		if r == RoleEveryone {
			return true
		}
	}
	return false
}
