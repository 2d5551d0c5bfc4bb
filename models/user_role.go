package models

type UserRole string

const (
	EmployeeRole   UserRole = "EMPLOYEE"
	TeamLeaderRole UserRole = "TEAM_LEADER"
	HelpDeskRole   UserRole = "HELP_DESK"
	ManagerRole    UserRole = "MANAGER"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole:   "Сотрудник",
	TeamLeaderRole: "Руководитель группы",
	HelpDeskRole:   "Служба поддержки",
	ManagerRole:    "Менеджер",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

// In - роль входит в перечисленные
func (r UserRole) In(roles ...UserRole) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

const SystemUser = "Система"
