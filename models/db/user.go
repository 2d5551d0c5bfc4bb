package dbmodels

import (
	"mail-approval-backend/models"
	userapimodels "mail-approval-backend/models/api/user"
)

type User struct {
	BaseModel
	Name     string          `gorm:"type:varchar(150);not null"`
	Email    string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string          `gorm:"type:varchar(128);not null"`
	Role     models.UserRole `gorm:"type:varchar(50);index;not null"`
	LeaderID *string         `gorm:"type:varchar(36);index"`
	Leader   *User           `gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
}

func (r User) ToModel() userapimodels.UserView {
	return userapimodels.UserView{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Role:     r.Role,
		RoleName: r.Role.ToHuman(),
		LeaderID: r.LeaderID,
	}
}

func (r User) HasAnyRole(roles ...models.UserRole) bool {
	return r.Role.In(roles...)
}

// IsLeaderOf - пользователь является непосредственным руководителем другого
func (r User) IsLeaderOf(other User) bool {
	return other.LeaderID != nil && *other.LeaderID == r.ID
}
