package dbmodels

import (
	"mail-approval-backend/models"
	"time"
)

type MailRequest struct {
	VersionedModel
	Subject         string          `gorm:"type:varchar(255);not null"`
	Body            string          `gorm:"type:varchar(2000);not null"`
	UserID          string          `gorm:"type:varchar(36);index;not null"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	ManagerID       *string         `gorm:"type:varchar(36);index"` // последний согласующий
	Manager         *User           `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	ManagerApproved *bool           `gorm:"index"`
	Status          models.MRStatus `gorm:"type:varchar(30);index;not null"`
	Comments        string          `gorm:"type:varchar(500)"`
	ReviewedAt      *time.Time
}

func (r MailRequest) IsCreator(userID string) bool {
	return r.UserID == userID
}

func (r MailRequest) IsLastReviewer(userID string) bool {
	return r.ManagerID != nil && *r.ManagerID == userID
}

// CanBeViewedBy - детальная карточка доступна автору и последнему согласующему
func (r MailRequest) CanBeViewedBy(userID string) bool {
	return r.IsCreator(userID) || r.IsLastReviewer(userID)
}
