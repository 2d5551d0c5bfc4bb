package dbmodels

import (
	"mail-approval-backend/models"
)

// MailRequestHistory - запись журнала согласования, не изменяется после создания
type MailRequestHistory struct {
	BaseModel
	RequestID    string             `gorm:"type:varchar(36);index;not null"`
	ReviewerID   *string            `gorm:"type:varchar(36);index"`
	Reviewer     *User              `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL"`
	ReviewerRole models.UserRole    `gorm:"type:varchar(50)"`
	Entry        models.ReviewEntry `gorm:"type:varchar(20)"`
	Decision     *bool
	StatusBefore models.MRStatus `gorm:"type:varchar(30)"`
	StatusAfter  models.MRStatus `gorm:"type:varchar(30)"`
	Comments     string          `gorm:"type:varchar(500)"`
	Changes      EntityChanges   `gorm:"type:jsonb"`
}
