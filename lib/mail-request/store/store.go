package mailrequeststore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
	dbmodels "mail-approval-backend/models/db"
)

type ApprovalFilter string

const (
	ApprovalAny      ApprovalFilter = ""
	ApprovalPending  ApprovalFilter = "PENDING"  // manager_approved IS NULL
	ApprovalApproved ApprovalFilter = "APPROVED" // manager_approved = true
)

// Filter - условия выборки заявок, пустые поля не участвуют в отборе
type Filter struct {
	CreatorID       string
	LeaderID        string // руководитель автора заявки
	Statuses        []models.MRStatus
	ExcludeStatuses []models.MRStatus
	Approval        ApprovalFilter
	CreatedBefore   time.Time // created_at строго раньше
}

type Provider interface {
	Create(rec dbmodels.MailRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.MailRequest, err error)
	// Update применяет изменения, только если версия записи не изменилась, и увеличивает версию
	Update(id string, version int, updMap map[string]interface{}) error
	List(filter Filter) (list []dbmodels.MailRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MailRequest) (id string, err error) {
	err = i.db.
		Omit("User", "Manager").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.MailRequest, error) {
	rec := dbmodels.MailRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		Preload("Manager").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, version int, updMap map[string]interface{}) error {
	upd := make(map[string]interface{}, len(updMap)+1)
	for key, value := range updMap {
		upd[key] = value
	}
	upd["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.MailRequest{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(upd)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.Conflict("заявка была изменена другим пользователем")
	}
	return nil
}

func (i impl) List(filter Filter) (list []dbmodels.MailRequest, err error) {
	list = []dbmodels.MailRequest{}
	tx := i.db.
		Model(&dbmodels.MailRequest{}).
		Preload("User").
		Preload("Manager")
	if filter.CreatorID != "" {
		tx = tx.Where("mail_requests.user_id = ?", filter.CreatorID)
	}
	if filter.LeaderID != "" {
		tx = tx.
			Joins("JOIN users creator ON creator.id = mail_requests.user_id").
			Where("creator.leader_id = ?", filter.LeaderID)
	}
	if len(filter.Statuses) != 0 {
		tx = tx.Where("mail_requests.status IN ?", filter.Statuses)
	}
	if len(filter.ExcludeStatuses) != 0 {
		tx = tx.Where("mail_requests.status NOT IN ?", filter.ExcludeStatuses)
	}
	if !filter.CreatedBefore.IsZero() {
		tx = tx.Where("mail_requests.created_at < ?", filter.CreatedBefore)
	}
	switch filter.Approval {
	case ApprovalPending:
		tx = tx.Where("mail_requests.manager_approved IS NULL")
	case ApprovalApproved:
		tx = tx.Where("mail_requests.manager_approved = ?", true)
	}
	err = tx.
		Order("mail_requests.created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
