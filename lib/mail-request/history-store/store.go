package mailrequesthistorystore

import (
	"gorm.io/gorm"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.MailRequestHistory) (id string, err error)
	List(requestID string) (list []dbmodels.MailRequestHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MailRequestHistory) (id string, err error) {
	err = i.db.
		Omit("Reviewer").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(requestID string) (list []dbmodels.MailRequestHistory, err error) {
	list = []dbmodels.MailRequestHistory{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Reviewer").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
