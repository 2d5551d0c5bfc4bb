package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	ExistByEmail(email string) (bool, error)
	ListByLeader(leaderID string, role models.UserRole) (list []dbmodels.User, err error)
	CountAuthoredRequests(userID string) (int64, error)
	Delete(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Omit("Leader").
		Create(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.Conflict("пользователь с такой почтой уже существует")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.User{}).
		Where("email = ?", email).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListByLeader(leaderID string, role models.UserRole) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.Model(dbmodels.User{}).
		Where("leader_id = ?", leaderID).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountAuthoredRequests(userID string) (int64, error) {
	var count int64
	err := i.db.Model(dbmodels.MailRequest{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete отвязывает подчиненных и ссылки на пользователя как на согласующего, затем удаляет его
func (i impl) Delete(userID string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(dbmodels.User{}).
			Where("leader_id = ?", userID).
			Update("leader_id", nil).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка отвязки подчиненных")
		}
		err = tx.Model(dbmodels.MailRequest{}).
			Where("manager_id = ?", userID).
			UpdateColumn("manager_id", nil).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка отвязки согласующего от заявок")
		}
		err = tx.Model(dbmodels.MailRequestHistory{}).
			Where("reviewer_id = ?", userID).
			Update("reviewer_id", nil).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка отвязки согласующего от истории")
		}
		return tx.
			Where("id = ?", userID).
			Delete(&dbmodels.User{}).
			Error
	})
}
