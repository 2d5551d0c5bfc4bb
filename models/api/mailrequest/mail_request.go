package mailrequestapimodels

import (
	"github.com/google/uuid"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
	dbmodels "mail-approval-backend/models/db"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	SubjectMaxLen  = 255
	BodyMaxLen     = 2000
	CommentsMaxLen = 500
)

type MailRequestData struct {
	Subject string `json:"subject"` // Тема письма
	Body    string `json:"body"`    // Текст письма
}

func (r MailRequestData) Validate() error {
	vErr := apperrors.ValidationError{}
	if strings.TrimSpace(r.Subject) == "" {
		vErr["subject"] = "не указана тема"
	} else if utf8.RuneCountInString(r.Subject) > SubjectMaxLen {
		vErr["subject"] = "тема должна быть не длиннее 255 символов"
	}
	if strings.TrimSpace(r.Body) == "" {
		vErr["body"] = "не указан текст письма"
	} else if utf8.RuneCountInString(r.Body) > BodyMaxLen {
		vErr["body"] = "текст письма должен быть не длиннее 2000 символов"
	}
	return vErr.OrNil()
}

type ReviewRequest struct {
	RequestID string `json:"request_id"` // Идентификатор заявки
	Approved  *bool  `json:"approved"`   // true - согласовать, false - отклонить, null - вернуть в ожидание
	Comments  string `json:"comments"`   // Комментарий согласующего
	Version   *int   `json:"version"`    // Версия заявки, на которую опирается решение (необязательно)
}

func (r ReviewRequest) Validate() error {
	vErr := apperrors.ValidationError{}
	if r.RequestID == "" {
		vErr["request_id"] = "не указан идентификатор заявки"
	} else if _, err := uuid.Parse(r.RequestID); err != nil {
		vErr["request_id"] = "идентификатор заявки имеет неправильный формат"
	}
	if utf8.RuneCountInString(r.Comments) > CommentsMaxLen {
		vErr["comments"] = "комментарий должен быть не длиннее 500 символов"
	}
	if r.Version != nil && *r.Version < 1 {
		vErr["version"] = "версия заявки должна быть положительной"
	}
	return vErr.OrNil()
}

type MailRequestView struct {
	ID              string          `json:"id"`
	Subject         string          `json:"subject"`
	Body            string          `json:"body"`
	UserID          string          `json:"user_id"`                // Автор заявки
	UserName        string          `json:"user_name,omitempty"`    // Имя автора
	UserEmail       string          `json:"user_email,omitempty"`   // Email автора
	ManagerID       *string         `json:"manager_id,omitempty"`   // Последний согласующий
	ManagerName     string          `json:"manager_name,omitempty"` // Имя последнего согласующего
	ManagerRole     models.UserRole `json:"manager_role,omitempty"` // Роль последнего согласующего
	ManagerApproved *bool           `json:"manager_approved"`       // null - ожидает решения
	Comments        string          `json:"comments,omitempty"`
	Status          models.MRStatus `json:"status"`
	StatusName      string          `json:"status_name"`
	CreatedAt       time.Time       `json:"created_at"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	Version         int             `json:"version"`
}

func MailRequestConvert(rec dbmodels.MailRequest) MailRequestView {
	result := MailRequestView{
		ID:              rec.ID,
		Subject:         rec.Subject,
		Body:            rec.Body,
		UserID:          rec.UserID,
		ManagerID:       rec.ManagerID,
		ManagerApproved: rec.ManagerApproved,
		Comments:        rec.Comments,
		Status:          rec.Status,
		StatusName:      rec.Status.ToHuman(),
		CreatedAt:       rec.CreatedAt,
		ReviewedAt:      rec.ReviewedAt,
		Version:         rec.Version,
	}
	if rec.User != nil {
		result.UserName = rec.User.Name
		result.UserEmail = rec.User.Email
	}
	if rec.Manager != nil {
		result.ManagerName = rec.Manager.Name
		result.ManagerRole = rec.Manager.Role
	}
	return result
}

func MailRequestListConvert(list []dbmodels.MailRequest) []MailRequestView {
	result := make([]MailRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, MailRequestConvert(rec))
	}
	return result
}

type HistoryView struct {
	ID           string             `json:"id"`
	RequestID    string             `json:"request_id"`
	ReviewerID   *string            `json:"reviewer_id,omitempty"`
	ReviewerName string             `json:"reviewer_name"` // Имя согласующего
	ReviewerRole models.UserRole    `json:"reviewer_role"`
	Entry        models.ReviewEntry `json:"entry"` // Точка входа: общее согласование или служба поддержки
	Decision     *bool              `json:"decision"`
	StatusBefore models.MRStatus    `json:"status_before"`
	StatusAfter  models.MRStatus    `json:"status_after"`
	Comments     string             `json:"comments,omitempty"`
	Changes      []HistoryChange    `json:"changes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type HistoryChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

func HistoryConvert(rec dbmodels.MailRequestHistory) HistoryView {
	result := HistoryView{
		ID:           rec.ID,
		RequestID:    rec.RequestID,
		ReviewerID:   rec.ReviewerID,
		ReviewerName: models.SystemUser,
		ReviewerRole: rec.ReviewerRole,
		Entry:        rec.Entry,
		Decision:     rec.Decision,
		StatusBefore: rec.StatusBefore,
		StatusAfter:  rec.StatusAfter,
		Comments:     rec.Comments,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Reviewer != nil {
		result.ReviewerName = rec.Reviewer.Name
	}
	for _, change := range rec.Changes.Data {
		result.Changes = append(result.Changes, HistoryChange{
			Field:    change.Field,
			OldValue: change.OldValue,
			NewValue: change.NewValue,
		})
	}
	return result
}
