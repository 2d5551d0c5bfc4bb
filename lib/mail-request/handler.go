package mailrequesthandler

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/config"
	"mail-approval-backend/db"
	xlsexport "mail-approval-backend/lib/export/xls"
	mailrequesthistorystore "mail-approval-backend/lib/mail-request/history-store"
	mailrequeststore "mail-approval-backend/lib/mail-request/store"
	"mail-approval-backend/lib/metrics"
	"mail-approval-backend/lib/rbac"
	usersstore "mail-approval-backend/lib/users/store"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	initchecker "mail-approval-backend/lib/utils/init-checker"
	"mail-approval-backend/lib/utils/lock"
	"mail-approval-backend/models"
	mailrequestapimodels "mail-approval-backend/models/api/mailrequest"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	Create(creatorID string, data mailrequestapimodels.MailRequestData) (mailrequestapimodels.MailRequestView, error)
	Review(ctx context.Context, actorID string, request mailrequestapimodels.ReviewRequest) (mailrequestapimodels.MailRequestView, error)
	ReviewHelpDesk(ctx context.Context, actorID string, request mailrequestapimodels.ReviewRequest) (mailrequestapimodels.MailRequestView, error)
	ListForRequester(actorID string) ([]mailrequestapimodels.MailRequestView, error)
	ListPendingForSupervisor(supervisorID string) ([]mailrequestapimodels.MailRequestView, error)
	ListActionRequired(supervisorID string) ([]mailrequestapimodels.MailRequestView, error)
	ListAllApproved(actorID string) ([]mailrequestapimodels.MailRequestView, error)
	ListAllPendingEscalatedManager(actorID string) ([]mailrequestapimodels.MailRequestView, error)
	ListAllPendingEscalatedHelpDesk(actorID string) ([]mailrequestapimodels.MailRequestView, error)
	GetByID(id string) (mailrequestapimodels.MailRequestView, error)
	GetDetails(actorID, id string) (mailrequestapimodels.MailRequestView, error)
	History(actorID, id string) ([]mailrequestapimodels.HistoryView, error)
	ExportApproved(actorID string) (*bytes.Buffer, error)
	CountEscalated() (EscalatedCount, error)
}

// EscalatedCount - количество просроченных заявок по уровням эскалации
type EscalatedCount struct {
	Manager  int
	HelpDesk int
}

var Instance Provider

const reviewLockWait = 5 * time.Second

type Options struct {
	ManagerEscalation  time.Duration
	HelpDeskEscalation time.Duration
	Now                func() time.Time
}

func NewHandler() {
	initchecker.CheckInit(
		"db.DB", db.DB,
		"xlsexport.Instance", xlsexport.Instance,
	)
	Instance = NewInstance(
		mailrequeststore.NewInstance(db.DB),
		mailrequesthistorystore.NewInstance(db.DB),
		usersstore.NewInstance(db.DB),
		xlsexport.Instance,
		Options{
			ManagerEscalation:  config.Conf.ManagerEscalation(),
			HelpDeskEscalation: config.Conf.HelpDeskEscalation(),
			Now:                time.Now,
		})
}

func NewInstance(store mailrequeststore.Provider, historyStore mailrequesthistorystore.Provider,
	usersStore usersstore.Provider, exporter xlsexport.Provider, opts Options) Provider {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return impl{
		store:        store,
		historyStore: historyStore,
		usersStore:   usersStore,
		exporter:     exporter,
		opts:         opts,
	}
}

type impl struct {
	store        mailrequeststore.Provider
	historyStore mailrequesthistorystore.Provider
	usersStore   usersstore.Provider
	exporter     xlsexport.Provider
	opts         Options
}

func (i impl) GetLogger(requestID string) *log.Entry {
	return log.WithField("mail_request_id", requestID)
}

func (i impl) Create(creatorID string, data mailrequestapimodels.MailRequestData) (mailrequestapimodels.MailRequestView, error) {
	creator, err := i.getActorWithOp(creatorID, models.OpCreateMailRequest)
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	if err = data.Validate(); err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	rec := dbmodels.MailRequest{
		VersionedModel: dbmodels.VersionedModel{
			BaseModel: dbmodels.BaseModel{CreatedAt: i.opts.Now()},
			Version:   1,
		},
		Subject: data.Subject,
		Body:    data.Body,
		UserID:  creator.ID,
		Status:  models.MRStatusHelpDeskRequest,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithField("user_id", creator.ID).WithError(err).Error("ошибка создания заявки")
		return mailrequestapimodels.MailRequestView{}, errors.Wrap(err, "ошибка создания заявки")
	}
	rec.ID = id
	rec.User = creator
	metrics.RequestCreated()
	i.GetLogger(id).WithField("user_id", creator.ID).Info("заявка создана")
	return mailrequestapimodels.MailRequestConvert(rec), nil
}

func (i impl) Review(ctx context.Context, actorID string, request mailrequestapimodels.ReviewRequest) (mailrequestapimodels.MailRequestView, error) {
	actor, err := i.getActorWithOp(actorID, models.OpReview)
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	return i.review(ctx, actor, request, models.ReviewEntryGeneric)
}

func (i impl) ReviewHelpDesk(ctx context.Context, actorID string, request mailrequestapimodels.ReviewRequest) (mailrequestapimodels.MailRequestView, error) {
	actor, err := i.getActorWithOp(actorID, models.OpReviewHelpDesk)
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	return i.review(ctx, actor, request, models.ReviewEntryHelpDesk)
}

func (i impl) review(ctx context.Context, actor *dbmodels.User, request mailrequestapimodels.ReviewRequest, entry models.ReviewEntry) (mailrequestapimodels.MailRequestView, error) {
	if err := request.Validate(); err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	var result dbmodels.MailRequest
	locked, err := lock.WithDelay(ctx, lock.Key("mail_request", request.RequestID), reviewLockWait, func() error {
		rec, err := i.getRequest(request.RequestID)
		if err != nil {
			return err
		}
		if request.Version != nil && *request.Version != rec.Version {
			metrics.ReviewConflict()
			return apperrors.Conflict("заявка была изменена другим пользователем")
		}
		var newStatus models.MRStatus
		if entry == models.ReviewEntryHelpDesk {
			newStatus = HelpDeskReviewStatus(request.Approved)
		} else {
			newStatus = ReviewStatus(actor.Role, request.Approved, rec.Status)
		}
		reviewedAt := i.opts.Now()
		if reviewedAt.Before(rec.CreatedAt) {
			reviewedAt = rec.CreatedAt
		}
		updMap := map[string]interface{}{
			"manager_approved": request.Approved,
			"status":           newStatus,
			"manager_id":       actor.ID,
			"comments":         request.Comments,
			"reviewed_at":      reviewedAt,
		}
		if err = i.store.Update(rec.ID, rec.Version, updMap); err != nil {
			if apperrors.IsConflict(err) {
				metrics.ReviewConflict()
				return err
			}
			i.GetLogger(rec.ID).WithError(err).Error("ошибка сохранения решения по заявке")
			return errors.Wrap(err, "ошибка сохранения решения по заявке")
		}
		i.audit(*rec, actor, entry, request, newStatus)

		statusBefore := rec.Status
		rec.ManagerApproved = request.Approved
		rec.Status = newStatus
		rec.ManagerID = &actor.ID
		rec.Manager = actor
		rec.Comments = request.Comments
		rec.ReviewedAt = &reviewedAt
		rec.Version++
		result = *rec

		metrics.Reviewed(actor.Role, newStatus, entry)
		i.GetLogger(rec.ID).
			WithField("reviewer_id", actor.ID).
			WithField("entry", entry).
			WithField("status_before", statusBefore).
			WithField("status_after", newStatus).
			Info("решение по заявке сохранено")
		return nil
	})
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	if !locked {
		return mailrequestapimodels.MailRequestView{}, apperrors.Conflict("заявка обрабатывается другим пользователем, повторите попытку")
	}
	return mailrequestapimodels.MailRequestConvert(result), nil
}

func (i impl) ListForRequester(actorID string) ([]mailrequestapimodels.MailRequestView, error) {
	actor, err := i.getActorWithOp(actorID, models.OpListOwnRequests)
	if err != nil {
		return nil, err
	}
	return i.list(mailrequeststore.Filter{
		CreatorID:       actor.ID,
		ExcludeStatuses: models.RequesterHiddenStatuses,
	})
}

func (i impl) ListPendingForSupervisor(supervisorID string) ([]mailrequestapimodels.MailRequestView, error) {
	supervisor, err := i.getActorWithOp(supervisorID, models.OpListSupervisedPending)
	if err != nil {
		return nil, err
	}
	return i.list(mailrequeststore.Filter{
		LeaderID: supervisor.ID,
		Approval: mailrequeststore.ApprovalPending,
	})
}

func (i impl) ListActionRequired(supervisorID string) ([]mailrequestapimodels.MailRequestView, error) {
	supervisor, err := i.getActorWithOp(supervisorID, models.OpListActionRequired)
	if err != nil {
		return nil, err
	}
	return i.list(mailrequeststore.Filter{
		LeaderID: supervisor.ID,
		Statuses: models.AttentionStatuses,
	})
}

func (i impl) ListAllApproved(actorID string) ([]mailrequestapimodels.MailRequestView, error) {
	if _, err := i.getActorWithOp(actorID, models.OpListAllApproved); err != nil {
		return nil, err
	}
	return i.list(mailrequeststore.Filter{Approval: mailrequeststore.ApprovalApproved})
}

func (i impl) ListAllPendingEscalatedManager(actorID string) ([]mailrequestapimodels.MailRequestView, error) {
	if _, err := i.getActorWithOp(actorID, models.OpListEscalatedToManager); err != nil {
		return nil, err
	}
	return i.listEscalated(i.opts.ManagerEscalation)
}

func (i impl) ListAllPendingEscalatedHelpDesk(actorID string) ([]mailrequestapimodels.MailRequestView, error) {
	if _, err := i.getActorWithOp(actorID, models.OpListEscalatedToHelpDesk); err != nil {
		return nil, err
	}
	return i.listEscalated(i.opts.HelpDeskEscalation)
}

func (i impl) GetByID(id string) (mailrequestapimodels.MailRequestView, error) {
	rec, err := i.getRequest(id)
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	return mailrequestapimodels.MailRequestConvert(*rec), nil
}

func (i impl) GetDetails(actorID, id string) (mailrequestapimodels.MailRequestView, error) {
	rec, err := i.getRequest(id)
	if err != nil {
		return mailrequestapimodels.MailRequestView{}, err
	}
	if !rec.CanBeViewedBy(actorID) {
		return mailrequestapimodels.MailRequestView{}, apperrors.Forbidden("заявка доступна только автору и последнему согласующему")
	}
	return mailrequestapimodels.MailRequestConvert(*rec), nil
}

func (i impl) History(actorID, id string) ([]mailrequestapimodels.HistoryView, error) {
	actor, err := i.getActor(actorID)
	if err != nil {
		return nil, err
	}
	rec, err := i.getRequest(id)
	if err != nil {
		return nil, err
	}
	if !rec.CanBeViewedBy(actor.ID) && !actor.HasAnyRole(models.TeamLeaderRole, models.ManagerRole) {
		return nil, apperrors.Forbidden("история согласования недоступна")
	}
	list, err := i.historyStore.List(rec.ID)
	if err != nil {
		i.GetLogger(rec.ID).WithError(err).Error("ошибка получения истории согласования заявки")
		return nil, err
	}
	result := make([]mailrequestapimodels.HistoryView, 0, len(list))
	for _, item := range list {
		result = append(result, mailrequestapimodels.HistoryConvert(item))
	}
	return result, nil
}

func (i impl) ExportApproved(actorID string) (*bytes.Buffer, error) {
	if _, err := i.getActorWithOp(actorID, models.OpExportApproved); err != nil {
		return nil, err
	}
	list, err := i.store.List(mailrequeststore.Filter{Approval: mailrequeststore.ApprovalApproved})
	if err != nil {
		log.WithError(err).Error("ошибка получения согласованных заявок для выгрузки")
		return nil, err
	}
	buf, err := i.exporter.ExportMailRequestList(list)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки согласованных заявок")
		return nil, err
	}
	return buf, nil
}

// audit - журнал согласования ведется без влияния на результат операции
func (i impl) audit(rec dbmodels.MailRequest, actor *dbmodels.User, entry models.ReviewEntry, request mailrequestapimodels.ReviewRequest, newStatus models.MRStatus) {
	history := dbmodels.MailRequestHistory{
		RequestID:    rec.ID,
		ReviewerID:   &actor.ID,
		ReviewerRole: actor.Role,
		Entry:        entry,
		Decision:     request.Approved,
		StatusBefore: rec.Status,
		StatusAfter:  newStatus,
		Comments:     request.Comments,
	}
	history.Changes.Description = "решение по заявке"
	if rec.Status != newStatus {
		history.Changes.Add("status", rec.Status, newStatus)
	}
	if !sameDecision(rec.ManagerApproved, request.Approved) {
		history.Changes.Add("manager_approved", rec.ManagerApproved, request.Approved)
	}
	if rec.ManagerID == nil || *rec.ManagerID != actor.ID {
		history.Changes.Add("manager_id", rec.ManagerID, actor.ID)
	}
	if rec.Comments != request.Comments {
		history.Changes.Add("comments", rec.Comments, request.Comments)
	}
	if _, err := i.historyStore.Create(history); err != nil {
		i.GetLogger(rec.ID).WithError(err).Error("ошибка добавления истории согласования заявки")
	}
}

// CountEscalated считает просроченные заявки за один проход по ожидающим решения менеджера
func (i impl) CountEscalated() (EscalatedCount, error) {
	now := i.opts.Now()
	threshold := i.opts.ManagerEscalation
	if i.opts.HelpDeskEscalation < threshold {
		threshold = i.opts.HelpDeskEscalation
	}
	list, err := i.store.List(escalatedFilter(now, threshold))
	if err != nil {
		return EscalatedCount{}, errors.Wrap(err, "ошибка получения ожидающих заявок")
	}
	result := EscalatedCount{}
	for _, rec := range list {
		if IsEscalated(rec.CreatedAt, now, i.opts.ManagerEscalation) {
			result.Manager++
		}
		if IsEscalated(rec.CreatedAt, now, i.opts.HelpDeskEscalation) {
			result.HelpDesk++
		}
	}
	return result, nil
}

func (i impl) listEscalated(threshold time.Duration) ([]mailrequestapimodels.MailRequestView, error) {
	now := i.opts.Now()
	list, err := i.store.List(escalatedFilter(now, threshold))
	if err != nil {
		log.WithError(err).Error("ошибка получения ожидающих заявок")
		return nil, err
	}
	result := make([]mailrequestapimodels.MailRequestView, 0, len(list))
	for _, rec := range list {
		if IsEscalated(rec.CreatedAt, now, threshold) {
			result = append(result, mailrequestapimodels.MailRequestConvert(rec))
		}
	}
	return result, nil
}

// escalatedFilter отбирает в БД ожидающие заявки, которые могут быть просрочены на момент now
func escalatedFilter(now time.Time, threshold time.Duration) mailrequeststore.Filter {
	return mailrequeststore.Filter{
		Approval:      mailrequeststore.ApprovalPending,
		CreatedBefore: now.Add(-threshold),
	}
}

func (i impl) list(filter mailrequeststore.Filter) ([]mailrequestapimodels.MailRequestView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		log.WithField("filter", filter).WithError(err).Error("ошибка получения списка заявок")
		return nil, err
	}
	return mailrequestapimodels.MailRequestListConvert(list), nil
}

func (i impl) getRequest(id string) (*dbmodels.MailRequest, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка получения заявки")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("заявка не найдена")
	}
	return rec, nil
}

func (i impl) getActor(actorID string) (*dbmodels.User, error) {
	actor, err := i.usersStore.GetByID(actorID)
	if err != nil {
		log.WithField("user_id", actorID).WithError(err).Error("ошибка поиска пользователя")
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	return actor, nil
}

func (i impl) getActorWithOp(actorID string, op models.Operation) (*dbmodels.User, error) {
	actor, err := i.getActor(actorID)
	if err != nil {
		return nil, err
	}
	if err = rbac.Check(actor.Role, op); err != nil {
		return nil, err
	}
	return actor, nil
}

func sameDecision(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
