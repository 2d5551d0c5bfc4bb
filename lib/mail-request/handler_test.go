package mailrequesthandler

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	xlsexport "mail-approval-backend/lib/export/xls"
	mailrequeststore "mail-approval-backend/lib/mail-request/store"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
	mailrequestapimodels "mail-approval-backend/models/api/mailrequest"
	dbmodels "mail-approval-backend/models/db"
)

type fakeUsersStore struct {
	users map[string]dbmodels.User
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.users[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeUsersStore) GetByID(userID string) (*dbmodels.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUsersStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) ExistByEmail(email string) (bool, error) {
	user, err := f.FindByEmail(email)
	return user != nil, err
}

func (f *fakeUsersStore) ListByLeader(leaderID string, role models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}

func (f *fakeUsersStore) CountAuthoredRequests(userID string) (int64, error) {
	return 0, nil
}

func (f *fakeUsersStore) Delete(userID string) error {
	delete(f.users, userID)
	return nil
}

type fakeMailStore struct {
	mu       sync.Mutex
	users    *fakeUsersStore
	requests map[string]dbmodels.MailRequest
	updates  int
	filters  []mailrequeststore.Filter
	// beforeUpdate вызывается перед проверкой версии, имитирует параллельную запись
	beforeUpdate func(id string)
}

func (f *fakeMailStore) Create(rec dbmodels.MailRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.User = nil
	f.requests[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeMailStore) GetByID(id string) (*dbmodels.MailRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	f.preload(&rec)
	return &rec, nil
}

func (f *fakeMailStore) Update(id string, version int, updMap map[string]interface{}) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.requests[id]
	if !ok || rec.Version != version {
		return apperrors.Conflict("заявка была изменена другим пользователем")
	}
	for key, value := range updMap {
		switch key {
		case "manager_approved":
			rec.ManagerApproved = value.(*bool)
		case "status":
			rec.Status = value.(models.MRStatus)
		case "manager_id":
			managerID := value.(string)
			rec.ManagerID = &managerID
		case "comments":
			rec.Comments = value.(string)
		case "reviewed_at":
			reviewedAt := value.(time.Time)
			rec.ReviewedAt = &reviewedAt
		}
	}
	rec.Version++
	f.requests[id] = rec
	f.updates++
	return nil
}

func (f *fakeMailStore) List(filter mailrequeststore.Filter) ([]dbmodels.MailRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	list := []dbmodels.MailRequest{}
	for _, rec := range f.requests {
		if !filter.CreatedBefore.IsZero() && !rec.CreatedAt.Before(filter.CreatedBefore) {
			continue
		}
		if filter.CreatorID != "" && rec.UserID != filter.CreatorID {
			continue
		}
		if filter.LeaderID != "" {
			creator := f.users.users[rec.UserID]
			if creator.LeaderID == nil || *creator.LeaderID != filter.LeaderID {
				continue
			}
		}
		if len(filter.Statuses) != 0 && !rec.Status.In(filter.Statuses...) {
			continue
		}
		if rec.Status.In(filter.ExcludeStatuses...) {
			continue
		}
		switch filter.Approval {
		case mailrequeststore.ApprovalPending:
			if rec.ManagerApproved != nil {
				continue
			}
		case mailrequeststore.ApprovalApproved:
			if rec.ManagerApproved == nil || !*rec.ManagerApproved {
				continue
			}
		}
		f.preload(&rec)
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].CreatedAt.Before(list[b].CreatedAt) })
	return list, nil
}

func (f *fakeMailStore) preload(rec *dbmodels.MailRequest) {
	if user, ok := f.users.users[rec.UserID]; ok {
		rec.User = &user
	}
	if rec.ManagerID != nil {
		if user, ok := f.users.users[*rec.ManagerID]; ok {
			rec.Manager = &user
		}
	}
}

type fakeHistoryStore struct {
	list []dbmodels.MailRequestHistory
}

func (f *fakeHistoryStore) Create(rec dbmodels.MailRequestHistory) (string, error) {
	rec.ID = uuid.NewString()
	f.list = append(f.list, rec)
	return rec.ID, nil
}

func (f *fakeHistoryStore) List(requestID string) ([]dbmodels.MailRequestHistory, error) {
	result := []dbmodels.MailRequestHistory{}
	for _, rec := range f.list {
		if rec.RequestID == requestID {
			result = append(result, rec)
		}
	}
	return result, nil
}

type testEnv struct {
	handler  Provider
	users    *fakeUsersStore
	requests *fakeMailStore
	history  *fakeHistoryStore
	now      time.Time

	manager    dbmodels.User
	teamLeader dbmodels.User
	helpDesk   dbmodels.User
	employee   dbmodels.User
	outsider   dbmodels.User // сотрудник другого руководителя
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		users:   &fakeUsersStore{users: map[string]dbmodels.User{}},
		history: &fakeHistoryStore{},
		now:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	env.requests = &fakeMailStore{users: env.users, requests: map[string]dbmodels.MailRequest{}}
	env.manager = env.addUser(t, "Мария", models.ManagerRole, nil)
	env.teamLeader = env.addUser(t, "Тимур", models.TeamLeaderRole, &env.manager.ID)
	env.helpDesk = env.addUser(t, "Хельга", models.HelpDeskRole, &env.manager.ID)
	env.employee = env.addUser(t, "Елена", models.EmployeeRole, &env.teamLeader.ID)
	otherLeader := env.addUser(t, "Олег", models.TeamLeaderRole, &env.manager.ID)
	env.outsider = env.addUser(t, "Павел", models.EmployeeRole, &otherLeader.ID)

	xlsexport.NewHandler()
	env.handler = NewInstance(env.requests, env.history, env.users, xlsexport.Instance, Options{
		ManagerEscalation:  time.Minute,
		HelpDeskEscalation: 2 * time.Minute,
		Now:                func() time.Time { return env.now },
	})
	return env
}

func (env *testEnv) addUser(t *testing.T, name string, role models.UserRole, leaderID *string) dbmodels.User {
	user := dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: uuid.NewString()},
		Name:      name,
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
		LeaderID:  leaderID,
	}
	_, err := env.users.Create(user)
	require.Nil(t, err)
	return user
}

func (env *testEnv) create(t *testing.T, creator dbmodels.User, subject string) mailrequestapimodels.MailRequestView {
	view, err := env.handler.Create(creator.ID, mailrequestapimodels.MailRequestData{Subject: subject, Body: "..."})
	require.Nil(t, err)
	return view
}

func (env *testEnv) review(t *testing.T, actor dbmodels.User, requestID string, approved *bool, comments string) mailrequestapimodels.MailRequestView {
	view, err := env.handler.Review(context.Background(), actor.ID, mailrequestapimodels.ReviewRequest{
		RequestID: requestID,
		Approved:  approved,
		Comments:  comments,
	})
	require.Nil(t, err)
	return view
}

func ids(list []mailrequestapimodels.MailRequestView) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		result = append(result, item.ID)
	}
	return result
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)

	view := env.create(t, env.employee, "Отпуск")
	require.Equal(t, models.MRStatusHelpDeskRequest, view.Status)
	require.Nil(t, view.ManagerApproved)
	require.Nil(t, view.ReviewedAt)
	require.Nil(t, view.ManagerID)
	require.Equal(t, env.now, view.CreatedAt)
	require.Equal(t, 1, view.Version)
	require.Equal(t, env.employee.Name, view.UserName)

	stored, err := env.handler.GetByID(view.ID)
	require.Nil(t, err)
	require.Equal(t, models.MRStatusHelpDeskRequest, stored.Status)
	require.Nil(t, stored.ManagerApproved)

	t.Run(`only employee`, func(t *testing.T) {
		for _, actor := range []dbmodels.User{env.manager, env.teamLeader, env.helpDesk} {
			_, err := env.handler.Create(actor.ID, mailrequestapimodels.MailRequestData{Subject: "s", Body: "b"})
			require.True(t, apperrors.IsForbidden(err), actor.Role)
		}
	})

	t.Run(`unknown creator`, func(t *testing.T) {
		_, err := env.handler.Create(uuid.NewString(), mailrequestapimodels.MailRequestData{Subject: "s", Body: "b"})
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`validation`, func(t *testing.T) {
		long := make([]rune, 256)
		for idx := range long {
			long[idx] = 'я'
		}
		_, err := env.handler.Create(env.employee.ID, mailrequestapimodels.MailRequestData{Subject: string(long), Body: ""})
		fields, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		require.Contains(t, fields, "subject")
		require.Contains(t, fields, "body")

		_, err = env.handler.Create(env.employee.ID, mailrequestapimodels.MailRequestData{Subject: string(long[:255]), Body: "b"})
		require.Nil(t, err)
	})
}

func TestReview(t *testing.T) {
	t.Run(`manager accept regardless of prior status`, func(t *testing.T) {
		env := newTestEnv(t)
		priors := []func(id string){
			func(id string) {},
			func(id string) { env.review(t, env.teamLeader, id, boolPtr(false), "") },
			func(id string) { env.review(t, env.helpDesk, id, boolPtr(true), "") },
			func(id string) { env.review(t, env.manager, id, boolPtr(false), "") },
		}
		for _, prior := range priors {
			view := env.create(t, env.employee, "Запрос")
			prior(view.ID)
			reviewed := env.review(t, env.manager, view.ID, boolPtr(true), "ок")
			require.Equal(t, models.MRStatusManagerAccept, reviewed.Status)
			require.NotNil(t, reviewed.ManagerApproved)
			require.True(t, *reviewed.ManagerApproved)
		}
	})

	t.Run(`null decision keeps status on generic entry`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		env.review(t, env.teamLeader, view.ID, boolPtr(false), "нет")

		env.now = env.now.Add(time.Minute)
		reviewed := env.review(t, env.manager, view.ID, nil, "пересмотр")
		require.Equal(t, models.MRStatusTeamLeaderReject, reviewed.Status)
		require.Nil(t, reviewed.ManagerApproved)
		require.Equal(t, env.manager.ID, *reviewed.ManagerID)
		require.Equal(t, "пересмотр", reviewed.Comments)
		require.Equal(t, env.now, *reviewed.ReviewedAt)
	})

	t.Run(`reviewer roles`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		_, err := env.handler.Review(context.Background(), env.employee.ID, mailrequestapimodels.ReviewRequest{RequestID: view.ID, Approved: boolPtr(true)})
		require.True(t, apperrors.IsForbidden(err))

		_, err = env.handler.Review(context.Background(), uuid.NewString(), mailrequestapimodels.ReviewRequest{RequestID: view.ID, Approved: boolPtr(true)})
		require.True(t, apperrors.IsNotFound(err))

		_, err = env.handler.Review(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{RequestID: uuid.NewString(), Approved: boolPtr(true)})
		require.True(t, apperrors.IsNotFound(err))

		_, err = env.handler.Review(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{RequestID: "not-a-uuid"})
		_, ok := apperrors.AsValidation(err)
		require.True(t, ok)

		require.Equal(t, 0, env.requests.updates)
	})

	t.Run(`help desk entry`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		reviewed, err := env.handler.ReviewHelpDesk(context.Background(), env.helpDesk.ID, mailrequestapimodels.ReviewRequest{RequestID: view.ID, Approved: boolPtr(true)})
		require.Nil(t, err)
		require.Equal(t, models.MRStatusHelpDeskAccept, reviewed.Status)

		reviewed, err = env.handler.ReviewHelpDesk(context.Background(), env.helpDesk.ID, mailrequestapimodels.ReviewRequest{RequestID: view.ID, Approved: boolPtr(false)})
		require.Nil(t, err)
		require.Equal(t, models.MRStatusHelpDeskReject, reviewed.Status)

		_, err = env.handler.ReviewHelpDesk(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{RequestID: view.ID, Approved: boolPtr(true)})
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`history is appended`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		env.review(t, env.teamLeader, view.ID, boolPtr(true), "да")
		env.review(t, env.manager, view.ID, boolPtr(false), "нет")

		history, err := env.handler.History(env.employee.ID, view.ID)
		require.Nil(t, err)
		require.Len(t, history, 2)
		require.Equal(t, models.MRStatusHelpDeskRequest, history[0].StatusBefore)
		require.Equal(t, models.MRStatusTeamLeaderAccept, history[0].StatusAfter)
		require.Equal(t, models.ReviewEntryGeneric, history[0].Entry)
		require.Equal(t, env.teamLeader.ID, *history[0].ReviewerID)
		require.Equal(t, models.MRStatusTeamLeaderAccept, history[1].StatusBefore)
		require.Equal(t, models.MRStatusManagerReject, history[1].StatusAfter)

		_, err = env.handler.History(env.outsider.ID, view.ID)
		require.True(t, apperrors.IsForbidden(err))
	})
}

func TestReviewConflict(t *testing.T) {
	t.Run(`stale version`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		env.review(t, env.teamLeader, view.ID, boolPtr(true), "да")

		stale := view.Version
		_, err := env.handler.Review(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{
			RequestID: view.ID,
			Approved:  boolPtr(false),
			Version:   &stale,
		})
		require.True(t, apperrors.IsConflict(err))

		stored, err := env.handler.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, models.MRStatusTeamLeaderAccept, stored.Status)
		require.Equal(t, env.teamLeader.ID, *stored.ManagerID)
		require.Equal(t, 2, stored.Version)

		history, err := env.handler.History(env.employee.ID, view.ID)
		require.Nil(t, err)
		require.Len(t, history, 1)
	})

	t.Run(`concurrent write between read and update`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		env.requests.beforeUpdate = func(id string) {
			env.requests.beforeUpdate = nil
			env.requests.mu.Lock()
			rec := env.requests.requests[id]
			rec.Version++
			rec.Status = models.MRStatusHelpDeskReject
			env.requests.requests[id] = rec
			env.requests.mu.Unlock()
		}
		_, err := env.handler.Review(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{
			RequestID: view.ID,
			Approved:  boolPtr(true),
		})
		require.True(t, apperrors.IsConflict(err))

		stored, err := env.handler.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, models.MRStatusHelpDeskReject, stored.Status)
		require.Nil(t, stored.ManagerID)
		require.Empty(t, env.history.list)
	})

	t.Run(`parallel reviews are serialized`, func(t *testing.T) {
		env := newTestEnv(t)
		view := env.create(t, env.employee, "Запрос")
		wg := sync.WaitGroup{}
		errs := make(chan error, 10)
		for n := 0; n < 10; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.handler.Review(context.Background(), env.manager.ID, mailrequestapimodels.ReviewRequest{
					RequestID: view.ID,
					Approved:  boolPtr(true),
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.Nil(t, err)
		}
		stored, err := env.handler.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, 11, stored.Version)
	})
}

func TestVisibility(t *testing.T) {
	env := newTestEnv(t)
	hidden := env.create(t, env.employee, "В ожидании")
	rejected := env.create(t, env.employee, "Отклонена")
	env.review(t, env.manager, rejected.ID, boolPtr(false), "")
	accepted := env.create(t, env.employee, "Согласована")
	env.review(t, env.teamLeader, accepted.ID, boolPtr(true), "")
	reverted := env.create(t, env.employee, "Возвращена")
	env.review(t, env.helpDesk, reverted.ID, boolPtr(true), "")
	env.review(t, env.manager, reverted.ID, nil, "")
	foreign := env.create(t, env.outsider, "Чужая")

	t.Run(`requester`, func(t *testing.T) {
		list, err := env.handler.ListForRequester(env.employee.ID)
		require.Nil(t, err)
		require.ElementsMatch(t, []string{accepted.ID, reverted.ID}, ids(list))
		for _, item := range list {
			require.True(t, item.Status.VisibleToRequester())
		}
		_, err = env.handler.ListForRequester(env.helpDesk.ID)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`supervisor pending`, func(t *testing.T) {
		list, err := env.handler.ListPendingForSupervisor(env.teamLeader.ID)
		require.Nil(t, err)
		require.ElementsMatch(t, []string{hidden.ID, reverted.ID}, ids(list))

		list, err = env.handler.ListPendingForSupervisor(env.manager.ID)
		require.Nil(t, err)
		require.Empty(t, list)

		_, err = env.handler.ListPendingForSupervisor(env.employee.ID)
		require.True(t, apperrors.IsForbidden(err))
		_, err = env.handler.ListPendingForSupervisor(env.helpDesk.ID)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`action required`, func(t *testing.T) {
		list, err := env.handler.ListActionRequired(env.teamLeader.ID)
		require.Nil(t, err)
		require.ElementsMatch(t, []string{hidden.ID, rejected.ID}, ids(list))
		for _, item := range list {
			require.True(t, item.Status.NeedsAttention())
		}
		_, err = env.handler.ListActionRequired(env.employee.ID)
		require.True(t, apperrors.IsForbidden(err))
		_, err = env.handler.ListActionRequired(env.helpDesk.ID)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`all approved`, func(t *testing.T) {
		list, err := env.handler.ListAllApproved(env.manager.ID)
		require.Nil(t, err)
		require.Equal(t, []string{accepted.ID}, ids(list))

		_, err = env.handler.ListAllApproved(env.teamLeader.ID)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`details`, func(t *testing.T) {
		view, err := env.handler.GetDetails(env.employee.ID, accepted.ID)
		require.Nil(t, err)
		require.Equal(t, accepted.ID, view.ID)

		view, err = env.handler.GetDetails(env.teamLeader.ID, accepted.ID)
		require.Nil(t, err)
		require.Equal(t, accepted.ID, view.ID)

		_, err = env.handler.GetDetails(env.manager.ID, accepted.ID)
		require.True(t, apperrors.IsForbidden(err))
		_, err = env.handler.GetDetails(env.employee.ID, foreign.ID)
		require.True(t, apperrors.IsForbidden(err))
		_, err = env.handler.GetDetails(env.employee.ID, uuid.NewString())
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`export`, func(t *testing.T) {
		buf, err := env.handler.ExportApproved(env.manager.ID)
		require.Nil(t, err)
		require.NotZero(t, buf.Len())

		_, err = env.handler.ExportApproved(env.helpDesk.ID)
		require.True(t, apperrors.IsForbidden(err))
	})
}

func TestEscalation(t *testing.T) {
	env := newTestEnv(t)
	start := env.now

	env.now = start.Add(-61 * time.Second)
	stale := env.create(t, env.employee, "Давняя")
	env.now = start.Add(-59 * time.Second)
	fresh := env.create(t, env.employee, "Свежая")
	env.now = start.Add(-121 * time.Second)
	veryStale := env.create(t, env.employee, "Очень давняя")
	env.now = start.Add(-5 * time.Minute)
	decided := env.create(t, env.employee, "Решенная")
	env.review(t, env.teamLeader, decided.ID, boolPtr(false), "")
	env.now = start

	list, err := env.handler.ListAllPendingEscalatedManager(env.manager.ID)
	require.Nil(t, err)
	require.Equal(t, []string{veryStale.ID, stale.ID}, ids(list))
	require.NotContains(t, ids(list), fresh.ID)

	list, err = env.handler.ListAllPendingEscalatedHelpDesk(env.helpDesk.ID)
	require.Nil(t, err)
	require.Equal(t, []string{veryStale.ID}, ids(list))

	_, err = env.handler.ListAllPendingEscalatedManager(env.helpDesk.ID)
	require.True(t, apperrors.IsForbidden(err))
	_, err = env.handler.ListAllPendingEscalatedHelpDesk(env.manager.ID)
	require.True(t, apperrors.IsForbidden(err))

	count, err := env.handler.CountEscalated()
	require.Nil(t, err)
	require.Equal(t, EscalatedCount{Manager: 2, HelpDesk: 1}, count)

	t.Run(`store narrows rows by creation time`, func(t *testing.T) {
		env.requests.filters = nil
		_, err := env.handler.ListAllPendingEscalatedHelpDesk(env.helpDesk.ID)
		require.Nil(t, err)
		_, err = env.handler.CountEscalated()
		require.Nil(t, err)
		require.Len(t, env.requests.filters, 2)
		require.Equal(t, start.Add(-2*time.Minute), env.requests.filters[0].CreatedBefore)
		require.Equal(t, start.Add(-time.Minute), env.requests.filters[1].CreatedBefore)
		require.Equal(t, mailrequeststore.ApprovalPending, env.requests.filters[1].Approval)
	})
}

func TestScenarios(t *testing.T) {
	t.Run(`team leader approval is visible to requester and manager`, func(t *testing.T) {
		env := newTestEnv(t)
		unrelatedManager := env.addUser(t, "Михаил", models.ManagerRole, nil)
		request := env.create(t, env.employee, "Leave")

		reviewed := env.review(t, env.teamLeader, request.ID, boolPtr(true), "")
		require.Equal(t, models.MRStatusTeamLeaderAccept, reviewed.Status)
		require.True(t, *reviewed.ManagerApproved)

		own, err := env.handler.ListForRequester(env.employee.ID)
		require.Nil(t, err)
		require.Contains(t, ids(own), request.ID)

		approved, err := env.handler.ListAllApproved(unrelatedManager.ID)
		require.Nil(t, err)
		require.Contains(t, ids(approved), request.ID)
	})

	t.Run(`help desk null review resets to HD_REQ`, func(t *testing.T) {
		env := newTestEnv(t)
		request := env.create(t, env.employee, "Leave")
		env.review(t, env.teamLeader, request.ID, boolPtr(true), "")

		env.now = env.now.Add(time.Hour)
		reviewed, err := env.handler.ReviewHelpDesk(context.Background(), env.helpDesk.ID, mailrequestapimodels.ReviewRequest{
			RequestID: request.ID,
			Approved:  nil,
			Comments:  "нужны уточнения",
		})
		require.Nil(t, err)
		require.Equal(t, models.MRStatusHelpDeskRequest, reviewed.Status)
		require.Nil(t, reviewed.ManagerApproved)
		require.Equal(t, "нужны уточнения", reviewed.Comments)
		require.Equal(t, env.now, *reviewed.ReviewedAt)
		require.Equal(t, env.helpDesk.ID, *reviewed.ManagerID)

		history, err := env.handler.History(env.helpDesk.ID, request.ID)
		require.Nil(t, err)
		require.Equal(t, models.ReviewEntryHelpDesk, history[len(history)-1].Entry)
	})
}
