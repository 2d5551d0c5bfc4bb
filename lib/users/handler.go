package usershandler

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/db"
	"mail-approval-backend/lib/rbac"
	usersstore "mail-approval-backend/lib/users/store"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	"mail-approval-backend/models"
	userapimodels "mail-approval-backend/models/api/user"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	Register(request userapimodels.CreateUser) (userapimodels.UserView, error)
	CreateTeamLeader(managerID string, request userapimodels.CreateUser) (userapimodels.UserView, error)
	CreateHelpDesk(managerID string, request userapimodels.CreateUser) (userapimodels.UserView, error)
	CreateEmployee(leaderID string, request userapimodels.CreateUser) (userapimodels.UserView, error)
	ListTeamLeaders(managerID string) ([]userapimodels.UserView, error)
	ListEmployees(leaderID string) ([]userapimodels.UserView, error)
	GetByID(userID string) (userapimodels.UserView, error)
	GetActor(userID string) (*dbmodels.User, error)
	Authenticate(email, password string) (*dbmodels.User, error)
	Delete(actorID, userID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(usersstore.NewInstance(db.DB))
}

func NewInstance(store usersstore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Register(request userapimodels.CreateUser) (userapimodels.UserView, error) {
	return i.create(request, models.ManagerRole, nil)
}

func (i impl) CreateTeamLeader(managerID string, request userapimodels.CreateUser) (userapimodels.UserView, error) {
	manager, err := i.getActorWithOp(managerID, models.OpCreateTeamLeader)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return i.create(request, models.TeamLeaderRole, &manager.ID)
}

func (i impl) CreateHelpDesk(managerID string, request userapimodels.CreateUser) (userapimodels.UserView, error) {
	manager, err := i.getActorWithOp(managerID, models.OpCreateHelpDesk)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return i.create(request, models.HelpDeskRole, &manager.ID)
}

func (i impl) CreateEmployee(leaderID string, request userapimodels.CreateUser) (userapimodels.UserView, error) {
	leader, err := i.getActorWithOp(leaderID, models.OpCreateEmployee)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return i.create(request, models.EmployeeRole, &leader.ID)
}

func (i impl) ListTeamLeaders(managerID string) ([]userapimodels.UserView, error) {
	manager, err := i.getActorWithOp(managerID, models.OpListTeamLeaders)
	if err != nil {
		return nil, err
	}
	return i.listByLeader(manager.ID, models.TeamLeaderRole)
}

func (i impl) ListEmployees(leaderID string) ([]userapimodels.UserView, error) {
	leader, err := i.getActorWithOp(leaderID, models.OpListEmployees)
	if err != nil {
		return nil, err
	}
	return i.listByLeader(leader.ID, models.EmployeeRole)
}

func (i impl) GetByID(userID string) (userapimodels.UserView, error) {
	user, err := i.GetActor(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return user.ToModel(), nil
}

func (i impl) GetActor(userID string) (*dbmodels.User, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка поиска пользователя")
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	return user, nil
}

func (i impl) Authenticate(email, password string) (*dbmodels.User, error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(normalizeEmail(email))
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return nil, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return nil, apperrors.Unauthorized("неверная почта или пароль")
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("пользователь не прошел проверку пароля")
		return nil, apperrors.Unauthorized("неверная почта или пароль")
	}
	return user, nil
}

func (i impl) Delete(actorID, userID string) error {
	if _, err := i.getActorWithOp(actorID, models.OpDeleteUser); err != nil {
		return err
	}
	if actorID == userID {
		return apperrors.Forbidden("нельзя удалить самого себя")
	}
	if _, err := i.GetActor(userID); err != nil {
		return err
	}
	logger := log.WithField("user_id", userID)
	count, err := i.store.CountAuthoredRequests(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка подсчета заявок пользователя")
		return err
	}
	if count > 0 {
		return apperrors.Conflict("у пользователя есть созданные заявки, удаление невозможно")
	}
	err = i.store.Delete(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления пользователя")
		return err
	}
	logger.WithField("actor_id", actorID).Info("пользователь удален")
	return nil
}

func (i impl) getActorWithOp(actorID string, op models.Operation) (*dbmodels.User, error) {
	actor, err := i.GetActor(actorID)
	if err != nil {
		return nil, err
	}
	if err = rbac.Check(actor.Role, op); err != nil {
		return nil, err
	}
	return actor, nil
}

func (i impl) create(request userapimodels.CreateUser, role models.UserRole, leaderID *string) (userapimodels.UserView, error) {
	if err := request.Validate(); err != nil {
		return userapimodels.UserView{}, err
	}
	email := normalizeEmail(request.Email)
	logger := log.WithField("email", email).WithField("role", role)
	exist, err := i.store.ExistByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки уже существующего пользователя")
		return userapimodels.UserView{}, err
	}
	if exist {
		return userapimodels.UserView{}, apperrors.Conflict("пользователь с такой почтой уже существует")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	rec := dbmodels.User{
		Name:     strings.TrimSpace(request.Name),
		Email:    email,
		Password: hash,
		Role:     role,
		LeaderID: leaderID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		if apperrors.IsConflict(err) {
			return userapimodels.UserView{}, err
		}
		logger.WithError(err).Error("ошибка создания пользователя")
		return userapimodels.UserView{}, errors.Wrap(err, "ошибка создания пользователя")
	}
	rec.ID = id
	logger.WithField("user_id", id).Info("пользователь создан")
	return rec.ToModel(), nil
}

func (i impl) listByLeader(leaderID string, role models.UserRole) ([]userapimodels.UserView, error) {
	list, err := i.store.ListByLeader(leaderID, role)
	if err != nil {
		log.
			WithField("leader_id", leaderID).
			WithError(err).
			Error("ошибка получения списка подчиненных")
		return nil, err
	}
	result := make([]userapimodels.UserView, 0, len(list))
	for _, user := range list {
		result = append(result, user.ToModel())
	}
	return result, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
