package usershandler

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"mail-approval-backend/config"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	"mail-approval-backend/models"
	userapimodels "mail-approval-backend/models/api/user"
	dbmodels "mail-approval-backend/models/db"
)

type fakeStore struct {
	users    map[string]dbmodels.User
	authored map[string]int64
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]dbmodels.User{},
		authored: map[string]int64{},
	}
}

func (f *fakeStore) Create(rec dbmodels.User) (string, error) {
	for _, user := range f.users {
		if user.Email == rec.Email {
			return "", apperrors.Conflict("пользователь с такой почтой уже существует")
		}
	}
	rec.ID = uuid.NewString()
	f.users[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(userID string) (*dbmodels.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ExistByEmail(email string) (bool, error) {
	user, err := f.FindByEmail(email)
	return user != nil, err
}

func (f *fakeStore) ListByLeader(leaderID string, role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, user := range f.users {
		if user.LeaderID != nil && *user.LeaderID == leaderID && user.Role == role {
			list = append(list, user)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Email < list[b].Email })
	return list, nil
}

func (f *fakeStore) CountAuthoredRequests(userID string) (int64, error) {
	return f.authored[userID], nil
}

func (f *fakeStore) Delete(userID string) error {
	for id, user := range f.users {
		if user.LeaderID != nil && *user.LeaderID == userID {
			user.LeaderID = nil
			f.users[id] = user
		}
	}
	delete(f.users, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

func initTestConfig() {
	conf := &config.Configuration{}
	conf.Auth.BcryptCost = 4
	config.Conf = conf
}

func newUser(name, email string) userapimodels.CreateUser {
	return userapimodels.CreateUser{
		Name:     name,
		Email:    email,
		Password: "Secret#123",
	}
}

func TestUsersHandler(t *testing.T) {
	initTestConfig()
	store := newFakeStore()
	handler := NewInstance(store)

	manager, err := handler.Register(newUser("Мария", "Manager@Example.com"))
	require.Nil(t, err)
	require.Equal(t, models.ManagerRole, manager.Role)
	require.Equal(t, "manager@example.com", manager.Email)
	require.Nil(t, manager.LeaderID)
	require.NotEqual(t, "Secret#123", store.users[manager.ID].Password)

	t.Run(`duplicate email`, func(t *testing.T) {
		_, err := handler.Register(newUser("Мария 2", "manager@example.com"))
		require.True(t, apperrors.IsConflict(err))
	})

	t.Run(`validation`, func(t *testing.T) {
		_, err := handler.Register(userapimodels.CreateUser{Name: "", Email: "bad", Password: "short"})
		fields, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		require.Contains(t, fields, "name")
		require.Contains(t, fields, "email")
		require.Contains(t, fields, "password")
	})

	leader, err := handler.CreateTeamLeader(manager.ID, newUser("Тимур", "leader@example.com"))
	require.Nil(t, err)
	require.Equal(t, models.TeamLeaderRole, leader.Role)
	require.Equal(t, manager.ID, *leader.LeaderID)

	helpDesk, err := handler.CreateHelpDesk(manager.ID, newUser("Хельга", "hd@example.com"))
	require.Nil(t, err)
	require.Equal(t, models.HelpDeskRole, helpDesk.Role)

	t.Run(`create team leader by non manager`, func(t *testing.T) {
		_, err := handler.CreateTeamLeader(leader.ID, newUser("Другой", "other@example.com"))
		require.True(t, apperrors.IsForbidden(err))
		_, err = handler.CreateTeamLeader(helpDesk.ID, newUser("Другой", "other@example.com"))
		require.True(t, apperrors.IsForbidden(err))
		exist, _ := store.ExistByEmail("other@example.com")
		require.False(t, exist)
	})

	t.Run(`unknown actor`, func(t *testing.T) {
		_, err := handler.CreateTeamLeader(uuid.NewString(), newUser("Другой", "other@example.com"))
		require.True(t, apperrors.IsNotFound(err))
	})

	employee, err := handler.CreateEmployee(leader.ID, newUser("Елена", "employee@example.com"))
	require.Nil(t, err)
	require.Equal(t, leader.ID, *employee.LeaderID)

	t.Run(`create employee by manager`, func(t *testing.T) {
		_, err := handler.CreateEmployee(manager.ID, newUser("Другой", "other@example.com"))
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`lists`, func(t *testing.T) {
		leaders, err := handler.ListTeamLeaders(manager.ID)
		require.Nil(t, err)
		require.Len(t, leaders, 1)
		require.Equal(t, leader.ID, leaders[0].ID)

		employees, err := handler.ListEmployees(leader.ID)
		require.Nil(t, err)
		require.Len(t, employees, 1)
		require.Equal(t, employee.ID, employees[0].ID)

		_, err = handler.ListEmployees(manager.ID)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`authenticate`, func(t *testing.T) {
		user, err := handler.Authenticate(" EMPLOYEE@example.com ", "Secret#123")
		require.Nil(t, err)
		require.Equal(t, employee.ID, user.ID)

		_, err = handler.Authenticate("employee@example.com", "wrong")
		require.True(t, apperrors.IsUnauthorized(err))
		_, err = handler.Authenticate("nobody@example.com", "Secret#123")
		require.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run(`delete`, func(t *testing.T) {
		err := handler.Delete(leader.ID, employee.ID)
		require.True(t, apperrors.IsForbidden(err))

		err = handler.Delete(manager.ID, manager.ID)
		require.True(t, apperrors.IsForbidden(err))

		store.authored[employee.ID] = 1
		err = handler.Delete(manager.ID, employee.ID)
		require.True(t, apperrors.IsConflict(err))

		err = handler.Delete(manager.ID, leader.ID)
		require.Nil(t, err)
		require.Nil(t, store.users[employee.ID].LeaderID)

		_, err = handler.GetByID(leader.ID)
		require.True(t, apperrors.IsNotFound(err))
		err = handler.Delete(manager.ID, leader.ID)
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestPasswordIsHashed(t *testing.T) {
	initTestConfig()
	store := newFakeStore()
	handler := NewInstance(store)
	user, err := handler.Register(newUser("Мария", "m@example.com"))
	require.Nil(t, err)
	require.True(t, authutils.CheckPassword(store.users[user.ID].Password, "Secret#123"))
}
