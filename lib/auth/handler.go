package authhandler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"mail-approval-backend/lib/rbac"
	tokenblacklist "mail-approval-backend/lib/token-blacklist"
	usershandler "mail-approval-backend/lib/users"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	authutils "mail-approval-backend/lib/utils/auth-utils"
	initchecker "mail-approval-backend/lib/utils/init-checker"
	"mail-approval-backend/models"
	authapimodels "mail-approval-backend/models/api/auth"
	userapimodels "mail-approval-backend/models/api/user"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	Register(request userapimodels.CreateUser) (authapimodels.AuthResponse, error)
	Login(request authapimodels.LoginRequest) (authapimodels.AuthResponse, error)
	RefreshToken(ctx context.Context, request authapimodels.JWTRefreshRequest) (authapimodels.JWTResponse, error)
	Me(userID string) (authapimodels.MeView, error)
	Logout(ctx context.Context, claims jwt.MapClaims) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"usershandler.Instance", usershandler.Instance,
		"tokenblacklist.Instance", tokenblacklist.Instance,
		"rbac.Instance", rbac.Instance,
	)
	Instance = NewInstance(usershandler.Instance, tokenblacklist.Instance, rbac.Instance, time.Now)
}

func NewInstance(users usershandler.Provider, blacklist tokenblacklist.Provider, rbacProvider rbac.Provider, now func() time.Time) Provider {
	return impl{
		users:     users,
		blacklist: blacklist,
		rbac:      rbacProvider,
		now:       now,
	}
}

type impl struct {
	users     usershandler.Provider
	blacklist tokenblacklist.Provider
	rbac      rbac.Provider
	now       func() time.Time
}

func (i impl) Register(request userapimodels.CreateUser) (authapimodels.AuthResponse, error) {
	user, err := i.users.Register(request)
	if err != nil {
		return authapimodels.AuthResponse{}, err
	}
	tokens, err := i.issue(user.ID, user.Name, user.Role)
	if err != nil {
		return authapimodels.AuthResponse{}, err
	}
	return authapimodels.AuthResponse{JWTResponse: tokens, User: user}, nil
}

func (i impl) Login(request authapimodels.LoginRequest) (authapimodels.AuthResponse, error) {
	if err := request.Validate(); err != nil {
		return authapimodels.AuthResponse{}, err
	}
	user, err := i.users.Authenticate(request.Email, request.Password)
	if err != nil {
		return authapimodels.AuthResponse{}, err
	}
	tokens, err := i.issue(user.ID, user.Name, user.Role)
	if err != nil {
		return authapimodels.AuthResponse{}, err
	}
	log.WithField("user_id", user.ID).Info("пользователь вошел в систему")
	return authapimodels.AuthResponse{JWTResponse: tokens, User: user.ToModel()}, nil
}

// RefreshToken выдает новую пару токенов, предъявленный refresh-токен отзывается
func (i impl) RefreshToken(ctx context.Context, request authapimodels.JWTRefreshRequest) (authapimodels.JWTResponse, error) {
	if err := request.Validate(); err != nil {
		return authapimodels.JWTResponse{}, apperrors.ValidationError{"refresh_token": err.Error()}
	}
	claims, err := authutils.ParseToken(request.RefreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if authutils.GetTokenType(claims) != authutils.TokenTypeRefresh {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("ожидается refresh token")
	}
	claimed, err := i.blacklist.RevokeIfAbsent(ctx, authutils.GetTokenID(claims), authutils.GetExpiresAt(claims).Sub(i.now()))
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка отзыва refresh токена")
	}
	if !claimed {
		return authapimodels.JWTResponse{}, apperrors.Unauthorized("токен отозван")
	}
	user, err := i.users.GetActor(authutils.GetUserID(claims))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return authapimodels.JWTResponse{}, apperrors.Unauthorized("пользователь не найден")
		}
		return authapimodels.JWTResponse{}, err
	}
	return i.issue(user.ID, user.Name, user.Role)
}

func (i impl) Me(userID string) (authapimodels.MeView, error) {
	user, err := i.users.GetActor(userID)
	if err != nil {
		return authapimodels.MeView{}, err
	}
	return authapimodels.MeView{
		User:        user.ToModel(),
		Permissions: i.permissions(user),
	}, nil
}

func (i impl) Logout(ctx context.Context, claims jwt.MapClaims) error {
	if err := i.revoke(ctx, claims); err != nil {
		return err
	}
	log.WithField("user_id", authutils.GetUserID(claims)).Info("пользователь вышел из системы")
	return nil
}

func (i impl) revoke(ctx context.Context, claims jwt.MapClaims) error {
	jti := authutils.GetTokenID(claims)
	if jti == "" {
		return nil
	}
	ttl := authutils.GetExpiresAt(claims).Sub(i.now())
	if ttl <= 0 {
		return nil
	}
	if err := i.blacklist.Revoke(ctx, jti, ttl); err != nil {
		return errors.Wrap(err, "ошибка отзыва токена")
	}
	return nil
}

func (i impl) issue(userID, name string, role models.UserRole) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(userID, name, role)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка создания токена")
	}
	refreshToken, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка создания refresh токена")
	}
	return authapimodels.JWTResponse{Token: token, RefreshToken: refreshToken}, nil
}

func (i impl) permissions(user *dbmodels.User) []string {
	result := []string{}
	if i.rbac == nil {
		return result
	}
	for module, permissions := range i.rbac.GetPermissions(user.Role) {
		for _, permission := range permissions {
			result = append(result, fmt.Sprintf("%v:%v", module, permission))
		}
	}
	sort.Strings(result)
	return result
}
