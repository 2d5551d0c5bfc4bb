package authapimodels

import (
	"github.com/pkg/errors"
	userapimodels "mail-approval-backend/models/api/user"
	"strings"
)

type JWTResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse - ответ на регистрацию
type AuthResponse struct {
	JWTResponse
	User userapimodels.UserView `json:"user"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if len(strings.TrimSpace(r.RefreshToken)) == 0 {
		return errors.New("refresh token не должен быть пустым")
	}
	return nil
}

type MeView struct {
	User        userapimodels.UserView `json:"user"`
	Permissions []string               `json:"permissions"` // доступные операции
}
