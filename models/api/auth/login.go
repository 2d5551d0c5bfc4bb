package authapimodels

import (
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"net/mail"
	"strings"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	vErr := apperrors.ValidationError{}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		vErr["email"] = "почта имеет неправильный формат"
	}
	if strings.TrimSpace(r.Password) == "" {
		vErr["password"] = "не указан пароль"
	}
	return vErr.OrNil()
}
