package userapimodels

import (
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	nameMaxLen        = 150
	passwordMinLength = 8
)

// CreateUser - данные для регистрации или создания сотрудника
type CreateUser struct {
	Name     string `json:"name"`     // Имя
	Email    string `json:"email"`    // Email, он же логин
	Password string `json:"password"` // Пароль
}

func (r CreateUser) Validate() error {
	vErr := apperrors.ValidationError{}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		vErr["name"] = "не указано имя"
	} else if utf8.RuneCountInString(name) > nameMaxLen {
		vErr["name"] = "имя должно быть не длиннее 150 символов"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		vErr["email"] = "почта имеет неправильный формат"
	}
	if msg := CheckPasswordPolicy(r.Password); msg != "" {
		vErr["password"] = msg
	}
	return vErr.OrNil()
}

// CheckPasswordPolicy возвращает описание нарушения или пустую строку
func CheckPasswordPolicy(password string) string {
	if utf8.RuneCountInString(password) < passwordMinLength {
		return "пароль должен содержать не менее 8 символов"
	}
	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasDigit || !hasLower || !hasUpper || !hasSpecial {
		return "пароль должен содержать цифру, строчную и заглавную буквы и спецсимвол"
	}
	return ""
}

type UserView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	RoleName string          `json:"role_name"`           // Название роли
	LeaderID *string         `json:"leader_id,omitempty"` // Руководитель
}
