package domain

import "strings"

// DefaultRating: рейтинг нового пользователя
const DefaultRating = 4.9

// User: сессия пользователя. Сериализуется в локальное хранилище как есть.
type User struct {
	Phone  string  `json:"phone"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Rating float64 `json:"rating"`
	Trips  int     `json:"trips"`
}

// AuthMode: вход или регистрация
type AuthMode string

const (
	AuthSignIn AuthMode = "signin"
	AuthSignUp AuthMode = "signup"
)

func (m AuthMode) Toggle() AuthMode {
	if m == AuthSignUp {
		return AuthSignIn
	}
	return AuthSignUp
}

// AuthForm: то, что пользователь ввел в форму входа
type AuthForm struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Normalize обрезает пробелы во всех полях
func (f AuthForm) Normalize() AuthForm {
	return AuthForm{
		Phone: strings.TrimSpace(f.Phone),
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
	}
}

// Validate проверяет форму для выбранного режима
func (f AuthForm) Validate(mode AuthMode) error {
	if f.Phone == "" {
		return ErrPhoneRequired
	}
	if mode == AuthSignUp && (f.Name == "" || f.Email == "") {
		return ErrFieldsRequired
	}
	return nil
}
