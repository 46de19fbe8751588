package models

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrInvalidEmail is returned by AuthData.Validate for a malformed email.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidPassword is returned when the password lacks a letter or a digit.
	ErrInvalidPassword = errors.New("password must contain at least one letter and one digit")
)

// AuthorizationStatus describes what the client knows about the session.
type AuthorizationStatus int

const (
	// Unknown is the state before the authorization probe resolves.
	Unknown AuthorizationStatus = iota
	// Authorized means the server accepted the stored token.
	Authorized
	// NotAuthorized means the client is anonymous.
	NotAuthorized
)

func (s AuthorizationStatus) String() string {
	switch s {
	case Unknown:
		return "UNKNOWN"
	case Authorized:
		return "AUTH"
	case NotAuthorized:
		return "NO_AUTH"
	default:
		return "INVALID"
	}
}

// AuthData holds login credentials.
type AuthData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the login form rules.
func (d AuthData) Validate() error {
	at := strings.Index(d.Email, "@")
	if at <= 0 || at == len(d.Email)-1 {
		return ErrInvalidEmail
	}
	var letter, digit bool
	for _, r := range d.Password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrInvalidPassword
	}
	return nil
}

// UserData is the body returned by GET /login and POST /login.
type UserData struct {
	Email     string `json:"email"`
	Token     string `json:"token"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}
