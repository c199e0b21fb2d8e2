// models/user.go
package models

import (
	"errors"
	"net/mail"
	"time"
	"unicode/utf8"

	"go.uber.org/multierr"
)

type User struct {
	ID              int64      `json:"user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"` // bcrypt hash
	FullName        string     `json:"full_name"`
	AvatarURL       *string    `json:"avatar_url"`
	DefaultCurrency Currency   `json:"default_currency"`
	Timezone        string     `json:"timezone"`
	Language        string     `json:"language"`
	Theme           string     `json:"theme"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login"`
}

// PublicUser login/register cevaplarında dönen kısa kullanıcı bilgisi.
type PublicUser struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{UserID: u.ID, Username: u.Username, Email: u.Email}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (r RegisterRequest) Validate() error {
	var err error
	if n := len([]rune(r.Username)); n < 3 || n > 50 {
		err = multierr.Append(err, errors.New("username must be between 3 and 50 characters"))
	}
	if r.Email != "" {
		// "Ada <a@b.c>" gibi görünen isimli adresler kabul edilmez.
		if addr, perr := mail.ParseAddress(r.Email); perr != nil || addr.Address != r.Email {
			err = multierr.Append(err, errors.New("invalid email"))
		}
	}
	if tooLong(r.Email, 100) {
		err = multierr.Append(err, errors.New("email must be at most 100 characters"))
	}
	if len(r.Password) < 6 {
		err = multierr.Append(err, errors.New("password must be at least 6 characters"))
	}
	if tooLong(r.FullName, 100) {
		err = multierr.Append(err, errors.New("full_name must be at most 100 characters"))
	}
	return err
}

// tooLong VARCHAR sınırlarıyla aynı şekilde karakter sayar.
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var err error
	if r.Email == "" {
		err = multierr.Append(err, errors.New("email is required"))
	}
	if r.Password == "" {
		err = multierr.Append(err, errors.New("password is required"))
	}
	return err
}

// ProfileUpdate nil alanlar değiştirilmez.
type ProfileUpdate struct {
	FullName        *string   `json:"full_name"`
	AvatarURL       *string   `json:"avatar_url"`
	DefaultCurrency *Currency `json:"default_currency"`
	Timezone        *string   `json:"timezone"`
	Language        *string   `json:"language"`
	Theme           *string   `json:"theme"`
}

func (p ProfileUpdate) Validate() error {
	var err error
	if p.DefaultCurrency != nil && !p.DefaultCurrency.Valid() {
		err = multierr.Append(err, errors.New("unsupported default_currency"))
	}
	if p.Theme != nil {
		switch *p.Theme {
		case "light", "dark", "auto":
		default:
			err = multierr.Append(err, errors.New("theme must be light, dark or auto"))
		}
	}
	if p.FullName != nil && tooLong(*p.FullName, 100) {
		err = multierr.Append(err, errors.New("full_name must be at most 100 characters"))
	}
	if p.AvatarURL != nil && tooLong(*p.AvatarURL, 255) {
		err = multierr.Append(err, errors.New("avatar_url must be at most 255 characters"))
	}
	if p.Language != nil && tooLong(*p.Language, 10) {
		err = multierr.Append(err, errors.New("language must be at most 10 characters"))
	}
	if p.Timezone != nil && tooLong(*p.Timezone, 50) {
		err = multierr.Append(err, errors.New("timezone must be at most 50 characters"))
	}
	if p.Timezone != nil && *p.Timezone != "" {
		if _, lerr := time.LoadLocation(*p.Timezone); lerr != nil {
			err = multierr.Append(err, errors.New("unknown timezone"))
		}
	}
	return err
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r PasswordChangeRequest) Validate() error {
	var err error
	if r.CurrentPassword == "" {
		err = multierr.Append(err, errors.New("current_password is required"))
	}
	if len(r.NewPassword) < 6 {
		err = multierr.Append(err, errors.New("new_password must be at least 6 characters"))
	}
	return err
}
