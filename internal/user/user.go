package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// User is the profile document kept for every account.
type User struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Quote       string    `json:"quote"`
	Profession  string    `json:"profession"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Defaults seeds the optional profile fields of a new account.
type Defaults struct {
	Quote      string
	Profession string
}

var DefaultProfile = Defaults{
	Quote:      "Life is great",
	Profession: "Android Developer",
}

// DisplayNameFromEmail returns the local part of an email address.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}

type UpdateCommand struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=80"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url,max=2048"`
	Quote       *string `json:"quote" validate:"omitempty,max=280"`
	Profession  *string `json:"profession" validate:"omitempty,max=120"`
}

// Apply copies the set fields onto u and reports whether anything changed.
func (c UpdateCommand) Apply(u *User) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&u.DisplayName, c.DisplayName)
	set(&u.AvatarURL, c.AvatarURL)
	set(&u.Quote, c.Quote)
	set(&u.Profession, c.Profession)
	return changed
}
