package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	nameMinLength     = 2
	nameMaxLength     = 30
	passwordMinLength = 8
	passwordMaxLength = 128
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z]+$`)
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// User represents an authenticated identity in the platform.
type User struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the profile fields before they are persisted.
func (u *User) Validate() error {
	if u == nil {
		return ErrInvalidPayload
	}
	if u.FirstName == "" || u.LastName == "" || u.Email == "" {
		return Invalid("all fields are required")
	}
	if err := validateName("first name", u.FirstName); err != nil {
		return err
	}
	if err := validateName("last name", u.LastName); err != nil {
		return err
	}
	if !emailPattern.MatchString(u.Email) {
		return Invalid("invalid email address")
	}
	if u.ProfilePictureURL != "" {
		parsed, err := url.Parse(u.ProfilePictureURL)
		if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return Invalid("profile picture URL must be an absolute http(s) URL")
		}
	}
	return nil
}

func validateName(field, value string) error {
	switch {
	case len(value) < nameMinLength:
		return Invalid("%s should be at least %d characters long", field, nameMinLength)
	case len(value) > nameMaxLength:
		return Invalid("%s should be at most %d characters long", field, nameMaxLength)
	case !namePattern.MatchString(value):
		return Invalid("%s should contain only alphabets", field)
	}
	return nil
}

// ValidatePassword enforces the registration password bounds.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return Invalid("password should be at least %d characters long", passwordMinLength)
	}
	if len(password) > passwordMaxLength {
		return Invalid("password should be at most %d characters long", passwordMaxLength)
	}
	return nil
}

// UserPatch is a sparse profile update. Nil fields are left untouched,
// non-nil fields are written even when empty.
type UserPatch struct {
	FirstName         *string
	LastName          *string
	Email             *string
	ProfilePictureURL *string
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.ProfilePictureURL == nil
}

// Normalize trims names and lower-cases the email in place.
func (p *UserPatch) Normalize() {
	trim(p.FirstName)
	trim(p.LastName)
	trim(p.ProfilePictureURL)
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		p.Email = &normalized
	}
}

// Apply writes the patch onto a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.ProfilePictureURL != nil {
		u.ProfilePictureURL = *p.ProfilePictureURL
	}
	return u
}

func trim(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
