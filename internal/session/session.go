// Package session implements the login gate in front of the todo list.
//
// Login only checks that both fields were filled in. Nothing is sent
// anywhere and no credentials are kept.
package session

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Greeting is shown under the username once logged in.
const Greeting = "Have a productive day!"

// ForgotPasswordMessage is the reply to the forgot-password link.
const ForgotPasswordMessage = "You didn't forget your password."

// ErrCredentialsRequired is returned when email or password is blank.
var ErrCredentialsRequired = errors.New("Please enter both email and password")

// Session is a logged-in user.
type Session struct {
	ID        string
	Email     string
	StartedAt time.Time
}

// Login opens a session for email. The password is only checked for presence.
func Login(email, password string) (*Session, error) {
	return LoginWithID("", email, password)
}

// LoginWithID is Login with a caller-chosen session id, so the session
// matches the id already on the caller's log records. An empty id gets a new one.
func LoginWithID(id, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrCredentialsRequired
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		Email:     email,
		StartedAt: time.Now(),
	}, nil
}

// Username is the part of the email before "@".
func (s *Session) Username() string {
	return Username(s.Email)
}

// Initial is the avatar letter.
func (s *Session) Initial() string {
	return Initial(Username(s.Email))
}

// Username returns the local part of an email address.
func Username(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// Initial returns the upper-cased first letter of name, or "?".
func Initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
