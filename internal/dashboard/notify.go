package dashboard

import (
	"errors"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard/client"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification is a short message for the admin, shown as a toast.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

func Success(title, message string) Notification {
	return Notification{Level: LevelSuccess, Title: title, Message: message}
}

// Failure builds an error toast. API errors carry their own message; anything
// else falls back to fallback, or a generic text for transport failures.
func Failure(fallback string, err error) Notification {
	msg := fallback
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	case errors.Is(err, client.ErrNetwork):
		msg = "An error occurred."
	}
	return Notification{Level: LevelError, Title: "Error", Message: msg}
}
