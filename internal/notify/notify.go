// Package notify carries user-facing notifications from the dashboard core
// to whatever presents them.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds a notification with a fresh id. Unknown severities fall back
// to info.
func New(severity Severity, title, message string) Notification {
	switch severity {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
	default:
		severity = SeverityInfo
	}
	return Notification{
		ID:        uuid.NewString(),
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Notifier presents notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(n Notification) {
		for _, nt := range notifiers {
			if nt != nil {
				nt.Notify(n)
			}
		}
	})
}
