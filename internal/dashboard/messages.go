package dashboard

import (
	"context"
	"errors"
	"strings"

	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
)

// Message read filters.
const (
	FilterAll    = "all"
	FilterRead   = "read"
	FilterUnread = "unread"
)

// Messages is the inbox screen.
type Messages struct {
	*Controller[msgdomain.Message]
}

func NewMessages(res Resource[msgdomain.Message], notify Notifier) *Messages {
	return &Messages{Controller: newController[msgdomain.Message](res, matchMessage, notify, Labels{
		DeletedTitle: "Message Deleted",
		DeletedBody:  "The message has been removed.",
		DeleteFailed: "Failed to delete message.",
	})}
}

// Open shows id in the detail view. An unread message is marked read
// optimistically; if that fails it goes back to unread and the admin is told,
// but the detail view opens either way.
func (m *Messages) Open(ctx context.Context, id string) (msgdomain.Message, error) {
	if err := m.Select(id); err != nil {
		return msgdomain.Message{}, err
	}

	current, _ := m.find(id)
	if current.Read {
		return current, nil
	}

	msg, err := m.mutate(ctx, id, setRead(true), readFields)
	if err != nil {
		if !errors.Is(err, ErrClosed) && !errors.Is(err, ErrBusy) {
			m.notify.Notify(Failure("Failed to mark as read.", err))
		}
		return current, err
	}
	return msg, nil
}

// ToggleRead flips the read flag of id.
func (m *Messages) ToggleRead(ctx context.Context, id string) error {
	current, ok := m.find(id)
	if !ok {
		return ErrUnknownEntity
	}
	next := !current.Read

	_, err := m.mutate(ctx, id, setRead(next), readFields)
	switch {
	case errors.Is(err, ErrClosed) || errors.Is(err, ErrBusy):
		return err
	case err != nil:
		m.notify.Notify(Failure("Failed to mark as "+readWord(next)+".", err))
		return err
	}
	title := "Message Marked as Unread"
	if next {
		title = "Message Marked as Read"
	}
	m.notify.Notify(Success(title, ""))
	return nil
}

// UnreadCount counts unread messages across the whole list.
func (m *Messages) UnreadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return msgdomain.Unread(m.items)
}

func (m *Messages) find(id string) (msgdomain.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.items[i], true
	}
	return msgdomain.Message{}, false
}

func setRead(v bool) func(msgdomain.Message) msgdomain.Message {
	return func(m msgdomain.Message) msgdomain.Message {
		m.Read = v
		return m
	}
}

func readFields(m msgdomain.Message) map[string]any {
	return map[string]any{"read": m.Read}
}

func readWord(read bool) string {
	if read {
		return "read"
	}
	return "unread"
}

func matchMessage(m msgdomain.Message, term, filter string) bool {
	switch filter {
	case FilterRead:
		if !m.Read {
			return false
		}
	case FilterUnread:
		if m.Read {
			return false
		}
	}
	return containsFold(term, m.Name, m.Email, m.Subject, m.Message)
}

func containsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
