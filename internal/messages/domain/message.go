package domain

import (
	"regexp"
	"strings"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	"github.com/portfolio-hub/portfolio-backend/internal/resource"
)

// Collection is the store collection holding contact messages.
const Collection = "messages"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is a contact-form submission.
type Message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (m Message) EntityID() string { return m.ID }

// FromDocument decodes a stored message. Unknown fields are ignored.
func FromDocument(d docstore.Document) Message {
	return Message{
		ID:        d.ID,
		Name:      resource.String(d.Fields, "name"),
		Email:     resource.String(d.Fields, "email"),
		Subject:   resource.String(d.Fields, "subject"),
		Message:   resource.String(d.Fields, "message"),
		Read:      resource.Bool(d.Fields, "read"),
		CreatedAt: resource.String(d.Fields, resource.FieldCreatedAt),
		UpdatedAt: resource.String(d.Fields, resource.FieldUpdatedAt),
	}
}

// CreateRequest is the body of a contact submission.
type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalize trims every field.
func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r CreateRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return apperr.Invalid("", "Name, email, and message are required.")
	}
	if !ValidEmail(r.Email) {
		return apperr.Invalid("email", "Invalid email format.")
	}
	return nil
}

// Fields is the document written for a new message. New messages start unread.
func (r CreateRequest) Fields() map[string]any {
	f := map[string]any{
		"name":    r.Name,
		"email":   r.Email,
		"message": r.Message,
		"read":    false,
	}
	if r.Subject != "" {
		f["subject"] = r.Subject
	}
	return f
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Read    *bool   `json:"read,omitempty"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
}

// ParsePatch builds a Patch from a decoded JSON object, rejecting values of the
// wrong type.
func ParsePatch(raw map[string]any) (Patch, error) {
	var p Patch

	if v, ok := raw["read"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return Patch{}, apperr.Invalid("", `Invalid "read" status provided.`)
		}
		p.Read = &b
	}

	for _, f := range []struct {
		key string
		dst **string
	}{
		{"name", &p.Name},
		{"email", &p.Email},
		{"subject", &p.Subject},
		{"message", &p.Message},
	} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return Patch{}, apperr.Invalid(f.key, "must be a string")
		}
		s = strings.TrimSpace(s)
		*f.dst = &s
	}
	return p, nil
}

func (p Patch) Validate() error {
	if p.Read == nil && p.Name == nil && p.Email == nil && p.Subject == nil && p.Message == nil {
		return apperr.Invalid("", "No fields to update.")
	}
	if p.Name != nil && *p.Name == "" {
		return apperr.Invalid("name", "Name cannot be empty.")
	}
	if p.Message != nil && *p.Message == "" {
		return apperr.Invalid("message", "Message cannot be empty.")
	}
	if p.Email != nil {
		if *p.Email == "" {
			return apperr.Invalid("email", "Email cannot be empty.")
		}
		if !ValidEmail(*p.Email) {
			return apperr.Invalid("email", "Invalid email format.")
		}
	}
	return nil
}

// Fields holds only the supplied attributes.
func (p Patch) Fields() map[string]any {
	f := map[string]any{}
	if p.Read != nil {
		f["read"] = *p.Read
	}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Email != nil {
		f["email"] = *p.Email
	}
	if p.Subject != nil {
		f["subject"] = *p.Subject
	}
	if p.Message != nil {
		f["message"] = *p.Message
	}
	return f
}

// Unread counts messages not yet read.
func Unread(items []Message) int {
	n := 0
	for _, m := range items {
		if !m.Read {
			n++
		}
	}
	return n
}
