package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last+tag@example.org"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a b@c.d", "@b.co", "a@.co x"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestParsePatch(t *testing.T) {
	t.Run("boolean read", func(t *testing.T) {
		p, err := ParsePatch(map[string]any{"read": true})
		require.NoError(t, err)
		require.NotNil(t, p.Read)
		assert.True(t, *p.Read)
		assert.Equal(t, map[string]any{"read": true}, p.Fields())
	})

	t.Run("non-boolean read", func(t *testing.T) {
		for _, v := range []any{"true", 1.0, nil} {
			_, err := ParsePatch(map[string]any{"read": v})
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, `Invalid "read" status provided.`, ve.Message)
		}
	})

	t.Run("string fields are trimmed", func(t *testing.T) {
		p, err := ParsePatch(map[string]any{"subject": "  hi  "})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"subject": "hi"}, p.Fields())
	})

	t.Run("wrong string type", func(t *testing.T) {
		_, err := ParsePatch(map[string]any{"name": 42.0})
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestPatchValidate(t *testing.T) {
	empty, bad := "", "nope"
	assert.Error(t, Patch{}.Validate())
	assert.Error(t, Patch{Name: &empty}.Validate())
	assert.Error(t, Patch{Email: &bad}.Validate())
	assert.Error(t, Patch{Message: &empty}.Validate())
	assert.NoError(t, Patch{Subject: &empty}.Validate())
}

func TestFromDocument(t *testing.T) {
	m := FromDocument(docstore.Document{ID: "m1", Fields: map[string]any{
		"name":      "Ada",
		"email":     "ada@example.com",
		"message":   "Hi",
		"read":      true,
		"createdAt": "2024-05-01T09:00:00.000Z",
		"extra":     "ignored",
	}})
	assert.Equal(t, Message{
		ID:        "m1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hi",
		Read:      true,
		CreatedAt: "2024-05-01T09:00:00.000Z",
	}, m)
	assert.Equal(t, "m1", m.EntityID())
}

func TestUnread(t *testing.T) {
	assert.Equal(t, 2, Unread([]Message{{Read: false}, {Read: true}, {}}))
	assert.Equal(t, 0, Unread(nil))
}
