package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() map[string]any {
	return map[string]any{
		"sender":      "IT Service Desk",
		"senderEmail": "servicedesk@corp-it-support.net",
		"subject":     "Mailbox migration",
		"content":     "Body",
		"isPhishing":  true,
		"time":        "09:12 AM",
		"clues":       []any{"clue one", "clue two"},
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	assert.NoError(t, ValidateRecord(validRecord()))
}

func TestValidateRecord_PhishingWithEmptyClues(t *testing.T) {
	r := validRecord()
	r["clues"] = []any{}
	assert.NoError(t, ValidateRecord(r))
}

func TestValidateRecord_MissingFields(t *testing.T) {
	for _, field := range []string{"sender", "senderEmail", "subject", "content", "isPhishing", "time", "clues"} {
		t.Run(field, func(t *testing.T) {
			r := validRecord()
			delete(r, field)

			err := ValidateRecord(r)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, field, schemaErr.Field)
		})
	}
}

func TestValidateRecord_WrongTypes(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"sender", 42.0},
		{"senderEmail", nil},
		{"subject", true},
		{"content", []any{"a"}},
		{"time", map[string]any{}},
		{"isPhishing", "true"},
		{"isPhishing", 1.0},
		{"clues", "not an array"},
		{"clues", nil},
		{"clues", []any{"ok", 3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			r := validRecord()
			r[tt.field] = tt.value
			assert.Error(t, ValidateRecord(r))
		})
	}
}

func TestValidateRecord_Nil(t *testing.T) {
	assert.Error(t, ValidateRecord(nil))
}

func TestDecodeSample(t *testing.T) {
	raw := "```json\n" + `{"sender":"A","senderEmail":"a@b.c","subject":"S","content":"C","isPhishing":false,"time":"t","clues":[],"id":"ignored"}` + "\n```"

	s, err := DecodeSample(raw)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Sender)
	assert.Equal(t, "a@b.c", s.SenderEmail)
	assert.False(t, s.IsPhishing)
	assert.Empty(t, s.ID)
	assert.NotNil(t, s.Clues)
}

func TestDecodeSample_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "sorry, I cannot help with that"},
		{"truncated", `{"sender":"A","senderEmail":`},
		{"array", `[1,2,3]`},
		{"wrong type", `{"sender":"A","senderEmail":"a","subject":"s","content":"c","isPhishing":"yes","time":"t","clues":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSample(tt.raw)
			require.Error(t, err)
			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject("Here you go: {\"a\":{\"b\":1}} hope it helps")
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, got)

	_, ok = ExtractJSONObject("} nothing {")
	assert.False(t, ok)
}
