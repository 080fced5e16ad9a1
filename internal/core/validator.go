package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaError describes why a decoded record was rejected
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema validation failed: " + e.Reason
	}
	return fmt.Sprintf("schema validation failed: field %q %s", e.Field, e.Reason)
}

var stringFields = []string{"sender", "senderEmail", "subject", "content", "time"}

// ValidateRecord checks a decoded JSON object against the EmailSample shape
func ValidateRecord(record map[string]any) error {
	if record == nil {
		return &SchemaError{Reason: "record is not an object"}
	}

	for _, field := range stringFields {
		v, ok := record[field]
		if !ok {
			return &SchemaError{Field: field, Reason: "is missing"}
		}
		if _, ok := v.(string); !ok {
			return &SchemaError{Field: field, Reason: "must be a string"}
		}
	}

	v, ok := record["isPhishing"]
	if !ok {
		return &SchemaError{Field: "isPhishing", Reason: "is missing"}
	}
	if _, ok := v.(bool); !ok {
		return &SchemaError{Field: "isPhishing", Reason: "must be a boolean"}
	}

	v, ok = record["clues"]
	if !ok {
		return &SchemaError{Field: "clues", Reason: "is missing"}
	}
	clues, ok := v.([]any)
	if !ok {
		return &SchemaError{Field: "clues", Reason: "must be an array"}
	}
	for i, c := range clues {
		if _, ok := c.(string); !ok {
			return &SchemaError{Field: "clues", Reason: fmt.Sprintf("element %d must be a string", i)}
		}
	}

	return nil
}

// DecodeSample parses raw backend text into a validated EmailSample.
// Any decode failure is reported as a schema failure.
func DecodeSample(raw string) (*EmailSample, error) {
	body, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, &SchemaError{Reason: "no JSON object in response"}
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if err := ValidateRecord(record); err != nil {
		return nil, err
	}

	rawClues := record["clues"].([]any)
	clues := make([]string, 0, len(rawClues))
	for _, c := range rawClues {
		clues = append(clues, c.(string))
	}

	return &EmailSample{
		Sender:      record["sender"].(string),
		SenderEmail: record["senderEmail"].(string),
		Subject:     record["subject"].(string),
		Content:     record["content"].(string),
		IsPhishing:  record["isPhishing"].(bool),
		Time:        record["time"].(string),
		Clues:       clues,
	}, nil
}

// ExtractJSONObject strips markdown fences and returns the text between the
// first '{' and the last '}'.
func ExtractJSONObject(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
