package poolstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mikey/phish-trainer/internal/core"
)

// decodeRecord decodes one stored sample document
func decodeRecord(raw []byte) (core.EmailSample, error) {
	var sample core.EmailSample
	if err := json.Unmarshal(raw, &sample); err != nil {
		return core.EmailSample{}, err
	}
	if sample.Clues == nil {
		sample.Clues = []string{}
	}
	return sample, nil
}

// encodeRecord writes sample as a JSON document without HTML escaping.
// Lines after the first start with prefix.
func encodeRecord(sample core.EmailSample, prefix, indent string) ([]byte, error) {
	if sample.Clues == nil {
		sample.Clues = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(sample); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeRecords returns one document per sample. A sample that still equals
// the stored document at its position keeps that document byte for byte,
// including keys EmailSample does not model.
func encodeRecords(stored []json.RawMessage, samples []core.EmailSample, prefix, indent string) ([][]byte, error) {
	records := make([][]byte, len(samples))
	for i, sample := range samples {
		if i < len(stored) && sameRecord(stored[i], sample) {
			records[i] = stored[i]
			continue
		}

		record, err := encodeRecord(sample, prefix, indent)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sample %s: %w", sample.ID, err)
		}
		records[i] = record
	}
	return records, nil
}

func sameRecord(raw json.RawMessage, sample core.EmailSample) bool {
	existing, err := decodeRecord(raw)
	if err != nil {
		return false
	}
	if sample.Clues == nil {
		sample.Clues = []string{}
	}
	return reflect.DeepEqual(existing, sample)
}
