package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSON means the reply contained no brace-delimited block at all.
	ErrNoJSON = errors.New("no JSON block found in reply")
	// ErrMalformedJSON means a block was found but did not decode into a Record.
	ErrMalformedJSON = errors.New("reply JSON does not match the diary record shape")
)

// ExtractJSON isolates the embedded JSON object from a free-form model
// reply by taking everything from the first '{' to the last '}'. The
// prompt asks for exactly one JSON object; a stray '}' inside a string
// value defeats this, which is an accepted limitation of the heuristic.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return "", ErrNoJSON
	}
	return raw[start : end+1], nil
}

// ParseRecord extracts and decodes the diary record embedded in raw.
func ParseRecord(raw string) (Record, error) {
	block, err := ExtractJSON(raw)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(block), &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return rec, nil
}

// ParseRecordStrict is the validated alternative to ParseRecord. Instead of
// the greedy first-to-last-brace slice it decodes each balanced object in
// raw on its own and returns the first one that looks like a diary record
// (title and text present, mood in range). Input the greedy heuristic would
// mangle, such as two objects with prose between them, still parses here.
func ParseRecordStrict(raw string) (Record, error) {
	sawBlock := false
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		sawBlock = true
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		if rec.Title == "" || rec.Text == "" || rec.Mood < 1 || rec.Mood > 5 {
			continue
		}
		return rec, nil
	}
	if !sawBlock {
		return Record{}, ErrNoJSON
	}
	return Record{}, ErrMalformedJSON
}
