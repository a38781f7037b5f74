package library

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UnmarshalJSON accepts year and rating either as numbers or as numeric
// strings, so form posts sending "rating":"4" are treated like 4.
func (b *NewBook) UnmarshalJSON(data []byte) error {
	type plain NewBook
	var aux struct {
		*plain
		Year   json.RawMessage `json:"year"`
		Rating json.RawMessage `json:"rating"`
	}
	aux.plain = (*plain)(b)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if b.Year, err = looseInt("year", aux.Year); err != nil {
		return err
	}
	if b.Rating, err = looseInt("rating", aux.Rating); err != nil {
		return err
	}
	return nil
}

// UnmarshalJSON accepts rating as a number or a numeric string.
func (u *BookUpdate) UnmarshalJSON(data []byte) error {
	type plain BookUpdate
	var aux struct {
		*plain
		Rating json.RawMessage `json:"rating"`
	}
	aux.plain = (*plain)(u)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	u.Rating, err = looseInt("rating", aux.Rating)
	return err
}

// looseInt decodes an optional integer given as a JSON number or a string.
// Absent, null and blank values are nil.
func looseInt(field string, raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, invalid(field, "must be a whole number")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, invalid(field, "must be a whole number")
	}
	return &v, nil
}
