package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Score summarizes the recommendation. Total, PlaceScore and Confidence are
// independent 0-100 scalars; no arithmetic relationship is enforced between them.
type Score struct {
	Total      int                    `json:"total"`
	Label      string                 `json:"label"`
	Breakdown  Breakdown              `json:"breakdown"`
	PlaceScore *int                   `json:"place_score,omitempty"`
	Confidence *int                   `json:"confidence,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// BreakdownEntry is one named point contribution toward the score.
type BreakdownEntry struct {
	Category string
	Points   int
}

// Breakdown is an ordered category -> points mapping. It serializes as a JSON
// object whose key order is the display order, so a plain map cannot be used.
type Breakdown []BreakdownEntry

func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", entry.Points)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object with a token stream so that the original
// key order survives the round trip.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("breakdown: expected JSON object, got %v", tok)
	}

	entries := Breakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("breakdown: expected string key, got %v", keyTok)
		}

		var points float64
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("breakdown: value for %q: %w", key, err)
		}
		entries = append(entries, BreakdownEntry{Category: key, Points: int(points)})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = entries
	return nil
}

// Sum returns the total points across all entries.
func (b Breakdown) Sum() int {
	total := 0
	for _, entry := range b {
		total += entry.Points
	}
	return total
}
