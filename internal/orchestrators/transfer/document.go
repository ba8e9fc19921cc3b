package transfer

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// Version is written to every export and required on import
const Version = "1.0"

// ContentType is the only media type accepted for import
const ContentType = "application/json"

// exportDateLayout matches a JavaScript Date.toISOString timestamp
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// document is the export file layout. Collections are raw so an exported
// empty collection is written as [] instead of being dropped.
type document struct {
	Players        json.RawMessage `json:"players,omitempty"`
	Events         json.RawMessage `json:"events,omitempty"`
	SessionHistory json.RawMessage `json:"sessionHistory,omitempty"`
	ExportDate     json.RawMessage `json:"exportDate,omitempty"`
	Version        json.RawMessage `json:"version,omitempty"`
	Type           json.RawMessage `json:"type,omitempty"`
}

func newDocument(scope Scope, exported time.Time) (*document, error) {
	date, err := json.Marshal(exported.UTC().Format(exportDateLayout))
	if err != nil {
		return nil, err
	}
	version, err := json.Marshal(Version)
	if err != nil {
		return nil, err
	}
	typ, err := json.Marshal(string(scope))
	if err != nil {
		return nil, err
	}
	return &document{ExportDate: date, Version: version, Type: typ}, nil
}

// record is one element of an imported collection, decoded only far enough
// to check its shape
type record map[string]json.RawMessage

func (r record) nonEmptyString(key string) bool {
	var s string
	if err := json.Unmarshal(r[key], &s); err != nil {
		return false
	}
	return s != ""
}

func (r record) objectOrNull(key string) bool {
	raw := bytes.TrimSpace(r[key])
	return bytes.HasPrefix(raw, []byte("{")) || isNull(raw)
}

func (r record) number(key string) bool {
	raw := bytes.TrimSpace(r[key])
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

func (r record) array(key string) bool {
	return isArray(r[key])
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

// truthy reports whether a field is present with a value other than null,
// false, 0 or ""
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return true
}

// elements splits a raw collection into its records. ok is false when the
// collection is absent or not an array.
func elements(raw json.RawMessage) (records []json.RawMessage, ok bool) {
	if !isArray(raw) {
		return nil, false
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

func decodeRecord(raw json.RawMessage) (record, bool) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil || r == nil {
		return nil, false
	}
	return r, true
}

// validPlayers keeps players that have an id, a name and a skills object
func validPlayers(raw json.RawMessage) (players []*entities.Player, skipped int, ok bool) {
	records, ok := elements(raw)
	if !ok {
		return nil, 0, false
	}

	players = make([]*entities.Player, 0, len(records))
	for _, el := range records {
		r, isRecord := decodeRecord(el)
		if !isRecord || !r.nonEmptyString("id") || !r.nonEmptyString("name") || !r.objectOrNull("skills") {
			skipped++
			continue
		}
		var p entities.Player
		if err := json.Unmarshal(el, &p); err != nil {
			skipped++
			continue
		}
		if p.Skills == nil {
			p.Skills = map[string]int{}
		}
		players = append(players, &p)
	}
	return players, skipped, true
}

// validEvents keeps events that have an id, a name, a skill and a numeric
// difficulty
func validEvents(raw json.RawMessage) (events []*entities.SkillCheckEvent, skipped int, ok bool) {
	records, ok := elements(raw)
	if !ok {
		return nil, 0, false
	}

	events = make([]*entities.SkillCheckEvent, 0, len(records))
	for _, el := range records {
		r, isRecord := decodeRecord(el)
		if !isRecord || !r.nonEmptyString("id") || !r.nonEmptyString("name") ||
			!r.nonEmptyString("skill") || !r.number("difficulty") {
			skipped++
			continue
		}
		var e entities.SkillCheckEvent
		if err := json.Unmarshal(el, &e); err != nil {
			skipped++
			continue
		}
		events = append(events, &e)
	}
	return events, skipped, true
}

// validSessions keeps sessions that have an id, a name and an items array.
// Dates are decoded from their textual form; a record whose dates do not
// parse is dropped.
func validSessions(raw json.RawMessage) (sessions []*entities.CheckSession, skipped int, ok bool) {
	records, ok := elements(raw)
	if !ok {
		return nil, 0, false
	}

	sessions = make([]*entities.CheckSession, 0, len(records))
	for _, el := range records {
		r, isRecord := decodeRecord(el)
		if !isRecord || !r.nonEmptyString("id") || !r.nonEmptyString("name") || !r.array("items") {
			skipped++
			continue
		}
		var s entities.CheckSession
		if err := json.Unmarshal(el, &s); err != nil {
			skipped++
			continue
		}
		s.Normalize()
		sessions = append(sessions, &s)
	}
	return sessions, skipped, true
}
