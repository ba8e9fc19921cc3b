package entities

import (
	"time"
)

// Result is the outcome of a single check
type Result string

// Check results
const (
	ResultPending Result = "pending"
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Status is the lifecycle state of a check session
type Status string

// Session statuses
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid session status
var Statuses = []Status{StatusActive, StatusCompleted, StatusArchived}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// CheckItem is one resolvable skill check for a (player, event) pair.
// Player and event fields are snapshots taken when the session was created.
type CheckItem struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	EventID    string `json:"eventId"`
	EventName  string `json:"eventName"`
	Skill      string `json:"skill"`
	Modifier   int    `json:"modifier"`
	Difficulty int    `json:"difficulty"`

	// At most one of DiceRoll and CustomValue is set
	DiceRoll    *int `json:"diceRoll,omitempty"`
	CustomValue *int `json:"customValue,omitempty"`

	CustomBonus  *int `json:"customBonus,omitempty"`
	Advantage    bool `json:"advantage,omitempty"`
	Disadvantage bool `json:"disadvantage,omitempty"`

	Total  *int   `json:"total,omitempty"`
	Result Result `json:"result"`
}

// HasValue reports whether the item has a die roll or a custom value
func (i *CheckItem) HasValue() bool {
	return i.DiceRoll != nil || i.CustomValue != nil
}

// IsPending reports whether the item still needs a roll
func (i *CheckItem) IsPending() bool {
	return i.Result == ResultPending || !i.HasValue()
}

// Clone returns a deep copy of the item
func (i *CheckItem) Clone() *CheckItem {
	if i == nil {
		return nil
	}
	c := *i
	c.DiceRoll = cloneInt(i.DiceRoll)
	c.CustomValue = cloneInt(i.CustomValue)
	c.CustomBonus = cloneInt(i.CustomBonus)
	c.Total = cloneInt(i.Total)
	return &c
}

// CheckSession is a batch of checks built from a player set x event set.
// The session owns its items.
type CheckSession struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Items       []*CheckItem `json:"items"`
	CreatedAt   time.Time    `json:"createdAt"`
	Status      Status       `json:"status"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// Item returns the item with the given id, or nil
func (s *CheckSession) Item(id string) *CheckItem {
	for _, item := range s.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Normalize fills defaults for records written by older versions: a missing
// status becomes completed when completedAt is present and active otherwise,
// and a missing item result becomes pending. Null items are dropped.
func (s *CheckSession) Normalize() {
	items := make([]*CheckItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item != nil {
			items = append(items, item)
		}
	}
	s.Items = items
	if !s.Status.Valid() {
		if s.CompletedAt != nil {
			s.Status = StatusCompleted
		} else {
			s.Status = StatusActive
		}
	}
	for _, item := range s.Items {
		if item.Result == "" {
			item.Result = ResultPending
		}
	}
}

// Clone returns a deep copy of the session
func (s *CheckSession) Clone() *CheckSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = make([]*CheckItem, len(s.Items))
	for i, item := range s.Items {
		c.Items[i] = item.Clone()
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
