package dataset

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/kvstore"
)

// Keys lists every collection record
var Keys = []string{KeyPlayers, KeyEvents, KeySessionHistory}

// RecordState is the condition of one stored collection record
type RecordState string

// Record states
const (
	RecordOK         RecordState = "ok"
	RecordMissing    RecordState = "missing"
	RecordCorrupt    RecordState = "corrupt"
	RecordUnreadable RecordState = "unreadable"
)

// RecordReport describes one collection record as found in the store
type RecordReport struct {
	Key   string
	State RecordState
	// Entries counts array elements, NullEntries the null ones among them
	Entries     int
	NullEntries int
	// Err is the read or parse failure behind a corrupt or unreadable record
	Err error
}

// Inspect reads every collection record without repairing anything. A
// corrupt record is one the repository would silently load as empty.
func Inspect(ctx context.Context, store kvstore.Store) []RecordReport {
	reports := make([]RecordReport, 0, len(Keys))
	for _, key := range Keys {
		reports = append(reports, inspectRecord(ctx, store, key))
	}
	return reports
}

func inspectRecord(ctx context.Context, store kvstore.Store, key string) RecordReport {
	report := RecordReport{Key: key, State: RecordOK}

	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			report.State = RecordMissing
			return report
		}
		report.State = RecordUnreadable
		report.Err = err
		return report
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		report.State = RecordCorrupt
		report.Err = err
		return report
	}
	report.Entries = len(raw)
	for _, el := range raw {
		if string(el) == "null" {
			report.NullEntries++
		}
	}

	if err := decodeAs(key, data); err != nil {
		report.State = RecordCorrupt
		report.Err = err
	}
	return report
}

// decodeAs runs the same typed decode the repository uses on load
func decodeAs(key string, data []byte) error {
	switch key {
	case KeyPlayers:
		var v []*entities.Player
		return json.Unmarshal(data, &v)
	case KeyEvents:
		var v []*entities.SkillCheckEvent
		return json.Unmarshal(data, &v)
	case KeySessionHistory:
		var v []*entities.CheckSession
		return json.Unmarshal(data, &v)
	default:
		return errors.InvalidArgumentf("unknown collection key %s", key)
	}
}

// Repair deletes every corrupt record in reports so the next load starts that
// collection empty instead of failing to parse it again. It returns the keys
// it deleted.
func Repair(ctx context.Context, store kvstore.Store, reports []RecordReport) ([]string, error) {
	var deleted []string
	for _, report := range reports {
		if report.State != RecordCorrupt {
			continue
		}
		if err := store.Delete(ctx, report.Key); err != nil {
			return deleted, errors.Storagef(err, "failed to delete %s", report.Key)
		}
		deleted = append(deleted, report.Key)
	}
	return deleted, nil
}
