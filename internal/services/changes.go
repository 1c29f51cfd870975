package services

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// fieldChanges compares two snapshots of an entity's fields and returns
// old/new pairs for the fields that actually changed. Update audits carry
// only these diffs, never full row snapshots.
func fieldChanges(before, after map[string]any) map[string]any {
	changes := map[string]any{}
	for field, newVal := range after {
		oldVal, ok := before[field]
		if ok && reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		changes[field] = map[string]any{"old": oldVal, "new": newVal}
	}
	return changes
}

// Nullable-field helpers for building snapshot maps.

func strVal(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func timeVal(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.Format(time.RFC3339)
}

func uuidVal(p *uuid.UUID) any {
	if p == nil {
		return nil
	}
	return p.String()
}
