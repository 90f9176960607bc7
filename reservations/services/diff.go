package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"hotel-management-backend/db/models"
)

// FieldChange pairs a field name with its old and new values. Every mutating
// operation builds its diff list through ComputeFieldDiffs instead of ad hoc
// per-field comparisons, so history entries stay uniform.
type FieldChange struct {
	Field string
	Old   interface{}
	New   interface{}
}

// ComputeFieldDiffs returns the ordered list of fields that actually changed.
// Values are rendered with %v, so decimals, times and enums all read naturally
// in the audit trail.
func ComputeFieldDiffs(changes []FieldChange) []models.FieldDiff {
	var diffs []models.FieldDiff
	for _, c := range changes {
		oldStr := renderValue(c.Old)
		newStr := renderValue(c.New)
		if oldStr == newStr {
			continue
		}
		diffs = append(diffs, models.FieldDiff{
			Field:    c.Field,
			OldValue: oldStr,
			NewValue: newStr,
		})
	}
	return diffs
}

// MarshalDiffs serializes a diff list for the history JSON column.
func MarshalDiffs(diffs []models.FieldDiff) (datatypes.JSON, error) {
	if diffs == nil {
		diffs = []models.FieldDiff{}
	}
	raw, err := json.Marshal(diffs)
	if err != nil {
		return nil, fmt.Errorf("marshal field diffs: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func renderValue(v interface{}) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
