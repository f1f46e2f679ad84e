package task

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Draft is a task record with every field optional, as read from storage
// or from an import file. Absent fields, and fields whose value has the
// wrong type, are nil.
type Draft struct {
	ID        *string
	Title     *string
	Completed *bool
	DueDate   *string
	Priority  *string
	CreatedAt *int64
	Order     *int
}

// UnmarshalJSON decodes a record field by field. It never fails: a value
// that is not an object yields an empty draft, and a field that cannot be
// used is dropped so that it takes its default on Resolve.
func (d *Draft) UnmarshalJSON(data []byte) error {
	*d = Draft{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	d.ID = idValue(fields["id"])
	d.Title = stringValue(fields["title"])
	d.DueDate = stringValue(fields["dueDate"])
	d.Priority = stringValue(fields["priority"])
	if raw, ok := fields["completed"]; ok {
		done := truthy(raw)
		d.Completed = &done
	}
	if n, ok := numberValue(fields["createdAt"]); ok {
		ms := int64(n)
		d.CreatedAt = &ms
	}
	if n, ok := numberValue(fields["order"]); ok {
		order := int(math.Floor(n))
		d.Order = &order
	}
	return nil
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func stringValue(raw json.RawMessage) *string {
	if s, ok := decodeValue(raw).(string); ok {
		return &s
	}
	return nil
}

// idValue accepts string and numeric identifiers.
func idValue(raw json.RawMessage) *string {
	switch v := decodeValue(raw).(type) {
	case string:
		return &v
	case json.Number:
		s := v.String()
		return &s
	}
	return nil
}

// numberValue returns a JSON number that fits in an int64.
func numberValue(raw json.RawMessage) (float64, bool) {
	n, ok := decodeValue(raw).(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return float64(i), true
	}
	f, err := n.Float64()
	if err != nil || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return f, true
}

// truthy reports whether a JSON value is true in a boolean context: false,
// null, zero and the empty string are false, everything else is true.
func truthy(raw json.RawMessage) bool {
	switch v := decodeValue(raw).(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	}
	return true
}

// Resolve fills every absent field of d with its default and returns the
// resulting task. index is the draft's position in its source array and is
// the default order; fallbackID supplies an identifier when d has none.
//
// A recognized priority is normalized to its canonical name. Any other
// priority string is kept as is and ranks as medium.
func (d Draft) Resolve(index int, now time.Time, fallbackID func(index int) string) Task {
	t := Task{
		Title:     UntitledTitle,
		Priority:  PriorityMedium,
		CreatedAt: now.UnixMilli(),
		Order:     index,
	}
	if d.ID != nil {
		t.ID = *d.ID
	} else {
		t.ID = fallbackID(index)
	}
	if d.Title != nil {
		t.Title = *d.Title
	}
	if d.Completed != nil {
		t.Completed = *d.Completed
	}
	if d.DueDate != nil && *d.DueDate != "" {
		due := *d.DueDate
		t.DueDate = &due
	}
	if d.Priority != nil {
		if p, err := ParsePriority(*d.Priority); err == nil {
			t.Priority = p
		} else {
			t.Priority = Priority(strings.TrimSpace(*d.Priority))
		}
	}
	if d.CreatedAt != nil {
		t.CreatedAt = *d.CreatedAt
	}
	if d.Order != nil {
		t.Order = *d.Order
	}
	return t
}

// ResolveAll resolves drafts in order.
func ResolveAll(drafts []Draft, now time.Time, fallbackID func(index int) string) []Task {
	tasks := make([]Task, len(drafts))
	for i, d := range drafts {
		tasks[i] = d.Resolve(i, now, fallbackID)
	}
	return tasks
}
