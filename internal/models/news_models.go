package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout news sources publish dates in.
const TimestampLayout = "2006-01-02 15:04:05"

const UnknownDate = "unknown"

var timestampLayouts = []string{
	TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// Timestamp holds a publish time as it arrived: a raw string, a concrete
// time, or nothing at all.
type Timestamp struct {
	raw string
	t   time.Time
}

func TimestampFromString(s string) Timestamp {
	return Timestamp{raw: strings.TrimSpace(s)}
}

func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// IsZero reports whether no timestamp was supplied.
func (ts Timestamp) IsZero() bool {
	return ts.raw == "" && ts.t.IsZero()
}

func (ts Timestamp) String() string {
	switch {
	case ts.raw != "":
		return ts.raw
	case !ts.t.IsZero():
		return ts.t.Format(TimestampLayout)
	default:
		return UnknownDate
	}
}

// Parse interprets the timestamp in loc. Zone-less layouts are read as
// local to loc.
func (ts Timestamp) Parse(loc *time.Location) (time.Time, bool) {
	if !ts.t.IsZero() {
		return ts.t, true
	}
	if ts.raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts.raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve returns the parsed time, or now when the timestamp is absent or
// unparseable. The bool reports whether parsing succeeded.
func (ts Timestamp) Resolve(now time.Time, loc *time.Location) (time.Time, bool) {
	if t, ok := ts.Parse(loc); ok {
		return t, true
	}
	return now, false
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*ts = Timestamp{}
	case string:
		*ts = TimestampFromString(val)
	case float64:
		*ts = TimestampFromTime(time.Unix(int64(val), 0))
	default:
		return fmt.Errorf("[Timestamp] unsupported timestamp value: %s", string(data))
	}
	return nil
}

// NewsRecord is a single retrieved news item.
type NewsRecord struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Timestamp Timestamp `json:"published_time"`
	Source    string    `json:"source,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// UnmarshalJSON accepts the publish time under any of the field names
// crawlers have historically used.
func (r *NewsRecord) UnmarshalJSON(data []byte) error {
	type alias NewsRecord
	aux := struct {
		*alias
		AltTimestamp Timestamp `json:"timestamp"`
		Date         Timestamp `json:"date"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Timestamp.IsZero() {
		r.Timestamp = aux.AltTimestamp
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = aux.Date
	}
	return nil
}

// Text is the string that gets scored: title and summary joined by a space.
func (r NewsRecord) Text() string {
	return r.Title + " " + r.Summary
}

// NewsBatch is the message the producer publishes for analysis.
type NewsBatch struct {
	BatchID   string       `json:"batch_id"`
	Keyword   string       `json:"keyword"`
	Records   []NewsRecord `json:"records"`
	CreatedAt time.Time    `json:"created_at"`
}
