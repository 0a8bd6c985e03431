package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"go.trai.ch/zerr"
)

// DefaultLockDurationMinutes is used for locks without a recorded average duration.
const DefaultLockDurationMinutes = 15

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, zerr.With(zerr.Wrap(ErrInvalidTimeRange, ""), "value", s)
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, zerr.With(zerr.Wrap(ErrInvalidTimeRange, ""), "value", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// Seconds returns the offset of c from midnight in seconds.
func (c ClockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60
}

// On returns c on the calendar day of t, in t's location.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON encodes c as "HH:MM".
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes "HH:MM".
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SecondsOfDay returns the wall-clock offset of t from its midnight in seconds.
func SecondsOfDay(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}

// TimeRange is an inclusive window within one day.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// ParseTimeRange parses "HH:MM-HH:MM".
func ParseTimeRange(s string) (TimeRange, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return TimeRange{}, zerr.With(zerr.Wrap(ErrInvalidTimeRange, ""), "value", s)
	}
	st, err := ParseClockTime(start)
	if err != nil {
		return TimeRange{}, err
	}
	en, err := ParseClockTime(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: st, End: en}, nil
}

// Contains reports whether the wall-clock time of t lies within r, both ends inclusive.
func (r TimeRange) Contains(t time.Time) bool {
	sec := SecondsOfDay(t)
	return r.Start.Seconds() <= sec && sec <= r.End.Seconds()
}

// ContainsHalfOpen reports whether the wall-clock time of t lies within r, excluding
// the end. Break windows use it so the minute a break ends is open again.
func (r TimeRange) ContainsHalfOpen(t time.Time) bool {
	sec := SecondsOfDay(t)
	return r.Start.Seconds() <= sec && sec < r.End.Seconds()
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// breakJSON is the stored form of a break window.
type breakJSON struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// MarshalJSON encodes r as {"start": "HH:MM", "end": "HH:MM"}.
func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(breakJSON(r))
}

// UnmarshalJSON decodes {"start": "HH:MM", "end": "HH:MM"}.
func (r *TimeRange) UnmarshalJSON(data []byte) error {
	var b breakJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*r = TimeRange(b)
	return nil
}

var weekdayKeys = [...]string{
	time.Sunday:    "su",
	time.Monday:    "mo",
	time.Tuesday:   "tu",
	time.Wednesday: "we",
	time.Thursday:  "th",
	time.Friday:    "fr",
	time.Saturday:  "sa",
}

// WeekdayKey returns the two-letter key used in opening hours ("mo".."su").
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// ParseWeekdayKey parses a two-letter weekday key.
func ParseWeekdayKey(s string) (time.Weekday, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for d, key := range weekdayKeys {
		if key == k {
			return time.Weekday(d), nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidWeekday, ""), "key", s)
}

// WeeklyHours maps each weekday to its opening window. A missing weekday is a closed day.
type WeeklyHours map[time.Weekday]TimeRange

// MarshalJSON encodes h as {"mo": "06:00-20:00", ...}.
func (h WeeklyHours) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(h))
	for d, r := range h {
		out[WeekdayKey(d)] = r.String()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes {"mo": "06:00-20:00", ...}. Empty values are treated as closed.
func (h *WeeklyHours) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(WeeklyHours, len(raw))
	for k, v := range raw {
		d, err := ParseWeekdayKey(k)
		if err != nil {
			return err
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		r, err := ParseTimeRange(v)
		if err != nil {
			return err
		}
		out[d] = r
	}
	*h = out
	return nil
}

// LockRecord is a lock from the lock directory. The engine never mutates it.
type LockRecord struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	Waterway           string      `json:"waterway"`
	Lat                float64     `json:"lat"`
	Lon                float64     `json:"lon"`
	RiverKm            *float64    `json:"river_km,omitempty"`
	Phone              string      `json:"phone,omitempty"`
	VHFChannel         string      `json:"vhf_channel,omitempty"`
	Email              string      `json:"email,omitempty"`
	Website            string      `json:"website,omitempty"`
	OpeningHours       WeeklyHours `json:"opening_hours,omitempty"`
	BreakTimes         []TimeRange `json:"break_times,omitempty"`
	MaxLength          *float64    `json:"max_length,omitempty"`
	MaxWidth           *float64    `json:"max_width,omitempty"`
	MaxDraft           *float64    `json:"max_draft,omitempty"`
	MaxHeight          *float64    `json:"max_height,omitempty"`
	AvgDurationMinutes int         `json:"avg_duration,omitempty"`
	RequiresBooking    bool        `json:"requires_booking,omitempty"`
	Notes              string      `json:"notes,omitempty"`
}

// DurationMinutes returns the average lock passage time, defaulting to 15 minutes.
func (l LockRecord) DurationMinutes() int {
	if l.AvgDurationMinutes <= 0 {
		return DefaultLockDurationMinutes
	}
	return l.AvgDurationMinutes
}

// Point returns the lock position.
func (l LockRecord) Point() orb.Point {
	return orb.Point{l.Lon, l.Lat}
}

// SortLocks orders locks by id, which is the order the directory returns them in.
func SortLocks(locks []LockRecord) {
	sort.SliceStable(locks, func(i, j int) bool { return locks[i].ID < locks[j].ID })
}

// LockHit is a lock found along a route.
type LockHit struct {
	Lock                    LockRecord `json:"lock"`
	DistanceFromStartMeters float64    `json:"distance_from_start"`
	DistanceFromRouteMeters float64    `json:"distance_from_route"`
}

// LockState is the derived state of a lock at a point in time.
type LockState string

const (
	// LockOpen means the lock is operating.
	LockOpen LockState = "open"
	// LockClosed means the lock is outside its opening hours.
	LockClosed LockState = "closed"
	// LockBreak means the lock is inside a break window.
	LockBreak LockState = "break"
)

// LockStatus is the result of evaluating a lock schedule at a timestamp.
type LockStatus struct {
	State    LockState  `json:"state"`
	Reason   string     `json:"reason"`
	OpensAt  *ClockTime `json:"opens_at,omitempty"`
	ClosesAt *ClockTime `json:"closes_at,omitempty"`
}

// IsOpen reports whether the state is LockOpen.
func (s LockStatus) IsOpen() bool {
	return s.State == LockOpen
}

// LockWarning is emitted for a lock that will not be open at the estimated arrival.
type LockWarning struct {
	Hit                LockHit    `json:"lock"`
	EstimatedArrival   time.Time  `json:"estimated_arrival"`
	IsOpen             bool       `json:"is_open"`
	State              LockState  `json:"state"`
	Reason             string     `json:"reason"`
	OpensAt            *ClockTime `json:"opens_at,omitempty"`
	ClosesAt           *ClockTime `json:"closes_at,omitempty"`
	NextOpening        *time.Time `json:"next_opening,omitempty"`
	SuggestedDeparture *time.Time `json:"suggested_departure,omitempty"`
	DelaySeconds       *float64   `json:"delay_seconds,omitempty"`
}

// NearbyLock is a lock found around a position.
type NearbyLock struct {
	Lock           LockRecord `json:"lock"`
	DistanceMeters float64    `json:"distance_m"`
}

// LockReport is the state of one lock at a given time.
type LockReport struct {
	Lock   LockRecord `json:"lock"`
	At     time.Time  `json:"at"`
	Status LockStatus `json:"status"`
}
