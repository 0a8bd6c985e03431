package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/internal/core/domain"
)

func TestParseTimeRange(t *testing.T) {
	r, err := domain.ParseTimeRange("06:00-22:30")
	require.NoError(t, err)
	assert.Equal(t, domain.ClockTime{Hour: 6}, r.Start)
	assert.Equal(t, domain.ClockTime{Hour: 22, Minute: 30}, r.End)
	assert.Equal(t, "06:00-22:30", r.String())

	for _, bad := range []string{"", "06:00", "6-22", "24:00-25:00", "06:60-07:00", "aa:bb-cc:dd"} {
		_, err := domain.ParseTimeRange(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidTimeRange, bad)
	}
}

func TestTimeRange_ContainsIsInclusive(t *testing.T) {
	r, err := domain.ParseTimeRange("06:00-20:00")
	require.NoError(t, err)

	day := func(h, m, s int) time.Time { return time.Date(2024, 6, 3, h, m, s, 0, time.UTC) }
	assert.False(t, r.Contains(day(5, 59, 59)))
	assert.True(t, r.Contains(day(6, 0, 0)))
	assert.True(t, r.Contains(day(20, 0, 0)))
	assert.False(t, r.Contains(day(20, 0, 1)))
}

func TestTimeRange_ContainsHalfOpen(t *testing.T) {
	r, err := domain.ParseTimeRange("12:00-12:30")
	require.NoError(t, err)

	day := func(h, m, s int) time.Time { return time.Date(2024, 6, 3, h, m, s, 0, time.UTC) }
	assert.False(t, r.ContainsHalfOpen(day(11, 59, 59)))
	assert.True(t, r.ContainsHalfOpen(day(12, 0, 0)))
	assert.True(t, r.ContainsHalfOpen(day(12, 29, 59)))
	assert.False(t, r.ContainsHalfOpen(day(12, 30, 0)))
}

func TestWeekdayKeys(t *testing.T) {
	assert.Equal(t, "mo", domain.WeekdayKey(time.Monday))
	assert.Equal(t, "su", domain.WeekdayKey(time.Sunday))

	d, err := domain.ParseWeekdayKey(" SA ")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)

	_, err = domain.ParseWeekdayKey("monday")
	assert.ErrorIs(t, err, domain.ErrInvalidWeekday)
}

func TestLockRecord_JSON(t *testing.T) {
	raw := `{
		"id": 12,
		"name": "Schleuse Rothensee",
		"waterway": "Mittellandkanal",
		"lat": 52.1794,
		"lon": 11.6781,
		"opening_hours": {"mo": "06:00-22:00", "sa": "08:00-18:00", "su": ""},
		"break_times": [{"start": "12:00", "end": "12:30"}],
		"max_draft": 2.8,
		"avg_duration": 25
	}`

	var lock domain.LockRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &lock))

	assert.Equal(t, int64(12), lock.ID)
	require.Len(t, lock.OpeningHours, 2)
	assert.Equal(t, "08:00-18:00", lock.OpeningHours[time.Saturday].String())
	_, sundayOpen := lock.OpeningHours[time.Sunday]
	assert.False(t, sundayOpen)
	require.Len(t, lock.BreakTimes, 1)
	assert.Equal(t, "12:00-12:30", lock.BreakTimes[0].String())
	require.NotNil(t, lock.MaxDraft)
	assert.InDelta(t, 2.8, *lock.MaxDraft, 1e-12)
	assert.Equal(t, 25, lock.DurationMinutes())

	out, err := json.Marshal(lock)
	require.NoError(t, err)

	var back domain.LockRecord
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, lock, back)
}

func TestLockRecord_JSON_Invalid(t *testing.T) {
	var lock domain.LockRecord
	err := json.Unmarshal([]byte(`{"id": 1, "opening_hours": {"xx": "06:00-20:00"}}`), &lock)
	require.ErrorIs(t, err, domain.ErrInvalidWeekday)

	err = json.Unmarshal([]byte(`{"id": 1, "opening_hours": {"mo": "6 to 8"}}`), &lock)
	require.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestLockRecord_Defaults(t *testing.T) {
	lock := domain.LockRecord{Lat: 52.26, Lon: 11.72}
	assert.Equal(t, domain.DefaultLockDurationMinutes, lock.DurationMinutes())
	assert.InDelta(t, 11.72, lock.Point().Lon(), 1e-12)
	assert.InDelta(t, 52.26, lock.Point().Lat(), 1e-12)
}

func TestSortLocks(t *testing.T) {
	locks := []domain.LockRecord{{ID: 12}, {ID: 3}, {ID: 7}}
	domain.SortLocks(locks)
	assert.Equal(t, []int64{3, 7, 12}, []int64{locks[0].ID, locks[1].ID, locks[2].ID})
}
