package locks

import (
	"math"
	"strings"
	"time"

	"go.trai.ch/fairway/internal/core/domain"
)

// IsOpen evaluates the weekly schedule of lock at the wall-clock time of at.
func IsOpen(lock domain.LockRecord, at time.Time) domain.LockStatus {
	if len(lock.OpeningHours) == 0 {
		return domain.LockStatus{State: domain.LockOpen, Reason: "24/7 operation (no hours specified)"}
	}

	hours, ok := lock.OpeningHours[at.Weekday()]
	if !ok {
		return domain.LockStatus{
			State:  domain.LockClosed,
			Reason: "Closed on " + strings.ToUpper(domain.WeekdayKey(at.Weekday())),
		}
	}

	if !hours.Contains(at) {
		opens := hours.Start
		return domain.LockStatus{
			State:   domain.LockClosed,
			Reason:  "Closed (hours: " + hours.String() + ")",
			OpensAt: &opens,
		}
	}

	for _, b := range lock.BreakTimes {
		if b.ContainsHalfOpen(at) {
			end := b.End
			return domain.LockStatus{
				State:   domain.LockBreak,
				Reason:  "Break time (" + b.String() + ")",
				OpensAt: &end,
			}
		}
	}

	closes := hours.End
	return domain.LockStatus{State: domain.LockOpen, Reason: "Open", ClosesAt: &closes}
}

// CheckAvailability estimates the arrival at each lock for a departure at departure
// and returns a warning for every lock that will not be open. Passage times of locks
// strictly closer to the start delay the arrival at later ones.
func CheckAvailability(hits []domain.LockHit, departure time.Time, speedKmh float64) []domain.LockWarning {
	speedMs := speedKmh * 1000 / 3600

	var warnings []domain.LockWarning
	for _, hit := range hits {
		var travel float64
		if speedMs > 0 {
			travel = hit.DistanceFromStartMeters / speedMs
		}
		for _, prev := range hits {
			if prev.DistanceFromStartMeters < hit.DistanceFromStartMeters {
				travel += float64(prev.Lock.DurationMinutes() * 60)
			}
		}

		total := seconds(travel)
		arrival := departure.Add(total)
		status := IsOpen(hit.Lock, arrival)
		if status.IsOpen() {
			continue
		}

		w := domain.LockWarning{
			Hit:              hit,
			EstimatedArrival: arrival,
			State:            status.State,
			Reason:           status.Reason,
			OpensAt:          status.OpensAt,
			ClosesAt:         status.ClosesAt,
		}

		if status.OpensAt != nil {
			next := status.OpensAt.On(arrival)
			if status.State == domain.LockClosed && !next.After(arrival) {
				next = next.AddDate(0, 0, 1)
			}
			suggested := next.Add(-total)
			w.NextOpening = &next
			w.SuggestedDeparture = &suggested
			if delay := suggested.Sub(departure); delay > 0 {
				w.DelaySeconds = domain.Float64(delay.Seconds())
			}
		}

		warnings = append(warnings, w)
	}
	return warnings
}

// seconds converts to a Duration rounded to the nanosecond.
func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
