package model_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"plek/internal/domains/booking/model"
)

func booking(start, end time.Time, status string) model.Booking {
	return model.Booking{StartAt: start, EndAt: end, Status: status}
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	tests := []struct {
		name        string
		bookingAt   [2]int
		candidate   [2]int
		wantOverlap bool
	}{
		{name: "identical intervals", bookingAt: [2]int{0, 2}, candidate: [2]int{0, 2}, wantOverlap: true},
		{name: "candidate inside booking", bookingAt: [2]int{0, 10}, candidate: [2]int{3, 5}, wantOverlap: true},
		{name: "booking inside candidate", bookingAt: [2]int{3, 5}, candidate: [2]int{0, 10}, wantOverlap: true},
		{name: "candidate overlaps the tail", bookingAt: [2]int{0, 4}, candidate: [2]int{3, 8}, wantOverlap: true},
		{name: "candidate overlaps the head", bookingAt: [2]int{3, 8}, candidate: [2]int{0, 4}, wantOverlap: true},
		{name: "back to back, candidate after", bookingAt: [2]int{0, 2}, candidate: [2]int{2, 4}, wantOverlap: false},
		{name: "back to back, candidate before", bookingAt: [2]int{2, 4}, candidate: [2]int{0, 2}, wantOverlap: false},
		{name: "disjoint with a gap", bookingAt: [2]int{0, 2}, candidate: [2]int{5, 7}, wantOverlap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := booking(at(tt.bookingAt[0]), at(tt.bookingAt[1]), model.StatusPending)

			assert.Equal(t, tt.wantOverlap, b.Overlaps(at(tt.candidate[0]), at(tt.candidate[1])))
		})
	}
}

// Overlap must be symmetric and must hold exactly when neither interval ends
// before the other starts, for any pair of well-formed half-open intervals.
func TestBooking_Overlaps_RandomIntervals(t *testing.T) {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))

	interval := func() (time.Time, time.Time) {
		start := rng.Intn(200)
		length := 1 + rng.Intn(50)

		return base.Add(time.Duration(start) * time.Hour), base.Add(time.Duration(start+length) * time.Hour)
	}

	for i := 0; i < 1000; i++ {
		startA, endA := interval()
		startB, endB := interval()

		a := booking(startA, endA, model.StatusPending)
		b := booking(startB, endB, model.StatusPending)

		want := !(endA.Before(startB) || endA.Equal(startB) || endB.Before(startA) || endB.Equal(startA))

		assert.Equal(t, want, a.Overlaps(startB, endB), "a=[%v,%v) b=[%v,%v)", startA, endA, startB, endB)
		assert.Equal(t, a.Overlaps(startB, endB), b.Overlaps(startA, endA), "overlap must be symmetric")
	}
}

func TestBooking_Blocking(t *testing.T) {
	now := time.Now()

	pending := booking(now, now.Add(time.Hour), model.StatusPending)
	confirmed := booking(now, now.Add(time.Hour), model.StatusConfirmed)
	cancelled := booking(now, now.Add(time.Hour), model.StatusCancelled)
	completed := booking(now, now.Add(time.Hour), model.StatusCompleted)

	assert.True(t, pending.Blocking())
	assert.True(t, confirmed.Blocking())
	assert.False(t, cancelled.Blocking())
	assert.False(t, completed.Blocking())
}
