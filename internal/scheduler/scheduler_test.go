package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-display/internal/weather"
)

type fakeRefresher struct {
	calls chan struct{}
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (weather.Display, error) {
	if _, ok := ctx.Deadline(); !ok {
		return weather.Display{}, errors.New("refresh called without a deadline")
	}
	f.calls <- struct{}{}
	return weather.Display{}, f.err
}

func TestSchedulerRunsImmediately(t *testing.T) {
	for _, err := range []error{nil, weather.ErrFetch} {
		r := &fakeRefresher{calls: make(chan struct{}, 1), err: err}
		s := New(time.Minute, r)
		if err := s.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}

		select {
		case <-r.calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("refresh was not triggered on start")
		}
		s.Stop()
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := New(time.Hour, &fakeRefresher{calls: make(chan struct{}, 1)})
	s.Stop()
}

func TestRunIntervalKeepsSubMinutePrecision(t *testing.T) {
	cases := map[time.Duration]time.Duration{
		90 * time.Second: 90 * time.Second,
		time.Hour:        time.Hour,
		0:                15 * time.Minute,
		-time.Minute:     15 * time.Minute,
	}
	for in, want := range cases {
		if got := runInterval(in); got != want {
			t.Errorf("runInterval(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSchedulerUsesFullInterval(t *testing.T) {
	r := &fakeRefresher{calls: make(chan struct{}, 1)}
	s := New(90*time.Second, r)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	<-r.calls

	jobs := s.scheduler.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
	if unit := jobs[0].ScheduledUnit(); unit != "duration" {
		t.Fatalf("scheduled unit = %q, want duration", unit)
	}

	// A truncated interval would put the next run at most a minute out.
	deadline := time.Now().Add(2 * time.Second)
	for {
		until := time.Until(jobs[0].ScheduledTime())
		if until > 65*time.Second {
			if until > 91*time.Second {
				t.Fatalf("next run in %v, want about 90s", until)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("next run in %v, want about 90s", until)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
