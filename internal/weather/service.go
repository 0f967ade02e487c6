package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Outcomes reported to an Observer at the end of each run.
const (
	OutcomeOK               = "ok"
	OutcomePermissionDenied = "permission_denied"
	OutcomeNoLocation       = "location_unavailable"
	OutcomeFetchFailed      = "fetch_failed"
	OutcomeStale            = "stale"
)

// Observer receives pipeline events. Implementations must be safe for concurrent use.
type Observer interface {
	RunFinished(outcome string, elapsed time.Duration)
	SamplesSkipped(n int)
	GeocodeFailed()
}

// ServiceConfig tunes a Service. Zero values fall back to sensible defaults.
type ServiceConfig struct {
	Location         *time.Location
	Policy           WindowPolicy
	PlaceholderLabel string
	Now              func() time.Time
	Observer         Observer
}

// Service runs the acquisition pipeline and publishes the resulting display.
type Service struct {
	store    Store
	locator  Locator
	geocoder Geocoder
	provider ForecastProvider

	loc         *time.Location
	policy      WindowPolicy
	placeholder string
	now         func() time.Time
	observer    Observer
}

// NewService creates a new Service.
func NewService(store Store, locator Locator, geocoder Geocoder, provider ForecastProvider, cfg ServiceConfig) *Service {
	s := &Service{
		store:       store,
		locator:     locator,
		geocoder:    geocoder,
		provider:    provider,
		loc:         orLocal(cfg.Location),
		policy:      cfg.Policy,
		placeholder: cfg.PlaceholderLabel,
		now:         cfg.Now,
		observer:    cfg.Observer,
	}
	if s.policy == "" {
		s.policy = PolicyNow
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	return s
}

// Refresh runs permission -> coordinates -> label -> fetch -> aggregation once.
// A failure before aggregation leaves the published display untouched.
// If a newer run has already published, the result of this run is returned
// to the caller but not published, and the error wraps the store's stale error.
func (s *Service) Refresh(ctx context.Context) (Display, error) {
	started := s.now()
	ticket := s.store.Begin()

	coords, err := s.locator.Locate(ctx)
	if err != nil {
		outcome := OutcomeNoLocation
		if errors.Is(err, ErrPermissionDenied) {
			outcome = OutcomePermissionDenied
		} else if !errors.Is(err, ErrLocationUnavailable) {
			err = fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
		}
		log.Printf("ERROR: run %s: locate failed: %v", ticket.ID, err)
		s.observer.RunFinished(outcome, s.now().Sub(started))
		return Display{}, err
	}

	label := s.resolveLabel(ctx, ticket, coords)

	if s.provider == nil {
		s.observer.RunFinished(OutcomeFetchFailed, s.now().Sub(started))
		return Display{}, fmt.Errorf("%w: no forecast provider configured", ErrFetch)
	}

	samples, err := s.provider.FetchForecast(ctx, coords)
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %s: %v", ErrFetch, s.provider.Name(), err)
		}
		log.Printf("ERROR: run %s: %v; keeping previous display", ticket.ID, err)
		s.observer.RunFinished(OutcomeFetchFailed, s.now().Sub(started))
		return Display{}, err
	}

	now := s.now()
	if skipped := SkippedSamples(samples); skipped > 0 {
		log.Printf("INFO: run %s: skipping %d malformed samples of %d", ticket.ID, skipped, len(samples))
		s.observer.SamplesSkipped(skipped)
	}

	display := Display{
		RunID:       ticket.ID,
		Provider:    s.provider.Name(),
		GeneratedAt: now,
		Coordinates: coords,
		Label:       label,
		Today:       NewHourlyViews(s.policy.Extract(samples, now), s.loc),
		Daily:       NewDailyViews(DailySummaries(samples, now, s.loc), s.loc),
	}

	if err := s.store.Publish(ticket, display); err != nil {
		log.Printf("INFO: run %s: result discarded: %v", ticket.ID, err)
		s.observer.RunFinished(OutcomeStale, s.now().Sub(started))
		return display, err
	}

	log.Printf("DEBUG: run %s: published %d hourly and %d daily entries for %s %s",
		ticket.ID, len(display.Today), len(display.Daily), label.Primary, label.Secondary)
	s.observer.RunFinished(OutcomeOK, s.now().Sub(started))
	return display, nil
}

func (s *Service) resolveLabel(ctx context.Context, ticket Ticket, c Coordinates) Label {
	fallback := Label{Primary: s.placeholder}
	if s.geocoder == nil {
		return fallback
	}

	label, err := s.geocoder.Resolve(ctx, c)
	if err == nil && label.Primary == "" && label.Secondary == "" {
		err = fmt.Errorf("%w: no usable name", ErrGeocode)
	}
	if err != nil {
		log.Printf("INFO: run %s: label lookup failed, using placeholder: %v", ticket.ID, err)
		s.observer.GeocodeFailed()
		return fallback
	}
	return label
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Display, error) {
	return s.store.Latest()
}

type nopObserver struct{}

func (nopObserver) RunFinished(string, time.Duration) {}
func (nopObserver) SamplesSkipped(int)                {}
func (nopObserver) GeocodeFailed()                    {}
