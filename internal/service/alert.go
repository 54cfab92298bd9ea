package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/metrics"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/internal/rules"
)

// AlertLedger remembers which alerts were already delivered.
type AlertLedger interface {
	// Claim records key for ttl. It returns false if key was already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so a later sweep can retry it.
	Release(ctx context.Context, key string) error
}

// Notifier delivers one alert to its user.
type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

// Alert sweep outcome labels.
const (
	alertSent      = "sent"
	alertDuplicate = "duplicate"
	alertSkipped   = "skipped"
	alertError     = "error"
	alertQuiet     = "below_threshold"
)

// AlertConfig tunes an AlertService.
type AlertConfig struct {
	// Thresholds are remaining-day levels that trigger an alert.
	Thresholds []int
	// Concurrency bounds how many users are evaluated at once.
	Concurrency int
	// LedgerTTL is how long a delivered alert is remembered.
	LedgerTTL time.Duration
}

// AlertService warns users whose remaining Schengen allowance has dropped to
// or below one of the configured thresholds.
type AlertService struct {
	users    repo.UserRepo
	trips    repo.TripRepo
	ledger   AlertLedger
	notifier Notifier
	cfg      AlertConfig
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewAlertService constructs an AlertService. Thresholds are sorted ascending
// and concurrency defaults to 1. m may be nil.
func NewAlertService(users repo.UserRepo, trips repo.TripRepo, ledger AlertLedger, notifier Notifier,
	cfg AlertConfig, log *slog.Logger, m *metrics.Metrics,
) *AlertService {
	cfg.Thresholds = slices.Clone(cfg.Thresholds)
	slices.Sort(cfg.Thresholds)
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &AlertService{
		users:    users,
		trips:    trips,
		ledger:   ledger,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		metrics:  m,
	}
}

// Run evaluates every user as of day and sends at most one alert per user:
// the tightest threshold the user has crossed. Failures for one user are
// logged and counted in the report; only a failure to list users, or a
// cancelled context, aborts the sweep.
func (s *AlertService) Run(ctx context.Context, day time.Time) (domain.AlertReport, error) {
	day = domain.NormalizeDate(day)
	report := domain.AlertReport{Date: day}

	users, err := s.users.List(ctx)
	if err != nil {
		return report, fmt.Errorf("service.AlertService.Run: %w", err)
	}

	var mu sync.Mutex
	record := func(outcome string) {
		s.metrics.IncAlert(outcome)
		mu.Lock()
		defer mu.Unlock()
		switch outcome {
		case alertSkipped:
			report.UsersSkipped++
			return
		case alertSent:
			report.AlertsSent++
		case alertDuplicate:
			report.Duplicates++
		case alertError:
			report.Errors++
		}
		report.UsersProcessed++
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, u := range users {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := s.evaluate(gctx, u, day)
			if err != nil {
				s.log.ErrorContext(gctx, "alert evaluation failed",
					slog.String("user_id", u.ID.String()),
					slog.String("error", err.Error()),
				)
			}
			record(outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("service.AlertService.Run: %w", err)
	}

	s.log.InfoContext(ctx, "alert sweep finished",
		slog.String("date", domain.FormatDate(day)),
		slog.Int("users_processed", report.UsersProcessed),
		slog.Int("users_skipped", report.UsersSkipped),
		slog.Int("alerts_sent", report.AlertsSent),
		slog.Int("duplicates", report.Duplicates),
		slog.Int("errors", report.Errors),
	)
	return report, nil
}

// evaluate handles one user and returns the outcome label.
func (s *AlertService) evaluate(ctx context.Context, u domain.User, day time.Time) (string, error) {
	trips, err := s.trips.ListByUser(ctx, u.ID)
	if err != nil {
		return alertError, fmt.Errorf("list trips: %w", err)
	}
	if len(trips) == 0 {
		return alertSkipped, nil
	}

	status := rules.Compliance(trips, day)
	threshold, ok := s.tightest(status.RemainingDays)
	if !ok {
		return alertQuiet, nil
	}

	key := domain.AlertKey(u.ID, threshold, day)
	claimed, err := s.ledger.Claim(ctx, key, s.cfg.LedgerTTL)
	if err != nil {
		return alertError, fmt.Errorf("claim %s: %w", key, err)
	}
	if !claimed {
		return alertDuplicate, nil
	}

	alert := domain.Alert{
		UserID:    u.ID,
		Email:     u.Email,
		Threshold: threshold,
		Date:      day,
		Status:    status,
	}
	if err := s.notifier.Notify(ctx, alert); err != nil {
		if rerr := s.ledger.Release(context.WithoutCancel(ctx), key); rerr != nil {
			err = fmt.Errorf("%w (release: %v)", err, rerr)
		}
		return alertError, fmt.Errorf("notify: %w", err)
	}
	return alertSent, nil
}

// tightest returns the smallest threshold that remaining has reached.
func (s *AlertService) tightest(remaining int) (int, bool) {
	for _, t := range s.cfg.Thresholds {
		if remaining <= t {
			return t, true
		}
	}
	return 0, false
}
