/*
scheduler.go - Automated year-close scheduler

PURPOSE:
  Periodically checks whether the annual close is due (December 31, or any
  day of the January grace window) and runs it automatically. Also logs
  the pre-close reminder once per year inside the configured window.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - The close itself is Handler.performYearClose, shared with the manual
    /api/year-close/run endpoint and serialized by the same mutex
  - Idempotent: once CloseMeta records the target year, later ticks skip

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewCloseScheduler(store, handler, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunYearClose endpoint (manual trigger)
  - leave/yearclose.go: CloseDue, ApplyYearClose, ReminderMessage
*/
package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// CloseScheduler handles automated year-end closing and reminders.
type CloseScheduler struct {
	Store         leave.Store
	Handler       *Handler
	Logger        *slog.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCloseScheduler creates a new scheduler.
func NewCloseScheduler(store leave.Store, handler *Handler, logger *slog.Logger) *CloseScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CloseScheduler{
		Store:         store,
		Handler:       handler,
		Logger:        logger,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduler.
func (cs *CloseScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		cs.Logger.Info("scheduler disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.wg.Add(1)

	go cs.run()

	cs.Logger.Info("scheduler started", "checkInterval", cs.CheckInterval.String())
}

// Stop stops the scheduler.
func (cs *CloseScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		cs.Logger.Info("scheduler stopped")
	}
}

func (cs *CloseScheduler) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.checkAndProcess()

	for {
		select {
		case <-cs.ticker.C:
			cs.checkAndProcess()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CloseScheduler) checkAndProcess() {
	ctx := context.Background()

	cs.emitReminder(ctx)

	result, err := cs.Handler.performYearClose(ctx)
	if err != nil {
		if errors.Is(err, errCloseNotDue) {
			return
		}
		cs.Logger.Error("automatic year close failed", "error", err)
		return
	}

	cs.Logger.Info("automatic year close completed",
		"closedYear", result.ClosedYear,
		"employees", result.EmployeesProcessed,
		"adminDaysExpired", result.AdminDaysExpired,
		"vacationDaysCapped", result.VacationDaysCapped)
}

// emitReminder logs the December warning at most once per year and
// records the emission in CloseMeta.
func (cs *CloseScheduler) emitReminder(ctx context.Context) {
	meta, err := cs.Store.CloseMeta(ctx)
	if err != nil {
		cs.Logger.Error("failed to load close state", "error", err)
		return
	}
	cfg, err := cs.Store.Config(ctx)
	if err != nil {
		cs.Logger.Error("failed to load configuration", "error", err)
		return
	}
	employees, err := cs.Store.ListEmployees(ctx)
	if err != nil {
		cs.Logger.Error("failed to list employees", "error", err)
		return
	}

	today := cs.Handler.today()
	msg, ok := leave.ReminderMessage(today, employees, cfg, meta)
	if !ok {
		return
	}

	cs.Logger.Warn(msg, "year", today.Year())

	meta.LastReminderYear = today.Year()
	if err := cs.Store.PutCloseMeta(ctx, meta); err != nil {
		cs.Logger.Error("failed to record reminder emission", "error", err)
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (cs *CloseScheduler) RunNow() {
	cs.checkAndProcess()
}
