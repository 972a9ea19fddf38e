package monitoring

import (
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// orphanGrace is how old a profile must be before the sweep considers it
// orphaned. Fresh profiles may belong to a registration still in flight
// between its two inserts.
const orphanGrace = 5 * time.Minute

// Reconciler sweeps up profile rows left behind when a registration wrote
// its profile but failed to write the user row and the inline compensation
// also failed.
type Reconciler struct {
	db       *sql.DB
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewReconciler creates a reconciler running on the given cron schedule.
func NewReconciler(db *sql.DB, scheduleSpec string) (*Reconciler, error) {
	schedule, err := cron.ParseStandard(scheduleSpec)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		db:       db,
		schedule: schedule,
		nextRun:  schedule.Next(time.Now()),
		done:     make(chan bool),
	}, nil
}

// Run starts the reconciler's ticking loop.
func (r *Reconciler) Run() {
	log.Info().Msg("Starting orphaned profile reconciler...")
	r.ticker = time.NewTicker(1 * time.Minute)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.done:
			log.Info().Msg("Stopping orphaned profile reconciler.")
			return
		case <-r.ticker.C:
			now := time.Now()
			if now.After(r.nextRun) {
				r.sweep()
				r.nextRun = r.schedule.Next(now)
			}
		}
	}
}

// Stop halts the reconciler.
func (r *Reconciler) Stop() {
	r.done <- true
}

// sweep deletes student and instructor profiles no user row references.
func (r *Reconciler) sweep() {
	cutoff := time.Now().UTC().Add(-orphanGrace)
	for _, table := range []string{"students", "instructors"} {
		res, err := r.db.Exec(`
			DELETE FROM `+table+`
			WHERE created_at < ? AND id NOT IN (SELECT profile_id FROM users WHERE profile_id IS NOT NULL)`,
			cutoff)
		if err != nil {
			log.Error().Err(err).Str("table", table).Msg("Reconciler sweep failed")
			continue
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			log.Warn().Int64("count", affected).Str("table", table).
				Msg("Removed orphaned profiles left by failed registrations")
		}
	}
}
