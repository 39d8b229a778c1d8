package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RefreshTokenPurger is implemented by the user repository.
type RefreshTokenPurger interface {
	PurgeExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs. Currently a single job:
// clearing refresh-token digests whose expiry has elapsed. Expired digests
// are already unusable, so the purge only affects hygiene, never
// correctness.
type Scheduler struct {
	cron  *cron.Cron
	users RefreshTokenPurger
	log   zerolog.Logger
}

func NewScheduler(users RefreshTokenPurger, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		users: users,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeExpiredRefreshTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish, bounded by a short timeout.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeExpiredRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.users.PurgeExpiredRefreshTokens(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("refresh token purge failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("expired refresh tokens cleared")
	}
}
