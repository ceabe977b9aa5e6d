package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/neojoin1-cyber/game/internal/game"
)

// Scheduler runs the midnight rollover so the streak and missions turn
// over even while the process sits idle. Endpoints still call StartDay on
// demand; the cron entry just keeps a long-lived server honest.
type Scheduler struct {
	cron    *cron.Cron
	session *game.Session
	logger  *log.Logger
}

func NewScheduler(session *game.Session, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.Local)),
		session: session,
		logger:  logger,
	}
}

// Start registers the midnight job and launches the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		res := s.session.StartDay()
		s.logger.WithFields(log.Fields{
			"new_day":        res.NewDay,
			"login_streak":   res.LoginStreak,
			"missions_reset": res.MissionsReset,
		}).Info("daily rollover")
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
