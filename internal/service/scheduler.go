package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"coworking/internal/logger"
)

const jobTimeout = 2 * time.Minute

// cronLogger adapts our logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// NewScheduler registers the booking maintenance jobs on a cron instance. Runs never
// overlap; a slow run makes the next tick skip.
func NewScheduler(jobs *JobService, schedule string, log *logger.Logger) (*cron.Cron, error) {
	cl := cronLogger{log: log}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_ = jobs.RunAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
