// Package jobs runs report generation in the background: a buffered
// queue of report ids drained by a worker pool, each id driven through
// the report state machine by the Executor.
package jobs

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/report"
	"github.com/will-terra/teste-time-register/internal/storage"
)

var (
	reportsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Count of successfully generated reports",
	})
	reportsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reports_failed_total",
		Help: "Count of failed report generations",
	})
	generationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_generation_duration_seconds",
		Help:    "Latency of report generation",
		Buckets: prometheus.DefBuckets,
	})
)

func init() { prometheus.MustRegister(reportsCompleted, reportsFailed, generationSeconds) }

// Executor performs exactly one generation pass per report. It owns all
// post-creation mutation of the report row; nothing else writes status,
// progress, file_path or error_message.
type Executor struct {
	reports   domain.ReportRepository
	users     domain.UserRepository
	registers domain.TimeRegisterRepository
	store     storage.Store
	log       *zap.Logger
}

func NewExecutor(
	reports domain.ReportRepository,
	users domain.UserRepository,
	registers domain.TimeRegisterRepository,
	store storage.Store,
	log *zap.Logger,
) *Executor {
	return &Executor{reports: reports, users: users, registers: registers, store: store, log: log}
}

// Perform runs the generation pass for the report. Any fault is recorded
// onto the row (failed, progress 0, error message) and then returned so
// the caller sees the failure too. Checkpoints are a monitoring aid, not
// resumption points: a re-run starts from the beginning.
func (e *Executor) Perform(reportID uint) error {
	rep, err := e.reports.FindByID(reportID)
	if err != nil {
		return err
	}
	if rep == nil {
		return domain.NotFound("Report")
	}

	start := time.Now()
	if err := e.run(rep); err != nil {
		e.log.Error("report generation failed",
			zap.Uint("report_id", rep.ID),
			zap.String("process_id", rep.ProcessID),
			zap.Error(err),
		)
		e.markFailed(rep, err)
		reportsFailed.Inc()
		return err
	}
	reportsCompleted.Inc()
	generationSeconds.Observe(time.Since(start).Seconds())
	return nil
}

func (e *Executor) run(rep *domain.Report) error {
	if err := rep.Transition(domain.ReportProcessing); err != nil {
		return err
	}
	rep.Progress = 10
	if err := e.reports.Update(rep); err != nil {
		return err
	}

	user, err := e.users.FindByID(rep.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d not found", rep.UserID)
	}
	registers, err := e.registers.ListByUserInRange(rep.UserID, beginningOfDay(rep.StartDate), endOfDay(rep.EndDate))
	if err != nil {
		return err
	}
	rep.Progress = 30
	if err := e.reports.Update(rep); err != nil {
		return err
	}

	content, err := report.Generate(user, registers)
	if err != nil {
		return err
	}
	rep.Progress = 70
	if err := e.reports.Update(rep); err != nil {
		return err
	}

	path, err := e.store.Save(rep.ProcessID, content)
	if err != nil {
		return err
	}
	if err := rep.Transition(domain.ReportCompleted); err != nil {
		return err
	}
	rep.Progress = 100
	rep.FilePath = path
	rep.ErrorMessage = ""
	return e.reports.Update(rep)
}

// markFailed records the fault as durable, queryable state. file_path is
// never set before the completed update, so no partial artifact is
// referenced on failure.
func (e *Executor) markFailed(rep *domain.Report, cause error) {
	if err := rep.Transition(domain.ReportFailed); err != nil {
		// Already terminal; leave the row as-is.
		return
	}
	rep.Progress = 0
	rep.ErrorMessage = cause.Error()
	if err := e.reports.Update(rep); err != nil {
		e.log.Error("failed to persist report failure", zap.Uint("report_id", rep.ID), zap.Error(err))
	}
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
