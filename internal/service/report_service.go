package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/will-terra/teste-time-register/internal/core/cache"
	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/report"
	"github.com/will-terra/teste-time-register/internal/storage"
)

// Submitter enqueues a report id for background execution. The request
// path only enqueues; it never waits on generation.
type Submitter interface {
	Submit(reportID uint)
}

// ReportService creates report jobs and serves the read-only gateway
// (status and artifact download). All post-creation mutation belongs to
// the executor, not here.
type ReportService struct {
	reports domain.ReportRepository
	users   domain.UserRepository
	store   storage.Store
	queue   Submitter
	cache   *cache.Cache
	ttl     time.Duration
}

func NewReportService(
	reports domain.ReportRepository,
	users domain.UserRepository,
	store storage.Store,
	queue Submitter,
) *ReportService {
	return &ReportService{reports: reports, users: users, store: store, queue: queue}
}

// WithCache adds a read-through cache on status lookups, shedding
// polling load. The TTL must stay short: status is mid-transition data.
func (s *ReportService) WithCache(c *cache.Cache, ttl time.Duration) *ReportService {
	s.cache = c
	s.ttl = ttl
	return s
}

// Create validates the request, persists the queued report and submits
// it for generation.
func (s *ReportService) Create(userID uint, startDate, endDate string) (*domain.Report, error) {
	if startDate == "" || endDate == "" {
		return nil, domain.Validationf("start_date and end_date are required")
	}
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return nil, domain.Validationf("Invalid date format. Use YYYY-MM-DD format")
	}
	end, err := time.Parse(time.DateOnly, endDate)
	if err != nil {
		return nil, domain.Validationf("Invalid date format. Use YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, domain.Validationf("end_date must be after start_date")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User")
	}

	rep := &domain.Report{
		ProcessID: uuid.NewString(),
		UserID:    user.ID,
		Status:    domain.ReportQueued,
		Progress:  0,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.reports.Create(rep); err != nil {
		return nil, err
	}
	s.queue.Submit(rep.ID)
	return rep, nil
}

// Status resolves the report by its public token. Reads tolerate a row
// mid-transition; with a cache attached, polls within the TTL window may
// observe a value that was valid slightly earlier.
func (s *ReportService) Status(ctx context.Context, processID string) (*domain.Report, error) {
	if s.cache == nil {
		return s.findByToken(processID)
	}
	rep, err := cache.GetOrLoadJSON[domain.Report](s.cache, ctx, "report:status:"+processID, s.ttl,
		func(context.Context) (*domain.Report, error) {
			return s.findByToken(processID)
		})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Download returns the artifact bytes and suggested filename. The
// report must be completed and its backing file still present.
func (s *ReportService) Download(processID string) (string, []byte, error) {
	rep, err := s.findByToken(processID)
	if err != nil {
		return "", nil, err
	}
	if !rep.Completed() {
		return "", nil, &domain.NotReadyError{Status: rep.Status}
	}
	if !s.store.Exists(rep.FilePath) {
		return "", nil, domain.NotFound("Report file")
	}
	data, err := s.store.Read(rep.FilePath)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByID(rep.UserID)
	if err != nil {
		return "", nil, err
	}
	name := ""
	if user != nil {
		name = user.Name
	}
	return report.Filename(name, rep.StartDate, rep.EndDate), data, nil
}

func (s *ReportService) findByToken(processID string) (*domain.Report, error) {
	rep, err := s.reports.FindByProcessID(processID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, domain.NotFound("Report")
	}
	return rep, nil
}
