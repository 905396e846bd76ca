package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names as they appear in Report.Checks.
const (
	ComponentSource = "source"
	ComponentCache  = "cache"
)

const defaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	source  SourceChecker
	cache   CachePinger
	timeout time.Duration
}

// New creates a Service. cache can be nil when no cache server is configured.
func New(source SourceChecker, cache CachePinger) *Service {
	return &Service{source: source, cache: cache, timeout: defaultCheckTimeout}
}

// WithTimeout bounds every individual check.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs all component checks concurrently.
// Every component failing is Unhealthy; some failing is Degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var mu sync.Mutex
	record := func(name string, err error) {
		res := CheckOK
		if err != nil {
			res = CheckError
		}
		mu.Lock()
		checks[name] = res
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, check func(context.Context) error) {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()
			record(name, check(cctx))
			return nil // a failed check must not cancel its siblings
		})
	}

	run(ComponentSource, s.source.HealthCheck)
	if s.cache != nil {
		run(ComponentCache, s.cache.Ping)
	}
	_ = g.Wait()

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
