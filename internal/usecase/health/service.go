package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	checks []dependencyCheck
}

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

// New creates a Service. cache can be nil when no result cache is configured.
func New(engine EngineChecker, cache CachePinger) *Service {
	checks := []dependencyCheck{{name: "engine", check: engine.Ready}}
	if cache != nil {
		checks = append(checks, dependencyCheck{name: "cache", check: cache.Ping})
	}
	return &Service{checks: checks}
}

// Check runs every dependency check. Any failing check degrades the whole report.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Status: Healthy, Checks: make(map[string]CheckResult, len(s.checks))}
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			report.Checks[c.name] = CheckError
			report.Status = Degraded
			continue
		}
		report.Checks[c.name] = CheckOK
	}
	return report
}
