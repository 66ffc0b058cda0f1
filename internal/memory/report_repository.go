package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alorle/smogwatch/internal/report"
)

// ReportRepository keeps reports in process memory. It backs one-off CLI
// searches that should not touch the database.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]report.Report
}

// NewReportRepository creates an empty repository.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[string]report.Report)}
}

// Save stores rep, replacing any earlier report for the same country.
func (r *ReportRepository) Save(ctx context.Context, rep report.Report) error {
	if rep.Country.Slug() == "" {
		return report.ErrEmptyCountry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[rep.Country.Slug()] = rep
	return nil
}

// FindBySlug returns the report for a country code or report.ErrReportNotFound.
func (r *ReportRepository) FindBySlug(ctx context.Context, slug string) (report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[slug]
	if !ok {
		return report.Report{}, report.ErrReportNotFound
	}
	return rep, nil
}

// FindRecent returns up to limit reports, most recently fetched first.
// A limit of zero or less returns all of them.
func (r *ReportRepository) FindRecent(ctx context.Context, limit int) ([]report.Report, error) {
	r.mu.RLock()
	reports := make([]report.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		reports = append(reports, rep)
	}
	r.mu.RUnlock()

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].FetchedAt.After(reports[j].FetchedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Ping always succeeds.
func (r *ReportRepository) Ping(ctx context.Context) error {
	return nil
}
