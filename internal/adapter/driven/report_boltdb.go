package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/country"
	"github.com/alorle/smogwatch/internal/report"
)

const (
	reportsBucket = "reports"
)

// ReportBoltDBRepository implements the ReportRepository port using BoltDB.
// Reports are keyed by country slug, so each country keeps only its latest report.
type ReportBoltDBRepository struct {
	db *bbolt.DB
}

// NewReportBoltDBRepository creates a new BoltDB-backed report repository.
// It initializes the required bucket if it doesn't exist.
func NewReportBoltDBRepository(db *bbolt.DB) (*ReportBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(reportsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ReportBoltDBRepository{db: db}, nil
}

// reportDTO is used for JSON serialization.
type reportDTO struct {
	ID          string    `json:"id"`
	CountryName string    `json:"country_name"`
	CountrySlug string    `json:"country_slug"`
	Cities      []cityDTO `json:"cities"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type cityDTO struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

func toReportDTO(r report.Report) reportDTO {
	cities := make([]cityDTO, len(r.Cities))
	for i, c := range r.Cities {
		cities[i] = cityDTO(c)
	}
	return reportDTO{
		ID:          r.ID.String(),
		CountryName: r.Country.Name(),
		CountrySlug: r.Country.Slug(),
		Cities:      cities,
		FetchedAt:   r.FetchedAt,
	}
}

func (dto reportDTO) toDomain() (report.Report, error) {
	ctry, err := country.NewCountry(dto.CountryName, dto.CountrySlug)
	if err != nil {
		return report.Report{}, fmt.Errorf("decoding country %q: %w", dto.CountrySlug, err)
	}
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return report.Report{}, fmt.Errorf("decoding report id: %w", err)
	}
	cities := make([]city.City, len(dto.Cities))
	for i, c := range dto.Cities {
		cities[i] = city.City(c)
	}
	return report.Report{
		ID:        id,
		Country:   ctry,
		Cities:    cities,
		FetchedAt: dto.FetchedAt,
	}, nil
}

// Save persists a report, replacing the previous one for the same country.
func (r *ReportBoltDBRepository) Save(ctx context.Context, rep report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rep.Country.Slug() == "" {
		return report.ErrEmptyCountry
	}

	data, err := json.Marshal(toReportDTO(rep))
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(reportsBucket))
		if bucket == nil {
			return errors.New("reports bucket not found")
		}
		return bucket.Put([]byte(rep.Country.Slug()), data)
	})
}

// FindBySlug retrieves the report of a country from BoltDB.
func (r *ReportBoltDBRepository) FindBySlug(ctx context.Context, slug string) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	var rep report.Report

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(reportsBucket))
		if bucket == nil {
			return errors.New("reports bucket not found")
		}

		data := bucket.Get([]byte(slug))
		if data == nil {
			return report.ErrReportNotFound
		}

		var dto reportDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return err
		}

		decoded, err := dto.toDomain()
		if err != nil {
			return err
		}
		rep = decoded
		return nil
	})

	return rep, err
}

// FindRecent retrieves up to limit reports, most recently fetched first.
func (r *ReportBoltDBRepository) FindRecent(ctx context.Context, limit int) ([]report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reports := []report.Report{}

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(reportsBucket))
		if bucket == nil {
			return errors.New("reports bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var dto reportDTO
			if err := json.Unmarshal(v, &dto); err != nil {
				return err
			}
			rep, err := dto.toDomain()
			if err != nil {
				return err
			}
			reports = append(reports, rep)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].FetchedAt.After(reports[j].FetchedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}

// Ping checks that the database is open and the bucket is readable.
func (r *ReportBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(reportsBucket)) == nil {
			return errors.New("reports bucket not found")
		}
		return nil
	})
}
