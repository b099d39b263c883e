package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"itinerate/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func destinationKey(d string) string { return strings.ToLower(strings.TrimSpace(d)) }

func (r *Repo) UpsertAttraction(ctx context.Context, destination string, a domain.Attraction) error {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)
	_, err := r.db.ExecContext(ctx, upsertAttractionSQL,
		destinationKey(destination),
		strings.TrimSpace(destination),
		a.ID,
		a.Name,
		string(tagsJSON),
		valStr(a.Description),
		a.EntryFee,
		a.AvgTimeSpentHrs,
		a.EffortScore,
		valStr(a.EffortDetails),
	)
	return err
}

// Attractions returns the destination's catalog; an unknown destination
// yields an empty slice.
func (r *Repo) Attractions(ctx context.Context, destination string) ([]domain.Attraction, error) {
	rows, err := r.db.QueryContext(ctx, listAttractionsSQL, destinationKey(destination))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Attraction{}
	for rows.Next() {
		var (
			a             domain.Attraction
			tagsJSON      []byte
			desc, details sql.NullString
			avgTime       sql.NullFloat64
		)
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&tagsJSON,
			&desc,
			&a.EntryFee,
			&avgTime,
			&a.EffortScore,
			&details,
		); err != nil {
			return nil, err
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &a.Tags); err != nil {
				return nil, fmt.Errorf("attraction %d: decode tags: %w", a.ID, err)
			}
		}
		if a.Tags == nil {
			a.Tags = []string{}
		}
		if desc.Valid {
			a.Description = desc.String
		}
		if details.Valid {
			a.EffortDetails = details.String
		}
		if avgTime.Valid {
			a.AvgTimeSpentHrs = avgTime.Float64
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Destinations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
