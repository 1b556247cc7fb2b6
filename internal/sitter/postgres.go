package sitter

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// PostgresRepository implements Repository using PostgreSQL.
// Tag sets are stored as JSON-encoded arrays (see migrations/).
type PostgresRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sql.DB, logger *slog.Logger) *PostgresRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRepository{db: db, logger: logger}
}

const listAllQuery = `
	SELECT id, name, photo_url, rate, rating, review_count, repeat_client_count,
	       location, address, latitude, longitude, verified, top_sitter,
	       availability_updated_at, services, pet_types, dog_sizes,
	       certifications, special_needs, home_features, median_response_time
	FROM sitters
	ORDER BY id
`

// ListAll fetches every sitter record. Filtering happens in-process, so no
// predicates are pushed down here.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Sitter, error) {
	rows, err := r.db.QueryContext(ctx, listAllQuery)
	if err != nil {
		return nil, fmt.Errorf("list sitters: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Warn("failed to close sitter rows", "error", err)
		}
	}()

	var sitters []*Sitter
	for rows.Next() {
		s, err := scanSitter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sitter: %w", err)
		}
		sitters = append(sitters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sitters: %w", err)
	}
	return sitters, nil
}

// UpdateCoordinates persists resolved coordinates for one sitter by id.
// Per-record updates are independent; concurrent requests racing on the
// same sitter converge on equivalent geocoded values.
func (r *PostgresRepository) UpdateCoordinates(ctx context.Context, id int64, lat, lng float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sitters SET latitude = $1, longitude = $2, updated_at = NOW() WHERE id = $3`,
		lat, lng, id)
	if err != nil {
		return fmt.Errorf("update sitter %d coordinates: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sitter %d coordinates: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update sitter %d coordinates: %w", id, ErrSitterNotFound)
	}
	return nil
}

// scanSitter maps one row onto a Sitter, decoding the JSON tag columns.
func scanSitter(rows *sql.Rows) (*Sitter, error) {
	var (
		s              Sitter
		lat, lng       sql.NullFloat64
		medianResponse sql.NullFloat64
		services       []byte
		petTypes       []byte
		dogSizes       []byte
		certifications []byte
		specialNeeds   []byte
		homeFeatures   []byte
	)

	err := rows.Scan(
		&s.ID, &s.Name, &s.PhotoURL, &s.Rate, &s.Rating, &s.ReviewCount,
		&s.RepeatClientCount, &s.Location, &s.Address, &lat, &lng,
		&s.Verified, &s.TopSitter, &s.AvailabilityUpdatedAt,
		&services, &petTypes, &dogSizes, &certifications,
		&specialNeeds, &homeFeatures, &medianResponse,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lng.Valid {
		s.Longitude = &lng.Float64
	}
	if medianResponse.Valid {
		s.MedianResponseTime = &medianResponse.Float64
	}

	for _, col := range []struct {
		raw  []byte
		dest *[]string
	}{
		{services, &s.Services},
		{petTypes, &s.PetTypes},
		{dogSizes, &s.DogSizes},
		{certifications, &s.Certifications},
		{specialNeeds, &s.SpecialNeeds},
		{homeFeatures, &s.HomeFeatures},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, fmt.Errorf("decode tag column for sitter %d: %w", s.ID, err)
		}
	}

	return &s, nil
}
