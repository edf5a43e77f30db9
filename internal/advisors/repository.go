package advisors

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investguard/investguard/internal/engine"
)

// Repository is the pgx-backed advisor directory. It doubles as the engine's
// advisor registry.
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ AdvisorRepository = (*Repository)(nil)

// NewRepository creates a new advisors repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LookupByLicense returns the registry record for a normalized license number
func (r *Repository) LookupByLicense(ctx context.Context, licenseNumber string) (*engine.AdvisorRecord, error) {
	query := `
		SELECT license_number, name
		FROM advisors
		WHERE license_number = $1
	`

	var record engine.AdvisorRecord
	err := r.db.QueryRow(ctx, query, engine.NormalizeLicense(licenseNumber)).Scan(
		&record.LicenseNumber,
		&record.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("license %s: %w", licenseNumber, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up license: %w", err)
	}

	return &record, nil
}

// SearchByName returns registry records whose name shares at least one token
// with the query. The engine applies its own similarity scoring on top.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]*engine.AdvisorRecord, error) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(tokens) == 0 {
		return nil, nil
	}

	patterns := make([]string, len(tokens))
	for i, token := range tokens {
		patterns[i] = "%" + token + "%"
	}

	query := `
		SELECT license_number, name
		FROM advisors
		WHERE lower(name) LIKE ANY($1)
		LIMIT 50
	`

	rows, err := r.db.Query(ctx, query, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to search advisors: %w", err)
	}
	defer rows.Close()

	var records []*engine.AdvisorRecord
	for rows.Next() {
		var record engine.AdvisorRecord
		if err := rows.Scan(&record.LicenseNumber, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan advisor record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advisor records: %w", err)
	}

	return records, nil
}

// GetByLicense retrieves the full directory entry for a license number
func (r *Repository) GetByLicense(ctx context.Context, licenseNumber string) (*Advisor, error) {
	query := `
		SELECT id, license_number, name, registration_date, status, firm,
		       email, phone, specializations, created_at
		FROM advisors
		WHERE license_number = $1
	`

	advisor, err := scanAdvisor(r.db.QueryRow(ctx, query, engine.NormalizeLicense(licenseNumber)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("advisor %s: %w", licenseNumber, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get advisor: %w", err)
	}

	return advisor, nil
}

// ListAdvisors retrieves directory entries ordered by name
func (r *Repository) ListAdvisors(ctx context.Context, limit, offset int) ([]*Advisor, int64, error) {
	query := `
		SELECT id, license_number, name, registration_date, status, firm,
		       email, phone, specializations, created_at
		FROM advisors
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advisors: %w", err)
	}
	defer rows.Close()

	var advisors []*Advisor
	for rows.Next() {
		advisor, err := scanAdvisor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan advisor: %w", err)
		}
		advisors = append(advisors, advisor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate advisors: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM advisors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count advisors: %w", err)
	}

	return advisors, total, nil
}

// GetDirectoryStats counts directory entries by registration status
func (r *Repository) GetDirectoryStats(ctx context.Context) (*DirectoryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'suspended'),
			COUNT(*) FILTER (WHERE status = 'revoked')
		FROM advisors
	`

	var stats DirectoryStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Active,
		&stats.Suspended,
		&stats.Revoked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get directory stats: %w", err)
	}

	return &stats, nil
}

func scanAdvisor(row pgx.Row) (*Advisor, error) {
	var advisor Advisor
	var registrationDate sql.NullTime
	var specializationsJSON []byte

	err := row.Scan(
		&advisor.ID,
		&advisor.LicenseNumber,
		&advisor.Name,
		&registrationDate,
		&advisor.Status,
		&advisor.Firm,
		&advisor.Email,
		&advisor.Phone,
		&specializationsJSON,
		&advisor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if registrationDate.Valid {
		advisor.RegistrationDate = &registrationDate.Time
	}
	if len(specializationsJSON) > 0 {
		if err := json.Unmarshal(specializationsJSON, &advisor.Specializations); err != nil {
			return nil, err
		}
	}

	return &advisor, nil
}
