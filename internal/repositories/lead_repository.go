package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "travelbuddies/internal/config"
	"travelbuddies/internal/domain/models"
)

var ErrNoStore = errors.New("lead store not configured")

const leadsTableDDL = `CREATE TABLE IF NOT EXISTS leads (
	id             CHAR(36)     NOT NULL PRIMARY KEY,
	kind           VARCHAR(16)  NOT NULL,
	trip_id        VARCHAR(128) NOT NULL DEFAULT '',
	trip_name      VARCHAR(255) NOT NULL DEFAULT '',
	full_name      VARCHAR(255) NOT NULL,
	email          VARCHAR(255) NOT NULL,
	phone          VARCHAR(32)  NOT NULL DEFAULT '',
	travelers      VARCHAR(8)   NOT NULL DEFAULT '',
	preferred_date VARCHAR(32)  NOT NULL DEFAULT '',
	subject        VARCHAR(255) NOT NULL DEFAULT '',
	message        TEXT         NOT NULL,
	created_at     DATETIME     NOT NULL,
	KEY idx_leads_kind_created (kind, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// LeadRepository stores received leads in MySQL.
type LeadRepository struct {
	DB *sql.DB
}

func (r LeadRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Enabled reports whether a database is attached.
func (r LeadRepository) Enabled() bool {
	return r.db() != nil
}

func (r LeadRepository) EnsureTable(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return ErrNoStore
	}
	_, err := db.ExecContext(ctx, leadsTableDDL)
	return err
}

func (r LeadRepository) Insert(ctx context.Context, l models.Lead) error {
	db := r.db()
	if db == nil {
		return ErrNoStore
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO leads (id, kind, trip_id, trip_name, full_name, email, phone, travelers, preferred_date, subject, message, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		l.ID, string(l.Kind), l.TripID, l.TripName, l.FullName, l.Email, l.Phone,
		l.Travelers, l.PreferredDate, l.Subject, l.Message, l.CreatedAt,
	)
	return err
}

// ListRecent returns the newest leads first. kind "" lists every kind.
func (r LeadRepository) ListRecent(ctx context.Context, kind string, limit int) ([]models.Lead, error) {
	db := r.db()
	if db == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	where := ""
	args := []any{}
	if k := strings.ToLower(strings.TrimSpace(kind)); k != "" {
		where = "WHERE kind = ?"
		args = append(args, k)
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, trip_id, trip_name, full_name, email, phone, travelers, preferred_date, subject, message, created_at
		FROM leads `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Lead{}
	for rows.Next() {
		var (
			l    models.Lead
			kind string
		)
		if err := rows.Scan(
			&l.ID, &kind, &l.TripID, &l.TripName, &l.FullName, &l.Email, &l.Phone,
			&l.Travelers, &l.PreferredDate, &l.Subject, &l.Message, &l.CreatedAt,
		); err != nil {
			return out, err
		}
		l.Kind = models.LeadKind(kind)
		out = append(out, l)
	}
	return out, rows.Err()
}
