package repository

import (
	"database/sql"
	"time"

	"github.com/daverett/reporter-finder/internal/model"

	"github.com/lib/pq"
)

type ReporterRepository struct {
	db *sql.DB
}

func NewReporterRepository(db *sql.DB) *ReporterRepository {
	return &ReporterRepository{db: db}
}

// Upsert registers a reporter name as pending. Returns the id and
// whether a new row was created.
func (r *ReporterRepository) Upsert(name string) (int64, bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO reporter(name, status)
		VALUES($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, name, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		err = r.db.QueryRow(`
			SELECT id FROM reporter WHERE name = $1
		`, name).Scan(&id)
		return id, false, err
	}

	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

func (r *ReporterRepository) GetByName(name string) (*model.Reporter, error) {
	var rep model.Reporter
	var enrichedAt sql.NullTime
	err := r.db.QueryRow(`
		SELECT id, name, email, status, enriched_at, created_at
		FROM reporter
		WHERE name = $1
	`, name).Scan(&rep.ID, &rep.Name, &rep.Email, &rep.Status, &enrichedAt, &rep.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if enrichedAt.Valid {
		rep.EnrichedAt = enrichedAt.Time
	}

	return &rep, nil
}

func (r *ReporterRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE reporter SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

// SaveEnrichment stores the email and profile and marks the reporter
// completed, all in one transaction.
func (r *ReporterRepository) SaveEnrichment(id int64, email string, profile *model.ReporterProfile) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE reporter SET email = $1, status = $2, enriched_at = $3 WHERE id = $4
	`, email, model.StatusCompleted, time.Now(), id)
	if err != nil {
		return err
	}

	if profile != nil {
		_, err = tx.Exec(`
			INSERT INTO reporter_profile(reporter_id, title, bio, twitter, linkedin, location, topics, sources, beats, pitch, model_used)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (reporter_id) DO UPDATE SET
				title = EXCLUDED.title,
				bio = EXCLUDED.bio,
				twitter = EXCLUDED.twitter,
				linkedin = EXCLUDED.linkedin,
				location = EXCLUDED.location,
				topics = EXCLUDED.topics,
				sources = EXCLUDED.sources,
				beats = EXCLUDED.beats,
				pitch = EXCLUDED.pitch,
				model_used = EXCLUDED.model_used
		`, id, profile.Title, profile.Bio, profile.Twitter, profile.LinkedIn, profile.Location,
			pq.Array(profile.Topics), pq.Array(profile.Sources), pq.Array(profile.Beats),
			profile.Pitch, profile.ModelUsed)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ReporterRepository) SaveError(reporterID int64, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(reporter_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, reporterID, errMsg, errType)

	return err
}

func (r *ReporterRepository) GetErrorCount(reporterID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE reporter_id = $1
	`, reporterID).Scan(&count)

	return count, err
}

func (r *ReporterRepository) GetReporters(limit int, offset int) ([]model.ReporterWithProfile, error) {
	rows, err := r.db.Query(`
		SELECT r.id, r.name, r.email, r.status, r.enriched_at, r.created_at,
			p.title, p.bio, p.twitter, p.linkedin, p.location, p.topics, p.sources, p.beats, p.pitch, p.model_used
		FROM reporter r
		LEFT JOIN reporter_profile p ON p.reporter_id = r.id
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reporters []model.ReporterWithProfile
	for rows.Next() {
		rep, err := scanReporterWithProfile(rows)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, *rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reporters, nil
}

func (r *ReporterRepository) GetReporterTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM reporter
	`).Scan(&total)
	return total, err
}

func (r *ReporterRepository) GetWithProfile(name string) (*model.ReporterWithProfile, error) {
	row := r.db.QueryRow(`
		SELECT r.id, r.name, r.email, r.status, r.enriched_at, r.created_at,
			p.title, p.bio, p.twitter, p.linkedin, p.location, p.topics, p.sources, p.beats, p.pitch, p.model_used
		FROM reporter r
		LEFT JOIN reporter_profile p ON p.reporter_id = r.id
		WHERE r.name = $1
	`, name)

	rep, err := scanReporterWithProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReporterWithProfile(row rowScanner) (*model.ReporterWithProfile, error) {
	var rep model.ReporterWithProfile
	var enrichedAt sql.NullTime
	var title, bio, twitter, linkedin, location, pitch, modelUsed sql.NullString
	var profileTopics, profileSources, profileBeats pq.StringArray

	err := row.Scan(
		&rep.ID, &rep.Name, &rep.Email, &rep.Status, &enrichedAt, &rep.CreatedAt,
		&title, &bio, &twitter, &linkedin, &location,
		&profileTopics, &profileSources, &profileBeats, &pitch, &modelUsed,
	)
	if err != nil {
		return nil, err
	}

	if enrichedAt.Valid {
		rep.EnrichedAt = enrichedAt.Time
	}

	if title.Valid || bio.Valid || len(profileTopics) > 0 || len(profileBeats) > 0 {
		rep.Profile = &model.ReporterProfile{
			ReporterID: rep.ID,
			Title:      title.String,
			Bio:        bio.String,
			Twitter:    twitter.String,
			LinkedIn:   linkedin.String,
			Location:   location.String,
			Topics:     profileTopics,
			Sources:    profileSources,
			Beats:      profileBeats,
			Pitch:      pitch.String,
			ModelUsed:  modelUsed.String,
		}
	}

	return &rep, nil
}
