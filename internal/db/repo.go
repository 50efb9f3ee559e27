package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"menoassist-chatbot/pkg"

	"github.com/google/uuid"
)

// firstUserID is the identifier handed to the very first user when no records
// exist yet.  Later ids are max(persisted)+1, so allocation is monotonic and
// collision-free against prior records.
const firstUserID = 1000

// Repository wraps database operations for funnel records and consultations.
// A single postgres database backs this implementation.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a new Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// SaveRecord persists the accumulated answer map for a user under a stage
// label.  It is called when a user completes the funnel and again when a
// consultation is submitted.
func (r *Repository) SaveRecord(ctx context.Context, userID int64, stage string, answers pkg.Answers) error {
	blob, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO funnel_records (user_id, stage, answers)
         VALUES ($1, $2, $3)`,
		userID, stage, blob,
	)
	return err
}

// NextUserID allocates the next unused user identifier: one past the highest
// identifier ever persisted, starting at 1000.
func (r *Repository) NextUserID(ctx context.Context) (int64, error) {
	var next int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(user_id), $1 - 1) + 1 FROM funnel_records`,
		firstUserID,
	).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// SaveConsultation records a booked consultation and returns its id.
func (r *Repository) SaveConsultation(ctx context.Context, userID int64, name, email string, appointmentAt time.Time) (string, error) {
	id := uuid.New()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO consultations (id, user_id, name, email, appointment_at)
         VALUES ($1, $2, $3, $4, $5)`,
		id, userID, name, email, appointmentAt,
	)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
