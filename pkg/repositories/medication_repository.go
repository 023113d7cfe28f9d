package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/database"
	"github.com/medscan-io/medscan-engine/pkg/models"
)

// MedicationRepository defines the interface for medication data access.
type MedicationRepository interface {
	// Create persists a medication together with the audit record for
	// the raw upload that produced it, in a single transaction.
	Create(ctx context.Context, medication *models.Medication, storageRef string) error

	// GetByID retrieves a medication by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error)

	// List returns medications in creation order, skipping skip rows
	// and returning at most limit. When profileID is non-nil, only
	// that profile's medications are returned.
	List(ctx context.Context, profileID *uuid.UUID, skip, limit int) ([]*models.Medication, error)
}

// medicationRepository implements MedicationRepository using PostgreSQL.
type medicationRepository struct {
	db *database.DB
}

// NewMedicationRepository creates a new medication repository.
func NewMedicationRepository(db *database.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

const medicationColumns = `id, profile_id, title, scan_date, active_ingredients,
	scanned_text, dosage, prescription_details, image_url, status`

// Create inserts a medication row and its uploaded_images audit row
// atomically. A failed insert leaves no trace of the upload.
func (r *medicationRepository) Create(ctx context.Context, medication *models.Medication, storageRef string) error {
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	if medication.ScanDate.IsZero() {
		medication.ScanDate = time.Now()
	}
	if medication.Status == "" {
		medication.Status = models.MedicationStatusPending
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO medication (id, profile_id, title, scan_date, active_ingredients,
			scanned_text, dosage, prescription_details, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(ctx, query,
		medication.ID,
		medication.ProfileID,
		medication.Title,
		medication.ScanDate,
		medication.ActiveIngredients,
		medication.ScannedText,
		medication.Dosage,
		medication.PrescriptionDetails,
		medication.ImageURL,
		medication.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO uploaded_images (id, storage_ref, uploaded_at) VALUES ($1, $2, $3)`,
		uuid.New(), storageRef, medication.ScanDate,
	)
	if err != nil {
		return fmt.Errorf("failed to record uploaded image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit medication: %w", err)
	}

	return nil
}

// GetByID retrieves a medication by ID.
func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medication WHERE id = $1`

	medication, err := scanMedication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}

	return medication, nil
}

// List returns medications ordered by scan date then ID so pagination
// is deterministic.
func (r *medicationRepository) List(ctx context.Context, profileID *uuid.UUID, skip, limit int) ([]*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medication`
	args := []any{}

	if profileID != nil {
		query += ` WHERE profile_id = $1`
		args = append(args, *profileID)
	}

	query += fmt.Sprintf(` ORDER BY scan_date, id OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	var medications []*models.Medication
	for rows.Next() {
		medication, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		medications = append(medications, medication)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read medications: %w", err)
	}

	return medications, nil
}

func scanMedication(row pgx.Row) (*models.Medication, error) {
	var medication models.Medication
	err := row.Scan(
		&medication.ID,
		&medication.ProfileID,
		&medication.Title,
		&medication.ScanDate,
		&medication.ActiveIngredients,
		&medication.ScannedText,
		&medication.Dosage,
		&medication.PrescriptionDetails,
		&medication.ImageURL,
		&medication.Status,
	)
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

// Ensure medicationRepository implements MedicationRepository at compile time.
var _ MedicationRepository = (*medicationRepository)(nil)
