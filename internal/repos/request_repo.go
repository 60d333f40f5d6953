package repos

import (
	"errors"
	"strings"

	"petlink/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrDuplicateRequest reports a second adoption request for the same
// (user, pet) pair.
var ErrDuplicateRequest = errors.New("adoption already requested")

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

// UserRequestRow is a request as shown on the requester's profile page.
type UserRequestRow struct {
	domain.AdoptionRequest
	PetName      string `db:"pet_name"`
	Breed        string `db:"breed"`
	CategoryName string `db:"category_name"`
}

// OwnerRequestRow is a request as shown on the owner dashboard, with the
// requester's contact details.
type OwnerRequestRow struct {
	domain.AdoptionRequest
	PetName     string `db:"pet_name"`
	Breed       string `db:"breed"`
	UserName    string `db:"user_name"`
	UserEmail   string `db:"user_email"`
	UserContact string `db:"user_contact"`
}

// Create inserts a pending request. The UNIQUE(user_id, pet_id) constraint
// enforces at-most-one-request-per-pair; hitting it maps to
// ErrDuplicateRequest rather than a server error.
func (r *RequestRepo) Create(userID, petID int64, message string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO adoption_requests(user_id, pet_id, message)
	  VALUES(?,?,?)
	`, userID, petID, message)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateRequest
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *RequestRepo) ListByUser(userID int64) ([]UserRequestRow, error) {
	var out []UserRequestRow
	err := r.db.Select(&out, `
	  SELECT ar.id, ar.user_id, ar.pet_id, ar.status, ar.message, ar.created_at,
	         p.name AS pet_name, p.breed, c.name AS category_name
	  FROM adoption_requests ar
	  JOIN pets p ON p.id = ar.pet_id
	  JOIN categories c ON c.id = p.category_id
	  WHERE ar.user_id = ?
	  ORDER BY ar.created_at DESC, ar.id DESC
	`, userID)
	return out, err
}

func (r *RequestRepo) ListByOwner(ownerID int64) ([]OwnerRequestRow, error) {
	var out []OwnerRequestRow
	err := r.db.Select(&out, `
	  SELECT ar.id, ar.user_id, ar.pet_id, ar.status, ar.message, ar.created_at,
	         p.name AS pet_name, p.breed,
	         u.name AS user_name, u.email AS user_email, u.contact AS user_contact
	  FROM adoption_requests ar
	  JOIN pets p ON p.id = ar.pet_id
	  JOIN users u ON u.id = ar.user_id
	  WHERE p.owner_id = ?
	  ORDER BY ar.created_at DESC, ar.id DESC
	`, ownerID)
	return out, err
}

// Decide moves a pending request to approved or rejected. The single UPDATE
// carries the whole authorization: the request must still be pending and its
// pet must belong to ownerID. Approval flips the pet to adopted in the same
// transaction; other pending requests for that pet are left untouched.
// Returns false when nothing matched (wrong owner, unknown id, or already
// decided).
func (r *RequestRepo) Decide(requestID, ownerID int64, status string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE adoption_requests SET status=?
	  WHERE id=? AND status='pending'
	    AND pet_id IN (SELECT id FROM pets WHERE owner_id=?)
	`, status, requestID, ownerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	if status == domain.RequestApproved {
		if _, err := tx.Exec(`
		  UPDATE pets SET adoption_status='adopted'
		  WHERE id = (SELECT pet_id FROM adoption_requests WHERE id=?)
		`, requestID); err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}
