package repos

import (
	"petlink/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PetRepo struct{ db *sqlx.DB }

func NewPetRepo(db *sqlx.DB) *PetRepo { return &PetRepo{db: db} }

// PetCard is a pet row annotated for listings: category name, like count and
// whether the viewing user has liked it.
type PetCard struct {
	domain.Pet
	CategoryName string `db:"category_name"`
	LikeCount    int    `db:"like_count"`
	IsLiked      bool   `db:"is_liked"`
}

// PetDetailRow adds the owner's public contact details to a card.
type PetDetailRow struct {
	PetCard
	OwnerName    string `db:"owner_name"`
	OwnerContact string `db:"owner_contact"`
}

const petCardCols = `
  p.id, p.name, p.category_id, p.breed, p.age, p.health_details, p.medical_details,
  p.adoption_status, p.image_url, p.owner_id, p.created_at,
  c.name AS category_name,
  COUNT(DISTINCT pl.id) AS like_count`

// ListAvailable returns available pets, newest first, optionally filtered by
// category name. viewerID 0 means anonymous (is_liked always false).
func (r *PetRepo) ListAvailable(viewerID int64, categoryName string, limit int) ([]PetCard, error) {
	where := `p.adoption_status = 'available'`
	args := []any{viewerID}
	if categoryName != "" {
		where += ` AND c.name = ?`
		args = append(args, categoryName)
	}

	// the viewer placeholder in the SELECT clause binds first
	sql := `
	  SELECT` + petCardCols + `,
	    MAX(CASE WHEN pl.user_id = ? THEN 1 ELSE 0 END) AS is_liked
	  FROM pets p
	  JOIN categories c ON c.id = p.category_id
	  LEFT JOIN pet_likes pl ON pl.pet_id = p.id
	  WHERE ` + where + `
	  GROUP BY p.id
	  ORDER BY p.created_at DESC, p.id DESC
	  LIMIT ?`
	args = append(args, limit)

	var out []PetCard
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// Search matches available-or-any pets whose name or breed contains q
// (case-insensitive). No viewer annotation; capped by limit.
func (r *PetRepo) Search(q, status string, limit int) ([]PetCard, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(p.name) LIKE ? OR LOWER(p.breed) LIKE ?)`
		pat := "%" + q + "%"
		args = append(args, pat, pat)
	}
	if status != "" && status != "all" {
		where += ` AND p.adoption_status = ?`
		args = append(args, status)
	}

	sql := `
	  SELECT` + petCardCols + `,
	    0 AS is_liked
	  FROM pets p
	  JOIN categories c ON c.id = p.category_id
	  LEFT JOIN pet_likes pl ON pl.pet_id = p.id
	  WHERE ` + where + `
	  GROUP BY p.id
	  ORDER BY p.created_at DESC, p.id DESC
	  LIMIT ?`
	args = append(args, limit)

	var out []PetCard
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// Detail loads one pet with owner contact info and like annotations.
func (r *PetRepo) Detail(petID, viewerID int64) (PetDetailRow, error) {
	var row PetDetailRow
	err := r.db.Get(&row, `
	  SELECT`+petCardCols+`,
	    MAX(CASE WHEN pl.user_id = ? THEN 1 ELSE 0 END) AS is_liked,
	    o.name AS owner_name, o.contact AS owner_contact
	  FROM pets p
	  JOIN categories c ON c.id = p.category_id
	  JOIN owners o ON o.id = p.owner_id
	  LEFT JOIN pet_likes pl ON pl.pet_id = p.id
	  WHERE p.id = ?
	  GROUP BY p.id
	`, viewerID, petID)
	return row, err
}

// ListByOwner returns all of an owner's pets with category names, newest first.
func (r *PetRepo) ListByOwner(ownerID int64) ([]PetCard, error) {
	var out []PetCard
	err := r.db.Select(&out, `
	  SELECT`+petCardCols+`,
	    0 AS is_liked
	  FROM pets p
	  JOIN categories c ON c.id = p.category_id
	  LEFT JOIN pet_likes pl ON pl.pet_id = p.id
	  WHERE p.owner_id = ?
	  GROUP BY p.id
	  ORDER BY p.created_at DESC, p.id DESC
	`, ownerID)
	return out, err
}

func (r *PetRepo) Create(p domain.Pet) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO pets(name, category_id, breed, age, health_details, medical_details, image_url, owner_id)
	  VALUES(?,?,?,?,?,?,?,?)
	`, p.Name, p.CategoryID, p.Breed, p.Age, p.HealthDetails, p.MedicalDetails, p.ImageURL, p.OwnerID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update mutates a pet only when it belongs to ownerID; the ownership filter
// lives in the UPDATE itself so there is no check-then-act window. Returns
// false when no row matched.
func (r *PetRepo) Update(petID, ownerID int64, p domain.Pet) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE pets SET name=?, category_id=?, breed=?, age=?,
	    health_details=?, medical_details=?, image_url=?, adoption_status=?
	  WHERE id=? AND owner_id=?
	`, p.Name, p.CategoryID, p.Breed, p.Age, p.HealthDetails, p.MedicalDetails,
		p.ImageURL, p.AdoptionStatus, petID, ownerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a pet only when it belongs to ownerID.
func (r *PetRepo) Delete(petID, ownerID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM pets WHERE id=? AND owner_id=?`, petID, ownerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
