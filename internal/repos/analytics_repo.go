package repos

import (
	"github.com/jmoiron/sqlx"
)

// AnalyticsRepo holds the owner-scoped aggregation queries behind the
// dashboard and the analytics JSON endpoint.
type AnalyticsRepo struct{ db *sqlx.DB }

func NewAnalyticsRepo(db *sqlx.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

type DashboardStats struct {
	TotalPets        int `db:"total_pets" json:"total_pets"`
	AvailablePets    int `db:"available_pets" json:"available_pets"`
	AdoptedPets      int `db:"adopted_pets" json:"adopted_pets"`
	TotalRequests    int `db:"total_requests" json:"total_requests"`
	PendingRequests  int `db:"pending_requests" json:"pending_requests"`
	ApprovedRequests int `db:"approved_requests" json:"approved_requests"`
	RejectedRequests int `db:"rejected_requests" json:"rejected_requests"`
}

// Stats computes the dashboard summary in one aggregate pass. Every count is
// coalesced so an owner with zero pets sees zeros, not nulls.
func (r *AnalyticsRepo) Stats(ownerID int64) (DashboardStats, error) {
	var s DashboardStats
	err := r.db.Get(&s, `
	  SELECT
	    COUNT(DISTINCT p.id) AS total_pets,
	    COALESCE(SUM(CASE WHEN p.adoption_status = 'available' THEN 1 ELSE 0 END), 0) AS available_pets,
	    COALESCE(SUM(CASE WHEN p.adoption_status = 'adopted' THEN 1 ELSE 0 END), 0) AS adopted_pets,
	    COUNT(DISTINCT ar.id) AS total_requests,
	    COALESCE(SUM(CASE WHEN ar.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_requests,
	    COALESCE(SUM(CASE WHEN ar.status = 'approved' THEN 1 ELSE 0 END), 0) AS approved_requests,
	    COALESCE(SUM(CASE WHEN ar.status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected_requests
	  FROM pets p
	  LEFT JOIN adoption_requests ar ON ar.pet_id = p.id
	  WHERE p.owner_id = ?
	`, ownerID)
	return s, err
}

type TopPetRow struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Breed         string `db:"breed" json:"breed"`
	ImageURL      string `db:"image_url" json:"image_url"`
	CategoryName  string `db:"category_name" json:"category_name"`
	RequestCount  int    `db:"request_count" json:"request_count"`
	ApprovedCount int    `db:"approved_count" json:"approved_count"`
	PendingCount  int    `db:"pending_count" json:"pending_count"`
}

// TopPets ranks the owner's pets by total request count, ties broken by
// name ascending.
func (r *AnalyticsRepo) TopPets(ownerID int64, limit int) ([]TopPetRow, error) {
	var out []TopPetRow
	err := r.db.Select(&out, `
	  SELECT p.id, p.name, p.breed, p.image_url, c.name AS category_name,
	         COUNT(ar.id) AS request_count,
	         COALESCE(SUM(CASE WHEN ar.status = 'approved' THEN 1 ELSE 0 END), 0) AS approved_count,
	         COALESCE(SUM(CASE WHEN ar.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_count
	  FROM pets p
	  LEFT JOIN adoption_requests ar ON ar.pet_id = p.id
	  JOIN categories c ON c.id = p.category_id
	  WHERE p.owner_id = ?
	  GROUP BY p.id
	  ORDER BY request_count DESC, p.name ASC
	  LIMIT ?
	`, ownerID, limit)
	return out, err
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

func (r *AnalyticsRepo) PetsByStatus(ownerID int64) ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.Select(&out, `
	  SELECT adoption_status AS status, COUNT(*) AS count
	  FROM pets
	  WHERE owner_id = ?
	  GROUP BY adoption_status
	`, ownerID)
	return out, err
}

func (r *AnalyticsRepo) RequestsByStatus(ownerID int64) ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.Select(&out, `
	  SELECT ar.status, COUNT(*) AS count
	  FROM adoption_requests ar
	  JOIN pets p ON p.id = ar.pet_id
	  WHERE p.owner_id = ?
	  GROUP BY ar.status
	`, ownerID)
	return out, err
}

type CategoryCount struct {
	Name     string `db:"name" json:"name"`
	PetCount int    `db:"pet_count" json:"pet_count"`
}

// CategoryDistribution counts the owner's pets per category; categories with
// no pets still appear with a zero.
func (r *AnalyticsRepo) CategoryDistribution(ownerID int64) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.Select(&out, `
	  SELECT c.name, COUNT(p.id) AS pet_count
	  FROM categories c
	  LEFT JOIN pets p ON p.category_id = c.id AND p.owner_id = ?
	  GROUP BY c.id
	  ORDER BY pet_count DESC, c.name ASC
	`, ownerID)
	return out, err
}

// ActivityEvent is one entry of the recent-activity feed. Two kinds exist:
// "request" (an adoption request and its current status) and "pet" (a
// listing added).
type ActivityEvent struct {
	Type        string `db:"type" json:"type"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	PetName     string `db:"pet_name" json:"pet_name"`
	UserName    string `db:"user_name" json:"user_name"`
	Status      string `db:"status" json:"status"`
	Description string `db:"description" json:"description"`
}

func (r *AnalyticsRepo) RecentRequestEvents(ownerID int64, limit int) ([]ActivityEvent, error) {
	var out []ActivityEvent
	err := r.db.Select(&out, `
	  SELECT 'request' AS type, COALESCE(ar.created_at,'') AS created_at,
	         p.name AS pet_name, u.name AS user_name, ar.status,
	         'Adoption request ' || ar.status || ' for ' || p.name AS description
	  FROM adoption_requests ar
	  JOIN pets p ON p.id = ar.pet_id
	  JOIN users u ON u.id = ar.user_id
	  WHERE p.owner_id = ?
	  ORDER BY ar.created_at DESC
	  LIMIT ?
	`, ownerID, limit)
	return out, err
}

func (r *AnalyticsRepo) RecentPetEvents(ownerID int64, limit int) ([]ActivityEvent, error) {
	var out []ActivityEvent
	err := r.db.Select(&out, `
	  SELECT 'pet' AS type, COALESCE(p.created_at,'') AS created_at,
	         p.name AS pet_name, '' AS user_name, p.adoption_status AS status,
	         'Pet ' || p.name || ' added' AS description
	  FROM pets p
	  WHERE p.owner_id = ?
	  ORDER BY p.created_at DESC
	  LIMIT ?
	`, ownerID, limit)
	return out, err
}
