package domain

// Adoption status values for a pet.
const (
	PetAvailable = "available"
	PetAdopted   = "adopted"
)

// Adoption request status values.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Pet struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	CategoryID     int64  `db:"category_id"`
	Breed          string `db:"breed"`
	Age            int    `db:"age"`
	HealthDetails  string `db:"health_details"`
	MedicalDetails string `db:"medical_details"`
	AdoptionStatus string `db:"adoption_status"` // available | adopted
	ImageURL       string `db:"image_url"`
	OwnerID        int64  `db:"owner_id"`
	CreatedAt      string `db:"created_at"`
}

type AdoptionRequest struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	PetID     int64  `db:"pet_id"`
	Status    string `db:"status"` // pending | approved | rejected
	Message   string `db:"message"`
	CreatedAt string `db:"created_at"`
}

type CarePost struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Title     string `db:"title"`
	Content   string `db:"content"`
	CreatedAt string `db:"created_at"`
}

type CareComment struct {
	ID        int64  `db:"id"`
	PostID    int64  `db:"post_id"`
	UserID    int64  `db:"user_id"`
	Content   string `db:"content"`
	CreatedAt string `db:"created_at"`
}
