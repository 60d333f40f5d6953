package repos

import (
	"github.com/jmoiron/sqlx"
)

type LikeRepo struct{ db *sqlx.DB }

func NewLikeRepo(db *sqlx.DB) *LikeRepo { return &LikeRepo{db: db} }

// Toggle flips the like state for (petID, userID) and returns the resulting
// state plus the fresh total, all inside one transaction so the count can
// never drift from the mutation it reports.
func (r *LikeRepo) Toggle(petID, userID int64) (liked bool, count int, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM pet_likes WHERE pet_id=? AND user_id=?`, petID, userID)
	if err != nil {
		return false, 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.Exec(`INSERT INTO pet_likes(pet_id, user_id) VALUES(?,?)`, petID, userID); err != nil {
			return false, 0, err
		}
		liked = true
	}

	if err := tx.Get(&count, `SELECT COUNT(*) FROM pet_likes WHERE pet_id=?`, petID); err != nil {
		return false, 0, err
	}

	return liked, count, tx.Commit()
}
