package repos

import (
	"petlink/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CareRepo struct{ db *sqlx.DB }

func NewCareRepo(db *sqlx.DB) *CareRepo { return &CareRepo{db: db} }

type PostRow struct {
	domain.CarePost
	AuthorName   string `db:"author_name"`
	CommentCount int    `db:"comment_count"`
}

type CommentRow struct {
	domain.CareComment
	AuthorName string `db:"author_name"`
}

func (r *CareRepo) ListPosts() ([]PostRow, error) {
	var out []PostRow
	err := r.db.Select(&out, `
	  SELECT cp.id, cp.user_id, cp.title, cp.content, cp.created_at,
	         u.name AS author_name,
	         (SELECT COUNT(*) FROM care_comments WHERE post_id = cp.id) AS comment_count
	  FROM care_posts cp
	  JOIN users u ON u.id = cp.user_id
	  ORDER BY cp.created_at DESC, cp.id DESC
	`)
	return out, err
}

func (r *CareRepo) GetPost(id int64) (PostRow, error) {
	var p PostRow
	err := r.db.Get(&p, `
	  SELECT cp.id, cp.user_id, cp.title, cp.content, cp.created_at,
	         u.name AS author_name,
	         (SELECT COUNT(*) FROM care_comments WHERE post_id = cp.id) AS comment_count
	  FROM care_posts cp
	  JOIN users u ON u.id = cp.user_id
	  WHERE cp.id = ?
	`, id)
	return p, err
}

func (r *CareRepo) CreatePost(userID int64, title, content string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO care_posts(user_id, title, content) VALUES(?,?,?)
	`, userID, title, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CareRepo) Comments(postID int64) ([]CommentRow, error) {
	var out []CommentRow
	err := r.db.Select(&out, `
	  SELECT cc.id, cc.post_id, cc.user_id, cc.content, cc.created_at,
	         u.name AS author_name
	  FROM care_comments cc
	  JOIN users u ON u.id = cc.user_id
	  WHERE cc.post_id = ?
	  ORDER BY cc.created_at ASC, cc.id ASC
	`, postID)
	return out, err
}

// PostExists is checked before inserting a comment so an unknown post id
// comes back as a user-facing failure rather than a constraint error.
func (r *CareRepo) PostExists(postID int64) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM care_posts WHERE id=?`, postID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CareRepo) AddComment(postID, userID int64, content string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO care_comments(post_id, user_id, content) VALUES(?,?,?)
	`, postID, userID, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
