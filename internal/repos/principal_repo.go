package repos

import (
	"errors"
	"strings"

	"petlink/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrEmailTaken reports a registration against an email that already has an
// account.
var ErrEmailTaken = errors.New("email already exists")

// PrincipalRepo covers both credential stores (users, owners) and the
// session table that binds a sid cookie to whichever principal logged in.
type PrincipalRepo struct{ DB *sqlx.DB }

func NewPrincipalRepo(db *sqlx.DB) *PrincipalRepo { return &PrincipalRepo{DB: db} }

func (r *PrincipalRepo) CreateUser(name, email, hash, contact, address string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users(name,email,password_hash,contact,address)
		VALUES(?,?,?,?,?)
	`, name, email, hash, contact, address)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *PrincipalRepo) UserByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,contact,address,created_at
		FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PrincipalRepo) UserByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,contact,address,created_at
		FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PrincipalRepo) OwnerByEmail(email string) (*domain.Owner, error) {
	var o domain.Owner
	err := r.DB.Get(&o, `
		SELECT id,name,email,password_hash,contact,created_at
		FROM owners WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PrincipalRepo) UpdateUser(id int64, name, contact, address string) error {
	_, err := r.DB.Exec(`UPDATE users SET name=?, contact=?, address=? WHERE id=?`,
		name, contact, address, id)
	return err
}

func (r *PrincipalRepo) UpdateUserPassword(id int64, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	return err
}

// DeleteUserCascade removes a user and everything they authored. Comments on
// their posts go with the posts via the FK cascade; comments they left on
// other posts are deleted explicitly.
func (r *PrincipalRepo) DeleteUserCascade(userID int64) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM adoption_requests WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pet_likes WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM care_comments WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM care_posts WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE principal_id=? AND role='user'`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}

// ---------- Sessions ----------

func (r *PrincipalRepo) BindSession(sid string, principalID int64, role, name string) error {
	_, err := r.DB.Exec(`
		INSERT INTO sessions(id,principal_id,role,name,last_seen)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  principal_id=excluded.principal_id, role=excluded.role,
		  name=excluded.name, last_seen=CURRENT_TIMESTAMP
	`, sid, principalID, role, name)
	return err
}

func (r *PrincipalRepo) Session(sid string) (*domain.Session, error) {
	var s domain.Session
	err := r.DB.Get(&s, `
		SELECT principal_id, role, name FROM sessions
		WHERE id=? AND principal_id IS NOT NULL`, sid)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PrincipalRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`
		UPDATE sessions SET principal_id=NULL, role=NULL, name=NULL, last_seen=CURRENT_TIMESTAMP
		WHERE id=?`, sid)
	return err
}

// RenameSessions keeps the cached display name in step after a profile edit.
func (r *PrincipalRepo) RenameSessions(principalID int64, role, name string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET name=? WHERE principal_id=? AND role=?`,
		name, principalID, role)
	return err
}
