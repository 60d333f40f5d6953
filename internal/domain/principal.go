package domain

// Session roles. Users adopt pets; owners list them. The two principal
// types live in separate tables with separate credential stores.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

type User struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Hash      string `db:"password_hash"`
	Contact   string `db:"contact"`
	Address   string `db:"address"`
	CreatedAt string `db:"created_at"`
}

type Owner struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Hash      string `db:"password_hash"`
	Contact   string `db:"contact"`
	CreatedAt string `db:"created_at"`
}

// Session is the authenticated principal attached to a request.
type Session struct {
	PrincipalID int64  `db:"principal_id"`
	Role        string `db:"role"` // user | owner
	Name        string `db:"name"`
}

func (s *Session) IsUser() bool  { return s != nil && s.Role == RoleUser }
func (s *Session) IsOwner() bool { return s != nil && s.Role == RoleOwner }
