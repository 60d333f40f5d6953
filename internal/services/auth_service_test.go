package services_test

import (
	"errors"
	"testing"

	"petlink/internal/repos"
	"petlink/internal/services"
)

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	if err := svc.RegisterUser("Bob", "bob@petlink.test", "hunter22", "+1", "1 Main St"); err != nil {
		t.Fatal(err)
	}
	err := svc.RegisterUser("Bobby", "BOB@petlink.test", "hunter22", "+1", "1 Main St")
	if !errors.Is(err, repos.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken for case-folded duplicate, got %v", err)
	}
}

func TestLogin_RolesAreDisjoint(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	// seeded user credentials do not open an owner session
	if _, err := svc.LoginOwner("sid-1", "alice@petlink.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("user creds must fail owner login, got %v", err)
	}
	// and owner credentials do not open a user session
	if _, err := svc.LoginUser("sid-1", "admin@petlink.com", "admin123"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("owner creds must fail user login, got %v", err)
	}

	sess, err := svc.LoginOwner("sid-1", "admin@petlink.com", "admin123")
	if err != nil {
		t.Fatal(err)
	}
	if !sess.IsOwner() || sess.PrincipalID != seededOwner {
		t.Fatalf("want owner session for principal 1, got %+v", sess)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	if _, err := svc.LoginUser("sid-1", "alice@petlink.test", "wrong"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.LoginUser("sid-1", "nobody@petlink.test", "whatever"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email must fail the same way, got %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	if _, err := svc.LoginUser("sid-rt", "alice@petlink.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	sess, err := svc.Current("sid-rt")
	if err != nil {
		t.Fatal(err)
	}
	if !sess.IsUser() || sess.Name != "Alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := svc.Logout("sid-rt"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Current("sid-rt"); err == nil {
		t.Fatal("session must be gone after logout")
	}
}

func TestUpdateProfile_RenamesLiveSessions(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	sess, err := svc.LoginUser("sid-up", "alice@petlink.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateProfile(sess.PrincipalID, "Alice Renamed", "+9", "2 Oak Ave", "NewPassw0rd!"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Current("sid-up")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice Renamed" {
		t.Fatalf("session name not refreshed: %+v", got)
	}

	// old password dead, new one works
	if _, err := svc.LoginUser("sid-2", "alice@petlink.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.LoginUser("sid-2", "alice@petlink.test", "NewPassw0rd!"); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteUser_WrongPasswordKeepsAccount(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	sess, err := svc.LoginUser("sid-del", "alice@petlink.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(sess.PrincipalID, "wrong"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Current("sid-del"); err != nil {
		t.Fatal("a failed delete must not touch the session")
	}
}

func TestDeleteUser_CascadesEverything(t *testing.T) {
	db := memdb(t)
	auth := &services.AuthService{Principals: repos.NewPrincipalRepo(db)}

	sess, err := auth.LoginUser("sid-del", "alice@petlink.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	uid := sess.PrincipalID

	reqRepo := repos.NewRequestRepo(db)
	if _, err := reqRepo.Create(uid, 1, "please"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repos.NewLikeRepo(db).Toggle(2, uid); err != nil {
		t.Fatal(err)
	}
	care := repos.NewCareRepo(db)
	postID, err := care.CreatePost(uid, "Grooming", "Brush weekly.")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := care.AddComment(postID, uid, "Seconded."); err != nil {
		t.Fatal(err)
	}

	if err := auth.DeleteUser(uid, "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{
		`SELECT COUNT(*) FROM adoption_requests WHERE user_id=?`,
		`SELECT COUNT(*) FROM pet_likes WHERE user_id=?`,
		`SELECT COUNT(*) FROM care_posts WHERE user_id=?`,
		`SELECT COUNT(*) FROM care_comments WHERE user_id=?`,
		`SELECT COUNT(*) FROM sessions WHERE principal_id=? AND role='user'`,
		`SELECT COUNT(*) FROM users WHERE id=?`,
	} {
		var n int
		if err := db.Get(&n, q, uid); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Fatalf("leftover rows for %q: %d", q, n)
		}
	}
}
