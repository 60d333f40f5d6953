package services_test

import (
	"testing"

	"petlink/internal/repos"
	"petlink/internal/services"
)

func TestDashboardStats_ZeroPetsAllZero(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))

	// a second owner with no pets at all
	res, err := db.Exec(`INSERT INTO owners(name,email,password_hash,contact) VALUES('Empty','empty@petlink.test','x','+1')`)
	if err != nil {
		t.Fatal(err)
	}
	ownerID, _ := res.LastInsertId()

	stats, err := svc.DashboardStats(ownerID)
	if err != nil {
		t.Fatal(err)
	}
	if stats != (repos.DashboardStats{}) {
		t.Fatalf("want all-zero stats, got %+v", stats)
	}
}

func TestDashboardStats_Counts(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))

	bob := addUser(t, db, "Bob", "bob@petlink.test")
	carol := addUser(t, db, "Carol", "carol@petlink.test")

	reqRepo := repos.NewRequestRepo(db)
	bobReq, err := reqRepo.Create(bob, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Create(carol, 1, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Create(bob, 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Decide(bobReq, seededOwner, "approved"); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.DashboardStats(seededOwner)
	if err != nil {
		t.Fatal(err)
	}
	want := repos.DashboardStats{
		TotalPets: 10, AvailablePets: 9, AdoptedPets: 1,
		TotalRequests: 3, PendingRequests: 2, ApprovedRequests: 1, RejectedRequests: 0,
	}
	if stats != want {
		t.Fatalf("want %+v, got %+v", want, stats)
	}
}

func TestTopPets_OrderAndTieBreak(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))
	reqRepo := repos.NewRequestRepo(db)

	bob := addUser(t, db, "Bob", "bob@petlink.test")
	carol := addUser(t, db, "Carol", "carol@petlink.test")

	// pet 2 (Luna): two requests; pets 1 (Buddy) and 3 (Max): one each
	if _, err := reqRepo.Create(bob, 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Create(carol, 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Create(bob, 1, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Create(carol, 3, ""); err != nil {
		t.Fatal(err)
	}

	top, err := svc.DashboardTopPets(seededOwner)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 5 {
		t.Fatalf("want top 5, got %d", len(top))
	}
	if top[0].Name != "Luna" || top[0].RequestCount != 2 {
		t.Fatalf("want Luna(2) first, got %s(%d)", top[0].Name, top[0].RequestCount)
	}
	// Buddy and Max tie at 1, alphabetical order breaks it
	if top[1].Name != "Buddy" || top[2].Name != "Max" {
		t.Fatalf("tie break by name failed: %s, %s", top[1].Name, top[2].Name)
	}
}

func TestRecentActivity_MergeAndTruncate(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))

	bob := addUser(t, db, "Bob", "bob@petlink.test")

	// pin every timestamp so the merge order is deterministic
	if _, err := db.Exec(`UPDATE pets SET created_at='2024-04-' || printf('%02d', id) || ' 09:00:00'`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE pets SET created_at='2024-05-02 10:00:00' WHERE id=1`); err != nil {
		t.Fatal(err)
	}
	for i, ts := range []string{"2024-05-01 10:00:00", "2024-05-03 10:00:00"} {
		if _, err := db.Exec(`INSERT INTO adoption_requests(user_id,pet_id,message,created_at) VALUES(?,?,?,?)`,
			bob, int64(i+1), "hi", ts); err != nil {
			t.Fatal(err)
		}
	}

	events, err := svc.RecentActivity(seededOwner)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 10 {
		t.Fatalf("want feed truncated to 10, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		a, b := events[i-1].CreatedAt, events[i].CreatedAt
		if a != "" && b != "" && a < b {
			t.Fatalf("feed not reverse-chronological at %d: %q < %q", i, a, b)
		}
	}
	if events[0].CreatedAt != "2024-05-03 10:00:00" || events[0].Type != "request" {
		t.Fatalf("newest event should be the 05-03 request, got %+v", events[0])
	}
}

func TestRecentActivity_BlankTimestampsSortLast(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))

	// keep only two pets so the feed is short, one without a timestamp
	if _, err := db.Exec(`DELETE FROM pets WHERE id > 2`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE pets SET created_at=NULL WHERE id=1`); err != nil {
		t.Fatal(err)
	}

	events, err := svc.RecentActivity(seededOwner)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[len(events)-1].CreatedAt != "" {
		t.Fatalf("blank-timestamp event must sort last, got %+v", events)
	}
}

func TestAnalyticsReport(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))
	reqRepo := repos.NewRequestRepo(db)

	bob := addUser(t, db, "Bob", "bob@petlink.test")
	reqID, err := reqRepo.Create(bob, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reqRepo.Decide(reqID, seededOwner, "approved"); err != nil {
		t.Fatal(err)
	}

	rpt, err := svc.BuildReport(seededOwner)
	if err != nil {
		t.Fatal(err)
	}
	if rpt.PetsByStatus["available"] != 9 || rpt.PetsByStatus["adopted"] != 1 {
		t.Fatalf("bad pets_by_status: %+v", rpt.PetsByStatus)
	}
	if rpt.RequestsByStatus["approved"] != 1 {
		t.Fatalf("bad requests_by_status: %+v", rpt.RequestsByStatus)
	}
	if len(rpt.TopPets) != 10 {
		t.Fatalf("want all 10 pets ranked, got %d", len(rpt.TopPets))
	}
	// seeded categories: Dogs(4), Cats(3), Birds(2), Others(1)
	if len(rpt.CategoryDistribution) != 4 || rpt.CategoryDistribution[0].Name != "Dogs" || rpt.CategoryDistribution[0].PetCount != 4 {
		t.Fatalf("bad category distribution: %+v", rpt.CategoryDistribution)
	}
}
