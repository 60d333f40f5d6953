package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// modernc's sqlite driver gives every pool connection its own :memory:
	// database, and PRAGMA foreign_keys is per connection. One connection
	// keeps both consistent, and sqlite only ever has one writer anyway.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed fixed categories, the demo owner and sample pets (idempotent;
	// safe to run every start)
	if err := seedCategories(db); err != nil {
		return nil, err
	}
	if err := seedOwnerAndPets(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Adopters
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  contact TEXT NOT NULL,
  address TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Shelter owners (separate credential store from users)
CREATE TABLE IF NOT EXISTS owners(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  contact TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_owners_email ON owners(LOWER(email));

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

-- Pets
CREATE TABLE IF NOT EXISTS pets(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  breed TEXT NOT NULL,
  age INTEGER NOT NULL CHECK (age >= 0),
  health_details TEXT NOT NULL DEFAULT '',
  medical_details TEXT NOT NULL DEFAULT '',
  adoption_status TEXT NOT NULL DEFAULT 'available' CHECK (adoption_status IN ('available','adopted')),
  image_url TEXT NOT NULL DEFAULT '',
  owner_id INTEGER NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_pets_category   ON pets(category_id);
CREATE INDEX IF NOT EXISTS idx_pets_owner      ON pets(owner_id);
CREATE INDEX IF NOT EXISTS idx_pets_status     ON pets(adoption_status);
CREATE INDEX IF NOT EXISTS idx_pets_created_at ON pets(created_at);

-- Adoption requests
CREATE TABLE IF NOT EXISTS adoption_requests(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id),
  pet_id INTEGER NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected')),
  message TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, pet_id)
);
CREATE INDEX IF NOT EXISTS idx_requests_pet  ON adoption_requests(pet_id);
CREATE INDEX IF NOT EXISTS idx_requests_user ON adoption_requests(user_id);

-- Care tip posts & comments
CREATE TABLE IF NOT EXISTS care_posts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id),
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS care_comments(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  post_id INTEGER NOT NULL REFERENCES care_posts(id) ON DELETE CASCADE,
  user_id INTEGER NOT NULL REFERENCES users(id),
  content TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comments_post ON care_comments(post_id);

-- Likes (presence = liked)
CREATE TABLE IF NOT EXISTS pet_likes(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  pet_id INTEGER NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
  user_id INTEGER NOT NULL REFERENCES users(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(pet_id, user_id)
);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  principal_id INTEGER,
  role TEXT CHECK (role IN ('user','owner')),
  name TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedCategories(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, name := range []string{"Dogs", "Cats", "Birds", "Others"} {
		if _, err := tx.Exec(`INSERT INTO categories(name) VALUES(?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedOwnerAndPets inserts the demo owner and ten sample pets unless the
// tables already have data.
func seedOwnerAndPets(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM owners`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo owner and sample pets")

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO owners(name,email,password_hash,contact) VALUES(?,?,?,?)`,
		"Admin Owner", "admin@petlink.com", string(hash), "+1234567890")
	if err != nil {
		return err
	}
	ownerID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	type seedPet struct {
		name, category, breed  string
		age                    int
		health, medical, image string
	}
	pets := []seedPet{
		{"Buddy", "Dogs", "Golden Retriever", 3, "Healthy and energetic", "Vaccinated, neutered", "https://images.unsplash.com/photo-1552053831-71594a27632d?w=400"},
		{"Luna", "Cats", "Persian", 2, "Calm and friendly", "Vaccinated, spayed", "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?w=400"},
		{"Max", "Dogs", "German Shepherd", 4, "Well-trained guard dog", "All vaccinations up to date", "https://images.unsplash.com/photo-1589941013453-ec89f33b5e95?w=400"},
		{"Whiskers", "Cats", "Maine Coon", 1, "Playful kitten", "First vaccinations done", "https://images.unsplash.com/photo-1573865526739-10659fec78a5?w=400"},
		{"Charlie", "Birds", "Cockatiel", 2, "Loves to sing", "Healthy, no medical issues", "https://images.unsplash.com/photo-1452570053594-1b985d6ea890?w=400"},
		{"Bella", "Dogs", "Labrador", 5, "Great with kids", "Vaccinated, microchipped", "https://images.unsplash.com/photo-1518717758536-85ae29035b6d?w=400"},
		{"Mittens", "Cats", "Siamese", 3, "Independent but loving", "Vaccinated, spayed", "https://images.unsplash.com/photo-1596854407944-bf87f6fdd49e?w=400"},
		{"Rocky", "Dogs", "Bulldog", 6, "Gentle giant", "Regular health checkups", "https://images.unsplash.com/photo-1583337130417-3346a1be7dee?w=400"},
		{"Tweety", "Birds", "Canary", 1, "Beautiful singer", "Healthy and active", "https://images.unsplash.com/photo-1444464666168-49d633b86797?w=400"},
		{"Shadow", "Others", "Rabbit", 2, "Quiet and gentle", "Vaccinated, litter trained", "https://images.unsplash.com/photo-1585110396000-c9ffd4e4b308?w=400"},
	}

	for _, p := range pets {
		if _, err := tx.Exec(`
			INSERT INTO pets(name, category_id, breed, age, health_details, medical_details, image_url, owner_id)
			SELECT ?, c.id, ?, ?, ?, ?, ?, ?
			FROM categories c WHERE c.name = ?
		`, p.name, p.breed, p.age, p.health, p.medical, p.image, ownerID, p.category); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedUsers ensures a demo adopter exists for local exploration (idempotent).
func seedUsers(db *sqlx.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(name,email,password_hash,contact,address)
		VALUES(?,?,?,?,?)
		ON CONFLICT(email) DO NOTHING
	`, "Alice", "alice@petlink.test", string(hash), "+1987654321", "12 Maple Street")
	return err
}
