// seed inserts two demo users, a shared task list, and a few todos into the
// local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/ErlanBelekov/tasklist-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

var seedUsers = []struct {
	email string
	name  string
}{
	{"alice@test.local", "Alice"},
	{"bob@test.local", "Bob"},
}

var seedTodos = []struct {
	content   string
	completed bool
}{
	{"Milk", true},
	{"Eggs", false},
	{"Bread", false},
	{"Coffee", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	userIDs := make([]string, len(seedUsers))
	for i, u := range seedUsers {
		err := pool.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id`,
			u.email, string(hash), u.name,
		).Scan(&userIDs[i])
		if err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
	}

	var listID string
	err = pool.QueryRow(ctx, `
		INSERT INTO task_lists (title, user_ids)
		VALUES ('Groceries', $1::uuid[])
		RETURNING id`,
		userIDs,
	).Scan(&listID)
	if err != nil {
		log.Fatalf("seed task list: %v", err)
	}

	for _, t := range seedTodos {
		_, err := pool.Exec(ctx, `
			INSERT INTO todos (task_list_id, content, is_completed)
			VALUES ($1, $2, $3)`,
			listID, t.content, t.completed,
		)
		if err != nil {
			log.Fatalf("seed todo %q: %v", t.content, err)
		}
	}

	log.Printf("seeded %d users and list %s with %d todos (password: %s)",
		len(seedUsers), listID, len(seedTodos), seedPassword)
}
