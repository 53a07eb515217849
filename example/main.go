package main

import (
	"context"
	"log"

	"github.com/Lumos-Labs-HQ/seedling/example/db"
	"github.com/Lumos-Labs-HQ/seedling/fake"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/jackc/pgx/v5/pgconn"
)

func main() {
	db.ConnectDatabase()
	defer db.CloseDatabase()

	ctx := context.Background()

	if err := db.CreateTables(ctx); err != nil {
		log.Fatal("Failed to create tables:", err)
	}

	users := seeder.MustDefine(seeder.NoSchema, "users", 20,
		seeder.Col("id", fake.UUID),
		seeder.Col("name", fake.Name),
		seeder.Col("email", fake.Email),
		seeder.Col("created_at", fake.Timestamp),
	)
	posts := seeder.MustDefine(seeder.NoSchema, "posts", 50,
		seeder.Col("title", fake.Title),
		seeder.Col("published", fake.Bool),
	)

	// Example: one seed in the background while doing other work
	f := seeder.SeedAsync[pgconn.CommandTag](ctx, db.Pool, users)
	tag, err := f.Wait(ctx)
	if err != nil {
		log.Fatal("Failed to seed users:", err)
	}
	log.Printf("Seeded users: %s", tag)

	// Example: several tables in order, stopping at the first failure
	r := &seeder.Runner[pgconn.CommandTag]{
		Exec: db.Pool,
		OnSeed: func(i int, m *seeder.Mock, tag pgconn.CommandTag) {
			log.Printf("Seeded %s: %d rows", m.Table().QualifiedName(), tag.RowsAffected())
		},
	}
	if err := r.Run(ctx, []*seeder.Mock{posts, users}); err != nil {
		log.Fatal("Failed to seed:", err)
	}

	n, err := db.CountRows(ctx, "users")
	if err != nil {
		log.Fatal("Failed to count users:", err)
	}
	log.Printf("users now holds %d rows", n)
}
