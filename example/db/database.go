package db

import (
	"context"
	"log"
	"os"

	"github.com/Lumos-Labs-HQ/seedling/backend/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var DB *pgxpool.Pool
var Pool *postgres.Pool

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    published BOOLEAN NOT NULL
)`

func ConnectDatabase() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = DB.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	Pool = postgres.New(DB)
	log.Println("Database connected successfully")
}

func CreateTables(ctx context.Context) error {
	_, err := DB.Exec(ctx, schema)
	return err
}

func CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := DB.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func CloseDatabase() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed")
	}
}
