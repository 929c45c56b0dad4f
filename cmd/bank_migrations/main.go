package main

import (
	"context"
	"log"
	"os"

	"github.com/mddanish9155/Banking-Application/internal/bank_migrations"
)

func main() {
	dsn := os.Getenv("DB_URL")

	if dsn == "" {
		log.Fatal("DB_URL is not set")
	}

	err := bank_migrations.Up(context.Background(), 999, dsn)

	if err != nil {
		log.Fatal(err)
	}
}
