package main

import (
	"context"
	"flag"
	"log"
	"os"

	"chairduel/internal/db"
	"chairduel/internal/domain"
	"chairduel/internal/repository"
	"chairduel/internal/service"
)

// issue_token creates (or reuses) a named player and prints a bearer token
// for manual testing against a running server.
func main() {
	name := flag.String("name", "testplayer", "player name")
	balance := flag.Int64("balance", 10000, "initial balance for a new player")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewPlayerRepository(pool)
	ctx := context.Background()

	p, err := repo.GetByName(ctx, *name)
	if err != nil {
		log.Fatalf("lookup player: %v", err)
	}
	if p != nil {
		log.Printf("player already exists id=%d balance=%d\n", p.ID, p.Balance)
	} else {
		p = &domain.Player{Name: *name, Balance: *balance}
		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("create player failed: %v", err)
		}
		log.Printf("player created id=%d balance=%d\n", p.ID, p.Balance)
	}

	service.InitJWT(secret)
	token, err := service.GenerateJWT(p.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
