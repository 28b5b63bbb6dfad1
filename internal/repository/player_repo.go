package repository

import (
	"context"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create inserts a new player account.
func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO players (name, balance)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.Name, p.Balance,
	).Scan(&p.ID, &p.CreatedAt)
}

// GetByID retrieves a player; returns (nil, nil) when missing.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, balance, created_at FROM players WHERE id = $1`, id)

	var p domain.Player
	if err := row.Scan(&p.ID, &p.Name, &p.Balance, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByName retrieves a player by name; returns (nil, nil) when missing.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, balance, created_at FROM players WHERE name = $1`, name)

	var p domain.Player
	if err := row.Scan(&p.ID, &p.Name, &p.Balance, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
