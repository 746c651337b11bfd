package repository

import (
	"context"
	"fmt"

	"car-booking/internal/data/entity"
	"car-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DealerRepository interface {
	Create(ctx context.Context, dealer *entity.Dealer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Dealer, error)
}

type dealerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDealerRepository(db database.PgxIface, log *zap.Logger) DealerRepository {
	return &dealerRepository{
		db:  db,
		log: log.With(zap.String("repository", "dealer")),
	}
}

func (r *dealerRepository) Create(ctx context.Context, dealer *entity.Dealer) error {
	query := `
		INSERT INTO dealers (id, user_id, business_name, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		dealer.ID,
		dealer.UserID,
		dealer.BusinessName,
		dealer.City,
		dealer.CreatedAt,
		dealer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create dealer",
			zap.Error(err),
			zap.String("user_id", dealer.UserID.String()),
		)
		return fmt.Errorf("create dealer for user %s: %w", dealer.UserID.String(), err)
	}

	return nil
}

func (r *dealerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error) {
	query := `
		SELECT id, user_id, business_name, city, created_at, updated_at
		FROM dealers
		WHERE id = $1
	`

	var dealer entity.Dealer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&dealer.ID,
		&dealer.UserID,
		&dealer.BusinessName,
		&dealer.City,
		&dealer.CreatedAt,
		&dealer.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find dealer by ID",
			zap.Error(err),
			zap.String("dealer_id", id.String()),
		)
		return nil, fmt.Errorf("find dealer by ID %s: %w", id.String(), err)
	}

	return &dealer, nil
}

func (r *dealerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Dealer, error) {
	query := `
		SELECT id, user_id, business_name, city, created_at, updated_at
		FROM dealers
		WHERE user_id = $1
	`

	var dealer entity.Dealer
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&dealer.ID,
		&dealer.UserID,
		&dealer.BusinessName,
		&dealer.City,
		&dealer.CreatedAt,
		&dealer.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find dealer by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find dealer by user ID %s: %w", userID.String(), err)
	}

	return &dealer, nil
}
