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

type CarRepository interface {
	FindAvailable(ctx context.Context, id uuid.UUID) (*entity.Car, error)

	// LockAvailable mengambil exclusive row lock (FOR UPDATE) pada mobil
	// yang masih available. Harus dipanggil di dalam transaksi caller;
	// lock tertahan sampai commit/rollback sehingga booking per mobil serial.
	LockAvailable(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Car, error)

	SetAvailability(ctx context.Context, q database.Querier, id uuid.UUID, available bool) error
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

func (r *carRepository) FindAvailable(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `
		SELECT id, dealer_id, make, model, variant, price, is_available, created_at, updated_at
		FROM cars
		WHERE id = $1 AND is_available = TRUE
	`

	var car entity.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.DealerID,
		&car.Make,
		&car.Model,
		&car.Variant,
		&car.Price,
		&car.IsAvailable,
		&car.CreatedAt,
		&car.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find available car",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find available car %s: %w", id.String(), err)
	}

	return &car, nil
}

func (r *carRepository) LockAvailable(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Car, error) {
	query := `
		SELECT id, dealer_id, make, model, variant, price, is_available, created_at, updated_at
		FROM cars
		WHERE id = $1 AND is_available = TRUE
		FOR UPDATE
	`

	var car entity.Car
	err := q.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.DealerID,
		&car.Make,
		&car.Model,
		&car.Variant,
		&car.Price,
		&car.IsAvailable,
		&car.CreatedAt,
		&car.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock car row",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("lock car %s: %w", id.String(), err)
	}

	return &car, nil
}

func (r *carRepository) SetAvailability(ctx context.Context, q database.Querier, id uuid.UUID, available bool) error {
	query := `UPDATE cars SET is_available = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, available)
	if err != nil {
		r.log.Error("Failed to set car availability",
			zap.Error(err),
			zap.String("car_id", id.String()),
			zap.Bool("available", available),
		)
		return fmt.Errorf("set car %s availability: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", id.String())
	}

	return nil
}
