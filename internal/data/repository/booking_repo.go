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

type BookingRepository interface {
	// Create insert booking dalam initial pending state, di dalam
	// transaksi yang sama dengan car lock
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkConfirmed transisi paid/confirmed/dealer-pending, return car_id
	MarkConfirmed(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error)

	// MarkCancelled transisi failed/cancelled/failed, return car_id
	MarkCancelled(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error)

	FindNotificationInfo(ctx context.Context, id uuid.UUID) (*entity.BookingNotificationInfo, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, car_id, dealer_id, booking_date, platform_fee,
		                      payment_status, booking_status, dealer_payment_status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.CarID,
		booking.DealerID,
		booking.BookingDate,
		booking.PlatformFee,
		booking.PaymentStatus,
		booking.BookingStatus,
		booking.DealerPaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("car_id", booking.CarID.String()),
		)
		return fmt.Errorf("create booking for car %s: %w", booking.CarID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, car_id, dealer_id, booking_date, platform_fee,
		       payment_status, booking_status, dealer_payment_status,
		       dealer_payment_reference, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CarID,
		&booking.DealerID,
		&booking.BookingDate,
		&booking.PlatformFee,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.DealerPaymentStatus,
		&booking.DealerPaymentReference,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, user_id, car_id, dealer_id, booking_date, platform_fee,
		       payment_status, booking_status, dealer_payment_status,
		       dealer_payment_reference, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.CarID,
			&booking.DealerID,
			&booking.BookingDate,
			&booking.PlatformFee,
			&booking.PaymentStatus,
			&booking.BookingStatus,
			&booking.DealerPaymentStatus,
			&booking.DealerPaymentReference,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) MarkConfirmed(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid',
		    booking_status = 'confirmed',
		    dealer_payment_status = 'pending',
		    dealer_payment_reference = NULL,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING car_id
	`

	var carID uuid.UUID
	err := q.QueryRow(ctx, query, id).Scan(&carID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return uuid.Nil, fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}

	return carID, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'failed',
		    booking_status = 'cancelled',
		    dealer_payment_status = 'failed',
		    dealer_payment_reference = NULL,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING car_id
	`

	var carID uuid.UUID
	err := q.QueryRow(ctx, query, id).Scan(&carID)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return uuid.Nil, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return carID, nil
}

func (r *bookingRepository) FindNotificationInfo(ctx context.Context, id uuid.UUID) (*entity.BookingNotificationInfo, error) {
	query := `
		SELECT u.name, u.email,
		       d.business_name, du.email,
		       c.make, c.model, c.variant,
		       b.booking_date
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN dealers d ON b.dealer_id = d.id
		JOIN users du ON d.user_id = du.id
		JOIN cars c ON b.car_id = c.id
		WHERE b.id = $1
	`

	var info entity.BookingNotificationInfo
	var car entity.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&info.CustomerName,
		&info.CustomerEmail,
		&info.DealerName,
		&info.DealerEmail,
		&car.Make,
		&car.Model,
		&car.Variant,
		&info.BookingDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking notification info",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find notification info for booking %s: %w", id.String(), err)
	}

	info.CarName = car.DisplayName()
	return &info, nil
}
