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

type PaymentRepository interface {
	Create(ctx context.Context, q database.Querier, payment *entity.Payment) error

	// MarkPaid set payment paid + record transaction id, hanya kalau
	// masih pending. Guard status bikin duplicate callback jadi no-op.
	// Return booking id dan ok=false kalau tidak ada row yang match.
	MarkPaid(ctx context.Context, q database.Querier, orderID, transactionID string) (uuid.UUID, bool, error)

	// MarkFailed set payment failed kalau masih pending.
	// transaction_id dibiarkan NULL, order gagal tidak punya transaction.
	MarkFailed(ctx context.Context, q database.Querier, orderID string) (uuid.UUID, bool, error)

	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, q database.Querier, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, payment_method, amount, razorpay_order_id,
		                      payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.PaymentMethod,
		payment.Amount,
		payment.RazorpayOrderID,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("order_id", payment.RazorpayOrderID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, q database.Querier, orderID, transactionID string) (uuid.UUID, bool, error) {
	query := `
		UPDATE payments
		SET payment_status = 'paid',
		    transaction_id = $1,
		    updated_at = NOW()
		WHERE razorpay_order_id = $2 AND payment_status = 'pending'
		RETURNING booking_id
	`

	var bookingID uuid.UUID
	err := q.QueryRow(ctx, query, transactionID, orderID).Scan(&bookingID)

	if err == pgx.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to mark payment paid",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return uuid.Nil, false, fmt.Errorf("mark payment paid for order %s: %w", orderID, err)
	}

	return bookingID, true, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, q database.Querier, orderID string) (uuid.UUID, bool, error) {
	query := `
		UPDATE payments
		SET payment_status = 'failed',
		    updated_at = NOW()
		WHERE razorpay_order_id = $1 AND payment_status = 'pending'
		RETURNING booking_id
	`

	var bookingID uuid.UUID
	err := q.QueryRow(ctx, query, orderID).Scan(&bookingID)

	if err == pgx.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return uuid.Nil, false, fmt.Errorf("mark payment failed for order %s: %w", orderID, err)
	}

	return bookingID, true, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, payment_method, amount, razorpay_order_id,
		       transaction_id, payment_status, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.PaymentMethod,
		&payment.Amount,
		&payment.RazorpayOrderID,
		&payment.TransactionID,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return &payment, nil
}
