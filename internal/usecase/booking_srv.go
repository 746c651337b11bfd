package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"car-booking/internal/access"
	"car-booking/internal/data/entity"
	"car-booking/internal/data/repository"
	"car-booking/internal/dto/request"
	"car-booking/internal/dto/response"
	"car-booking/pkg/database"
	"car-booking/pkg/gateway"
	"car-booking/pkg/mailer"
	"car-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingNote = "Booking allowed only from tomorrow onwards. Remaining car amount will be paid directly to the dealer"

type BookingService interface {
	// Preview pure read, tidak ada state change
	PreviewBooking(ctx context.Context, actor access.Actor, req *request.BookingPreviewRequest) (*response.BookingPreviewResponse, error)

	// CreateBooking: lock mobil -> booking pending -> gateway order ->
	// payment pending, semua dalam satu transaksi
	CreateBooking(ctx context.Context, actor access.Actor, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)

	// VerifyPayment: callback sukses dari gateway
	VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)

	// PaymentFailed: callback gagal; unknown order bukan error
	PaymentFailed(ctx context.Context, req *request.PaymentFailedRequest) error

	GetUserBookings(ctx context.Context, actor access.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, actor access.Actor, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	db      database.PgxIface
	repo    *repository.Repository
	gateway gateway.Client
	mailer  mailer.Mailer
	policy  *access.Policy
	config  *utils.Config
	log     *zap.Logger
}

func NewBookingService(
	db database.PgxIface,
	repo *repository.Repository,
	gw gateway.Client,
	mail mailer.Mailer,
	policy *access.Policy,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		db:      db,
		repo:    repo,
		gateway: gw,
		mailer:  mail,
		policy:  policy,
		config:  config,
		log:     log.With(zap.String("service", "booking")),
	}
}

// parseBookingDate valid kalau format YYYY-MM-DD dan minimal besok
// (hari ini server-local ditolak)
func parseBookingDate(value string, now time.Time) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	tomorrow := today.AddDate(0, 0, 1)

	if date.Before(tomorrow) {
		return time.Time{}, ErrInvalidDate
	}

	return date, nil
}

func (s *bookingService) PreviewBooking(ctx context.Context, actor access.Actor, req *request.BookingPreviewRequest) (*response.BookingPreviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking preview validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", req.CarID, err)
	}

	if _, err := parseBookingDate(req.BookingDate, time.Now()); err != nil {
		return nil, err
	}

	car, err := s.repo.Car.FindAvailable(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("find car: %w", err)
	}
	if car == nil {
		return nil, ErrCarUnavailable
	}

	dealer, err := s.repo.Dealer.FindByID(ctx, car.DealerID)
	if err != nil || dealer == nil {
		return nil, fmt.Errorf("dealer not found for car %s", req.CarID)
	}

	fee := s.config.Booking.PlatformFee

	return &response.BookingPreviewResponse{
		Car: response.CarSummary{
			ID:      car.ID.String(),
			Make:    car.Make,
			Model:   car.Model,
			Variant: car.Variant,
			Price:   car.Price,
		},
		Dealer: response.DealerSummary{
			ID:           dealer.ID.String(),
			BusinessName: dealer.BusinessName,
			City:         dealer.City,
		},
		BookingDate: req.BookingDate,
		PlatformFee: fee,
		PayableNow:  fee,
		Note:        bookingNote,
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, actor access.Actor, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !s.policy.CanBook(actor) {
		return nil, ErrForbidden
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", req.CarID, err)
	}

	bookingDate, err := parseBookingDate(req.BookingDate, time.Now())
	if err != nil {
		return nil, err
	}

	fee := s.config.Booking.PlatformFee
	currency := s.config.Booking.Currency

	var resp *response.CreateBookingResponse

	// Satu critical section: row lock tertahan selama round trip ke
	// gateway. Error di step manapun -> rollback, booking dan payment
	// hilang, lock lepas.
	err = database.WithTx(ctx, s.db, func(tx database.Querier) error {
		car, err := s.repo.Car.LockAvailable(ctx, tx, carID)
		if err != nil {
			return err
		}
		if car == nil {
			// sudah di-book atau tidak ada
			return ErrCarUnavailable
		}

		now := time.Now()
		booking := &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:              actor.ID,
			CarID:               car.ID,
			DealerID:            car.DealerID,
			BookingDate:         bookingDate,
			PlatformFee:         fee,
			PaymentStatus:       entity.PaymentStatusPending,
			BookingStatus:       entity.BookingStatusPending,
			DealerPaymentStatus: entity.PaymentStatusPending,
		}

		if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
			return err
		}

		amountMinor := int64(math.Round(fee * 100))
		order, err := s.gateway.CreateOrder(ctx, amountMinor, currency, booking.ID.String())
		if err != nil {
			s.log.Error("Gateway order creation failed",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return fmt.Errorf("create gateway order: %w", err)
		}

		payment := &entity.Payment{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingID:       booking.ID,
			PaymentMethod:   "razorpay",
			Amount:          fee,
			RazorpayOrderID: order.ID,
			Status:          entity.PaymentStatusPending,
		}

		if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
			return err
		}

		resp = &response.CreateBookingResponse{
			BookingID: booking.ID.String(),
			Razorpay: response.GatewayOrder{
				OrderID:  order.ID,
				Amount:   order.Amount,
				Currency: order.Currency,
				KeyID:    s.gateway.KeyID(),
			},
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", resp.BookingID),
		zap.String("order_id", resp.Razorpay.OrderID),
		zap.String("user_id", actor.ID.String()),
		zap.String("car_id", req.CarID),
	)

	return resp, nil
}

func (s *bookingService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Signature dicek sebelum menyentuh database sama sekali
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.log.Warn("Payment signature mismatch",
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID),
		)
		return nil, ErrSignatureMismatch
	}

	var bookingID uuid.UUID

	err := database.WithTx(ctx, s.db, func(tx database.Querier) error {
		// Status guard di MarkPaid: callback duplikat atau order asing
		// match nol row dan ditolak tanpa mutation
		id, ok, err := s.repo.Payment.MarkPaid(ctx, tx, req.RazorpayOrderID, req.RazorpayPaymentID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPaymentNotFound
		}
		bookingID = id

		carID, err := s.repo.Booking.MarkConfirmed(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		// Mobil keluar dari stok available setelah booking confirmed
		if err := s.repo.Car.SetAvailability(ctx, tx, carID, false); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment verified, booking confirmed",
		zap.String("booking_id", bookingID.String()),
		zap.String("order_id", req.RazorpayOrderID),
	)

	// Notifikasi dikirim setelah commit: kegagalan di sini tidak
	// membatalkan transisi yang sudah durable, tapi tetap dilaporkan
	// ke caller
	if err := s.sendBookingNotifications(ctx, bookingID); err != nil {
		s.log.Error("Booking confirmed but notification dispatch failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("booking confirmed, send notifications: %w", err)
	}

	return &response.VerifyPaymentResponse{
		BookingID: bookingID.String(),
		Message:   "Payment verified, booking confirmed, notifications sent",
	}, nil
}

func (s *bookingService) sendBookingNotifications(ctx context.Context, bookingID uuid.UUID) error {
	info, err := s.repo.Booking.FindNotificationInfo(ctx, bookingID)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("notification info for booking %s not found", bookingID.String())
	}

	date := info.BookingDate.Format("2006-01-02")

	customerEmail := mailer.CustomerBookedEmail(
		info.CustomerEmail, info.CustomerName, info.CarName, date, info.DealerEmail)
	if err := s.mailer.Send(ctx, customerEmail); err != nil {
		return fmt.Errorf("send customer email: %w", err)
	}

	dealerEmail := mailer.DealerBookedEmail(
		info.DealerEmail, info.DealerName, info.CustomerName, info.CarName, date, info.CustomerEmail)
	if err := s.mailer.Send(ctx, dealerEmail); err != nil {
		return fmt.Errorf("send dealer email: %w", err)
	}

	return nil
}

func (s *bookingService) PaymentFailed(ctx context.Context, req *request.PaymentFailedRequest) error {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment failed callback validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return database.WithTx(ctx, s.db, func(tx database.Querier) error {
		bookingID, ok, err := s.repo.Payment.MarkFailed(ctx, tx, req.RazorpayOrderID)
		if err != nil {
			return err
		}
		if !ok {
			// Failure callback untuk order asing bukan error
			s.log.Info("Payment failed callback for unknown order",
				zap.String("order_id", req.RazorpayOrderID))
			return nil
		}

		carID, err := s.repo.Booking.MarkCancelled(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		// Mobil balik ke stok
		if err := s.repo.Car.SetAvailability(ctx, tx, carID, true); err != nil {
			return err
		}

		s.log.Info("Booking cancelled after payment failure",
			zap.String("booking_id", bookingID.String()),
			zap.String("order_id", req.RazorpayOrderID),
		)

		return nil
	})
}

func (s *bookingService) GetUserBookings(ctx context.Context, actor access.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, actor.ID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)
		bookingResponses[i] = response.BookingToResponse(booking, payment)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actor access.Actor, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !s.policy.CanViewBooking(actor, booking) {
		return nil, ErrForbidden
	}

	payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)

	resp := response.BookingToResponse(booking, payment)
	return &resp, nil
}
