package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"car-booking/internal/access"
	"car-booking/internal/data/entity"
	"car-booking/internal/data/repository"
	"car-booking/internal/dto/request"
	"car-booking/internal/usecase"
	"car-booking/pkg/database"
	"car-booking/pkg/gateway"
	"car-booking/pkg/mailer"
	"car-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// ---------- database fakes ----------

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	beginCount int
	lastTx     *fakeTx
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	d.beginCount++
	d.lastTx = &fakeTx{}
	return d.lastTx, nil
}

func (d *fakeDB) Ping(ctx context.Context) error { return nil }
func (d *fakeDB) Close()                         {}

// ---------- repository fakes ----------

type fakeCarRepo struct {
	cars      map[uuid.UUID]*entity.Car
	lockCalls int
}

func (r *fakeCarRepo) FindAvailable(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	car, ok := r.cars[id]
	if !ok || !car.IsAvailable {
		return nil, nil
	}
	return car, nil
}

func (r *fakeCarRepo) LockAvailable(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Car, error) {
	r.lockCalls++
	return r.FindAvailable(ctx, id)
}

func (r *fakeCarRepo) SetAvailability(ctx context.Context, q database.Querier, id uuid.UUID, available bool) error {
	car, ok := r.cars[id]
	if !ok {
		return errors.New("car not found")
	}
	car.IsAvailable = available
	return nil
}

type fakeDealerRepo struct {
	dealers map[uuid.UUID]*entity.Dealer
}

func (r *fakeDealerRepo) Create(ctx context.Context, dealer *entity.Dealer) error {
	r.dealers[dealer.ID] = dealer
	return nil
}

func (r *fakeDealerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error) {
	return r.dealers[id], nil
}

func (r *fakeDealerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Dealer, error) {
	for _, d := range r.dealers {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
	info     *entity.BookingNotificationInfo
}

func (r *fakeBookingRepo) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := r.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) MarkConfirmed(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return uuid.Nil, errors.New("booking not found")
	}
	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.BookingStatus = entity.BookingStatusConfirmed
	booking.DealerPaymentStatus = entity.PaymentStatusPending
	return booking.CarID, nil
}

func (r *fakeBookingRepo) MarkCancelled(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return uuid.Nil, errors.New("booking not found")
	}
	booking.PaymentStatus = entity.PaymentStatusFailed
	booking.BookingStatus = entity.BookingStatusCancelled
	booking.DealerPaymentStatus = entity.PaymentStatusFailed
	return booking.CarID, nil
}

func (r *fakeBookingRepo) FindNotificationInfo(ctx context.Context, id uuid.UUID) (*entity.BookingNotificationInfo, error) {
	return r.info, nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment // keyed by gateway order id
}

func (r *fakePaymentRepo) Create(ctx context.Context, q database.Querier, payment *entity.Payment) error {
	r.payments[payment.RazorpayOrderID] = payment
	return nil
}

func (r *fakePaymentRepo) MarkPaid(ctx context.Context, q database.Querier, orderID, transactionID string) (uuid.UUID, bool, error) {
	payment, ok := r.payments[orderID]
	if !ok || payment.Status != entity.PaymentStatusPending {
		return uuid.Nil, false, nil
	}
	payment.Status = entity.PaymentStatusPaid
	payment.TransactionID = &transactionID
	return payment.BookingID, true, nil
}

func (r *fakePaymentRepo) MarkFailed(ctx context.Context, q database.Querier, orderID string) (uuid.UUID, bool, error) {
	payment, ok := r.payments[orderID]
	if !ok || payment.Status != entity.PaymentStatusPending {
		return uuid.Nil, false, nil
	}
	payment.Status = entity.PaymentStatusFailed
	return payment.BookingID, true, nil
}

func (r *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}

// ---------- gateway + mailer fakes ----------

type fakeGateway struct {
	orderCount int
	createErr  error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orderCount++
	return &gateway.Order{
		ID:       "order_test_1",
		Amount:   amountMinor,
		Currency: currency,
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.Signature(orderID, paymentID, testSecret) == signature
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeMailer struct {
	sent    []mailer.Email
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, e mailer.Email) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, e)
	return nil
}

// ---------- fixture ----------

type fixture struct {
	service  usecase.BookingService
	db       *fakeDB
	cars     *fakeCarRepo
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	mailer   *fakeMailer

	carID    uuid.UUID
	dealerID uuid.UUID
	actor    access.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	carID := uuid.New()
	dealerID := uuid.New()
	userID := uuid.New()

	cars := &fakeCarRepo{cars: map[uuid.UUID]*entity.Car{
		carID: {
			Base:        entity.Base{ID: carID},
			DealerID:    dealerID,
			Make:        "Maruti",
			Model:       "Swift",
			Price:       650000,
			IsAvailable: true,
		},
	}}

	dealers := &fakeDealerRepo{dealers: map[uuid.UUID]*entity.Dealer{
		dealerID: {
			Base:         entity.Base{ID: dealerID},
			UserID:       uuid.New(),
			BusinessName: "City Motors",
			City:         "Pune",
		},
	}}

	bookings := &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		info: &entity.BookingNotificationInfo{
			CustomerName:  "Asha",
			CustomerEmail: "asha@example.com",
			DealerName:    "City Motors",
			DealerEmail:   "dealer@example.com",
			CarName:       "Maruti Swift",
			BookingDate:   time.Now().AddDate(0, 0, 2),
		},
	}

	payments := &fakePaymentRepo{payments: make(map[string]*entity.Payment)}

	db := &fakeDB{}
	gw := &fakeGateway{}
	mail := &fakeMailer{}

	repo := &repository.Repository{
		Car:     cars,
		Dealer:  dealers,
		Booking: bookings,
		Payment: payments,
	}

	config := &utils.Config{
		Booking: utils.BookingConfig{PlatformFee: 500, Currency: "INR"},
	}

	service := usecase.NewBookingService(
		db, repo, gw, mail, access.NewPolicy(), config, zap.NewNop())

	return &fixture{
		service:  service,
		db:       db,
		cars:     cars,
		bookings: bookings,
		payments: payments,
		gateway:  gw,
		mailer:   mail,
		carID:    carID,
		dealerID: dealerID,
		actor:    access.Actor{ID: userID, Role: entity.RoleCustomer},
	}
}

func tomorrowDate() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

// seedPendingBooking creates a booking+payment pair in initial state
func (f *fixture) seedPendingBooking(t *testing.T, orderID string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	f.bookings.bookings[bookingID] = &entity.Booking{
		Base:                entity.Base{ID: bookingID},
		UserID:              f.actor.ID,
		CarID:               f.carID,
		DealerID:            f.dealerID,
		PlatformFee:         500,
		PaymentStatus:       entity.PaymentStatusPending,
		BookingStatus:       entity.BookingStatusPending,
		DealerPaymentStatus: entity.PaymentStatusPending,
	}
	f.payments.payments[orderID] = &entity.Payment{
		Base:            entity.Base{ID: uuid.New()},
		BookingID:       bookingID,
		PaymentMethod:   "razorpay",
		Amount:          500,
		RazorpayOrderID: orderID,
		Status:          entity.PaymentStatusPending,
	}
	return bookingID
}

// ---------- preview ----------

func TestPreviewBookingSuccess(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.PreviewBooking(context.Background(), f.actor, &request.BookingPreviewRequest{
		CarID:       f.carID.String(),
		BookingDate: tomorrowDate(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.PlatformFee != 500 {
		t.Errorf("expected platform_fee 500, got %v", resp.PlatformFee)
	}
	if resp.PayableNow != 500 {
		t.Errorf("expected payable_now 500, got %v", resp.PayableNow)
	}
	if resp.Dealer.BusinessName != "City Motors" {
		t.Errorf("unexpected dealer: %+v", resp.Dealer)
	}
	if f.db.beginCount != 0 {
		t.Error("preview must not open a transaction")
	}
}

func TestPreviewBookingRejectsToday(t *testing.T) {
	f := newFixture(t)

	today := time.Now().Format("2006-01-02")
	_, err := f.service.PreviewBooking(context.Background(), f.actor, &request.BookingPreviewRequest{
		CarID:       f.carID.String(),
		BookingDate: today,
	})
	if !errors.Is(err, usecase.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for same-day booking, got %v", err)
	}
}

func TestPreviewBookingRejectsBadFormat(t *testing.T) {
	f := newFixture(t)

	for _, date := range []string{"2030/01/01", "tomorrow", "01-01-2030", ""} {
		_, err := f.service.PreviewBooking(context.Background(), f.actor, &request.BookingPreviewRequest{
			CarID:       f.carID.String(),
			BookingDate: date,
		})
		if err == nil {
			t.Errorf("expected error for date %q", date)
		}
	}
}

func TestPreviewBookingUnavailableCar(t *testing.T) {
	f := newFixture(t)
	f.cars.cars[f.carID].IsAvailable = false

	_, err := f.service.PreviewBooking(context.Background(), f.actor, &request.BookingPreviewRequest{
		CarID:       f.carID.String(),
		BookingDate: tomorrowDate(),
	})
	if !errors.Is(err, usecase.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}
}

// ---------- create booking ----------

func TestCreateBookingSuccess(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.actor, &request.CreateBookingRequest{
		CarID:       f.carID.String(),
		BookingDate: tomorrowDate(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.BookingID == "" {
		t.Fatal("expected booking id")
	}
	if resp.Razorpay.OrderID != "order_test_1" {
		t.Errorf("unexpected order id %q", resp.Razorpay.OrderID)
	}
	if resp.Razorpay.Amount != 50000 {
		t.Errorf("expected 50000 minor units, got %d", resp.Razorpay.Amount)
	}

	if !f.db.lastTx.committed {
		t.Error("transaction should be committed")
	}

	bookingID := uuid.MustParse(resp.BookingID)
	booking := f.bookings.bookings[bookingID]
	if booking == nil {
		t.Fatal("booking not persisted")
	}
	if booking.BookingStatus != entity.BookingStatusPending ||
		booking.PaymentStatus != entity.PaymentStatusPending ||
		booking.DealerPaymentStatus != entity.PaymentStatusPending {
		t.Errorf("booking not in initial pending state: %+v", booking)
	}

	payment := f.payments.payments["order_test_1"]
	if payment == nil {
		t.Fatal("payment not persisted")
	}
	if payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment should be pending, got %s", payment.Status)
	}
	if payment.BookingID != bookingID {
		t.Error("payment not linked to booking")
	}
}

func TestCreateBookingCarUnavailable(t *testing.T) {
	f := newFixture(t)
	f.cars.cars[f.carID].IsAvailable = false

	_, err := f.service.CreateBooking(context.Background(), f.actor, &request.CreateBookingRequest{
		CarID:       f.carID.String(),
		BookingDate: tomorrowDate(),
	})
	if !errors.Is(err, usecase.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}

	if !f.db.lastTx.rolledBack {
		t.Error("transaction should be rolled back")
	}
	if len(f.bookings.bookings) != 0 {
		t.Error("no booking row should be created")
	}
	if len(f.payments.payments) != 0 {
		t.Error("no payment row should be created")
	}
	if f.gateway.orderCount != 0 {
		t.Error("gateway should not be called")
	}
}

func TestCreateBookingNonexistentCar(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.actor, &request.CreateBookingRequest{
		CarID:       uuid.New().String(),
		BookingDate: tomorrowDate(),
	})
	if !errors.Is(err, usecase.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}
}

func TestCreateBookingGatewayFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.gateway.createErr = errors.New("gateway timeout")

	_, err := f.service.CreateBooking(context.Background(), f.actor, &request.CreateBookingRequest{
		CarID:       f.carID.String(),
		BookingDate: tomorrowDate(),
	})
	if err == nil {
		t.Fatal("expected error when gateway fails")
	}

	if !f.db.lastTx.rolledBack {
		t.Error("transaction should be rolled back after gateway failure")
	}
	if f.db.lastTx.committed {
		t.Error("transaction must not be committed")
	}
	if len(f.payments.payments) != 0 {
		t.Error("no payment row should survive gateway failure")
	}
}

func TestCreateBookingRejectsToday(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.actor, &request.CreateBookingRequest{
		CarID:       f.carID.String(),
		BookingDate: time.Now().Format("2006-01-02"),
	})
	if !errors.Is(err, usecase.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if f.db.beginCount != 0 {
		t.Error("no transaction should be opened for an invalid date")
	}
}

// ---------- verify payment ----------

func TestVerifyPaymentSuccess(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")

	sig := gateway.Signature("order_1", "pay_1", testSecret)
	resp, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.BookingID != bookingID.String() {
		t.Errorf("unexpected booking id %q", resp.BookingID)
	}

	// Booking dan payment bertransisi bersama
	booking := f.bookings.bookings[bookingID]
	if booking.BookingStatus != entity.BookingStatusConfirmed || booking.PaymentStatus != entity.PaymentStatusPaid {
		t.Errorf("booking should be confirmed/paid, got %s/%s", booking.BookingStatus, booking.PaymentStatus)
	}
	payment := f.payments.payments["order_1"]
	if payment.Status != entity.PaymentStatusPaid {
		t.Errorf("payment should be paid, got %s", payment.Status)
	}
	if payment.TransactionID == nil || *payment.TransactionID != "pay_1" {
		t.Error("transaction id should be recorded")
	}

	if f.cars.cars[f.carID].IsAvailable {
		t.Error("car should leave available stock after confirmation")
	}
	if !f.db.lastTx.committed {
		t.Error("transaction should be committed")
	}

	if len(f.mailer.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].To != "asha@example.com" {
		t.Errorf("first email should go to customer, got %s", f.mailer.sent[0].To)
	}
	if f.mailer.sent[1].To != "dealer@example.com" {
		t.Errorf("second email should go to dealer, got %s", f.mailer.sent[1].To)
	}
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	f := newFixture(t)
	f.seedPendingBooking(t, "order_1")

	sig := gateway.Signature("order_1", "pay_1", testSecret)
	// single character mutation
	mutated := sig[:len(sig)-1] + string('0'+(sig[len(sig)-1]-'0'+1)%10)

	_, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: mutated,
	})
	if !errors.Is(err, usecase.ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}

	if f.db.beginCount != 0 {
		t.Error("no transaction should be opened on signature mismatch")
	}
	if f.payments.payments["order_1"].Status != entity.PaymentStatusPending {
		t.Error("payment must stay pending on signature mismatch")
	}
	if len(f.mailer.sent) != 0 {
		t.Error("no notification should be sent")
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newFixture(t)

	sig := gateway.Signature("order_x", "pay_1", testSecret)
	_, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_x",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	})
	if !errors.Is(err, usecase.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
	if !f.db.lastTx.rolledBack {
		t.Error("transaction should be rolled back")
	}
	if len(f.mailer.sent) != 0 {
		t.Error("no notification should be sent")
	}
}

func TestVerifyPaymentDuplicateCallback(t *testing.T) {
	f := newFixture(t)
	f.seedPendingBooking(t, "order_1")

	sig := gateway.Signature("order_1", "pay_1", testSecret)
	req := &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	}

	if _, err := f.service.VerifyPayment(context.Background(), req); err != nil {
		t.Fatalf("first callback failed: %v", err)
	}

	// Callback kedua match nol row karena status guard
	_, err := f.service.VerifyPayment(context.Background(), req)
	if !errors.Is(err, usecase.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound on duplicate, got %v", err)
	}

	if len(f.mailer.sent) != 2 {
		t.Errorf("duplicate callback must not re-send notifications, got %d emails", len(f.mailer.sent))
	}
}

func TestVerifyPaymentNotificationFailure(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")
	f.mailer.sendErr = errors.New("smtp down")

	sig := gateway.Signature("order_1", "pay_1", testSecret)
	_, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	})
	if err == nil {
		t.Fatal("notification failure should surface as request failure")
	}

	// State transition sudah durable meskipun notifikasi gagal
	booking := f.bookings.bookings[bookingID]
	if booking.BookingStatus != entity.BookingStatusConfirmed {
		t.Error("booking must stay confirmed after notification failure")
	}
	if !f.db.lastTx.committed {
		t.Error("transaction must stay committed")
	}
}

// ---------- payment failed callback ----------

func TestPaymentFailedCancelsBooking(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")
	f.cars.cars[f.carID].IsAvailable = false

	err := f.service.PaymentFailed(context.Background(), &request.PaymentFailedRequest{
		RazorpayOrderID: "order_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking := f.bookings.bookings[bookingID]
	if booking.BookingStatus != entity.BookingStatusCancelled ||
		booking.PaymentStatus != entity.PaymentStatusFailed ||
		booking.DealerPaymentStatus != entity.PaymentStatusFailed {
		t.Errorf("booking should be cancelled/failed/failed, got %+v", booking)
	}
	if f.payments.payments["order_1"].Status != entity.PaymentStatusFailed {
		t.Error("payment should be failed")
	}
	if f.payments.payments["order_1"].TransactionID != nil {
		t.Error("failed payment must not carry a transaction id")
	}
	if !f.cars.cars[f.carID].IsAvailable {
		t.Error("car should return to available stock")
	}
}

func TestPaymentFailedUnknownOrderIsNoop(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")

	err := f.service.PaymentFailed(context.Background(), &request.PaymentFailedRequest{
		RazorpayOrderID: "order_unknown",
	})
	if err != nil {
		t.Fatalf("unknown order must not be an error, got %v", err)
	}

	booking := f.bookings.bookings[bookingID]
	if booking.BookingStatus != entity.BookingStatusPending {
		t.Error("existing booking must be untouched")
	}
	if f.payments.payments["order_1"].Status != entity.PaymentStatusPending {
		t.Error("existing payment must be untouched")
	}
}

func TestPaymentFailedAfterConfirmIsNoop(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")

	sig := gateway.Signature("order_1", "pay_1", testSecret)
	if _, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	// Tidak ada transisi keluar dari confirmed
	if err := f.service.PaymentFailed(context.Background(), &request.PaymentFailedRequest{
		RazorpayOrderID: "order_1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking := f.bookings.bookings[bookingID]
	if booking.BookingStatus != entity.BookingStatusConfirmed {
		t.Error("confirmed booking must not be cancelled by a late failure callback")
	}
}

// ---------- history + access ----------

func TestGetBookingByIDOwnership(t *testing.T) {
	f := newFixture(t)
	bookingID := f.seedPendingBooking(t, "order_1")

	// Owner boleh
	if _, err := f.service.GetBookingByID(context.Background(), f.actor, bookingID.String()); err != nil {
		t.Fatalf("owner should view own booking: %v", err)
	}

	// User lain tidak
	stranger := access.Actor{ID: uuid.New(), Role: entity.RoleCustomer}
	if _, err := f.service.GetBookingByID(context.Background(), stranger, bookingID.String()); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	// Admin boleh
	admin := access.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	if _, err := f.service.GetBookingByID(context.Background(), admin, bookingID.String()); err != nil {
		t.Fatalf("admin should view any booking: %v", err)
	}
}

func TestGetUserBookingsReturnsPayment(t *testing.T) {
	f := newFixture(t)
	f.seedPendingBooking(t, "order_1")

	resp, err := f.service.GetUserBookings(context.Background(), f.actor, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(resp.Data))
	}
	if resp.Data[0].Payment == nil {
		t.Error("booking response should include payment")
	}
	if resp.Pagination.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Pagination.Total)
	}
}
