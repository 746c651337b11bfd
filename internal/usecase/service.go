package usecase

import (
	"car-booking/internal/access"
	"car-booking/internal/data/repository"
	"car-booking/pkg/database"
	"car-booking/pkg/gateway"
	"car-booking/pkg/mailer"
	"car-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Booking BookingService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	gw gateway.Client,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	policy := access.NewPolicy()

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Booking: NewBookingService(db, repo, gw, mail, policy, config, log),
	}
}
