package mailer

import (
	"context"
)

type Email struct {
	To      string
	Subject string
	Body    string // HTML
}

// Mailer interface supaya pengiriman notifikasi bisa diganti
// (SMTP production, fake di test)
type Mailer interface {
	Send(ctx context.Context, e Email) error
}
