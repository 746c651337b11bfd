package mailer

import (
	"fmt"
)

// CustomerBookedEmail adalah konfirmasi untuk customer setelah payment verified
func CustomerBookedEmail(to, name, car, date, dealerEmail string) Email {
	body := fmt.Sprintf(`<div>
<p>Hi %s,</p>
<p>Your booking for <b>%s</b> on <b>%s</b> is confirmed.</p>
<p>The remaining car amount is payable directly to the dealer. You can reach the dealer at %s.</p>
<p>Thank you for booking with us.</p>
</div>`, name, car, date, dealerEmail)

	return Email{
		To:      to,
		Subject: "Your Car Booking is Confirmed",
		Body:    body,
	}
}

// DealerBookedEmail memberitahu dealer ada booking baru yang sudah dibayar
func DealerBookedEmail(to, dealerName, customerName, car, date, customerEmail string) Email {
	body := fmt.Sprintf(`<div>
<p>Hi %s,</p>
<p>You have a new booking: <b>%s</b> on <b>%s</b>, booked by %s.</p>
<p>The platform fee has been collected. Please contact the customer at %s to settle the remaining amount.</p>
</div>`, dealerName, car, date, customerName, customerEmail)

	return Email{
		To:      to,
		Subject: "New Car Booking Received",
		Body:    body,
	}
}
