package notifications

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"hotel-management-backend/config"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer
func GetMailer() *gomail.Dialer {
	return mailer
}

// SendBookingConfirmationEmail delivers the confirmation for an online
// booking, including the reference code the guest uses for lookups.
func SendBookingConfirmationEmail(email, guestName, reservationNumber, referenceCode, resourceName, checkIn, checkOut, total string) error {
	if mailer == nil {
		err := fmt.Errorf("mailer is not initialized")
		config.Logger.Error("Email send failed: mailer is not initialized",
			zap.String("to_email", email),
			zap.String("reservation_number", reservationNumber),
			zap.Error(err),
		)
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmation %s", reservationNumber))

	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour booking %s for %s (%s to %s) has been received.\nTotal: %s\nReference code: %s\n\nKeep the reference code to look up your booking.",
		guestName, reservationNumber, resourceName, checkIn, checkOut, total, referenceCode))
	m.AddAlternative("text/html", fmt.Sprintf(`
		<html>
			<head>
				<meta charset="utf-8">
				<title>Booking Confirmation</title>
			</head>
			<body>
				<p>Dear %s,</p>
				<p>Your booking <strong>%s</strong> for %s (%s to %s) has been received.</p>
				<p>Total: <strong>%s</strong></p>
				<p>Reference code: <strong>%s</strong></p>
				<p>Keep the reference code to look up your booking.</p>
			</body>
		</html>
	`, guestName, reservationNumber, resourceName, checkIn, checkOut, total, referenceCode))

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send email via SMTP",
			zap.String("to_email", email),
			zap.String("reservation_number", reservationNumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	config.Logger.Info("Booking confirmation email sent",
		zap.String("to_email", email),
		zap.String("reservation_number", reservationNumber),
	)
	return nil
}
