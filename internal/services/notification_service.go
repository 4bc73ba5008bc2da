package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/pkg/mailer"
)

// BookingNotifier delivers guest-facing notifications about a booking.
// Delivery is best effort: callers log failures and never roll back the
// change that triggered the notification.
type BookingNotifier interface {
	BookingApproved(booking *models.Booking) error
	BookingDenied(booking *models.Booking) error
	BookingCancelled(booking *models.Booking) error
	BookingRescheduled(booking *models.Booking) error
	ContactReceived(contact *models.Contact) error
}

// EmailNotifier implements BookingNotifier over an email gateway
type EmailNotifier struct {
	gateway    mailer.Gateway
	adminEmail string
	logger     *logrus.Logger
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(gateway mailer.Gateway, adminEmail string, logger *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{
		gateway:    gateway,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

const stayDateLayout = "Mon, 2 Jan 2006"

// BookingApproved emails the guest that their booking was approved
func (n *EmailNotifier) BookingApproved(booking *models.Booking) error {
	subject := fmt.Sprintf("Your booking for %s is confirmed", booking.ListingTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nGreat news - your booking has been approved!\n\n"+
			"Property: %s\nCheck-in: %s\nCheck-out: %s\nTotal: $%.2f\n\n"+
			"We look forward to hosting you.\n",
		booking.GuestName, booking.ListingTitle,
		booking.Checkin.Format(stayDateLayout), booking.Checkout.Format(stayDateLayout),
		booking.TotalAmount,
	)
	return n.gateway.Send(booking.GuestEmail, subject, body)
}

// BookingDenied emails the guest that their booking was denied
func (n *EmailNotifier) BookingDenied(booking *models.Booking) error {
	subject := fmt.Sprintf("Update on your booking for %s", booking.ListingTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nUnfortunately we are unable to accommodate your booking request "+
			"for %s (%s to %s).\n\nIf you already paid, your payment will be refunded.\n",
		booking.GuestName, booking.ListingTitle,
		booking.Checkin.Format(stayDateLayout), booking.Checkout.Format(stayDateLayout),
	)
	return n.gateway.Send(booking.GuestEmail, subject, body)
}

// BookingCancelled emails the guest that their booking was cancelled
func (n *EmailNotifier) BookingCancelled(booking *models.Booking) error {
	subject := fmt.Sprintf("Your booking for %s was cancelled", booking.ListingTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s (%s to %s) has been cancelled.\n",
		booking.GuestName, booking.ListingTitle,
		booking.Checkin.Format(stayDateLayout), booking.Checkout.Format(stayDateLayout),
	)
	return n.gateway.Send(booking.GuestEmail, subject, body)
}

// BookingRescheduled emails the guest their updated stay dates
func (n *EmailNotifier) BookingRescheduled(booking *models.Booking) error {
	subject := fmt.Sprintf("Your booking dates for %s changed", booking.ListingTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s has been updated.\n\n"+
			"New check-in: %s\nNew check-out: %s\nNew total: $%.2f\n",
		booking.GuestName, booking.ListingTitle,
		booking.Checkin.Format(stayDateLayout), booking.Checkout.Format(stayDateLayout),
		booking.TotalAmount,
	)
	return n.gateway.Send(booking.GuestEmail, subject, body)
}

// ContactReceived forwards a contact form submission to the admin inbox
func (n *EmailNotifier) ContactReceived(contact *models.Contact) error {
	if n.adminEmail == "" {
		n.logger.Warn("No admin email configured, skipping contact notification")
		return nil
	}

	subject := "New contact form message"
	if contact.Subject != nil && *contact.Subject != "" {
		subject = fmt.Sprintf("New contact form message: %s", *contact.Subject)
	}

	body := fmt.Sprintf(
		"From: %s <%s>\n\n%s\n",
		contact.Name, contact.Email, contact.Message,
	)
	return n.gateway.Send(n.adminEmail, subject, body)
}
