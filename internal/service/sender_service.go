package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"coworking/internal/db"
	"coworking/internal/entities"
	"coworking/internal/logger"
)

//go:embed templates/booking_email.html
var templateFS embed.FS

var bookingEmailTemplate = template.Must(template.ParseFS(templateFS, "templates/booking_email.html"))

const notifyTimeout = 30 * time.Second

// Notifier tells users about booking status changes. Either sender may be nil, in which
// case that channel is skipped. Sends run in the background; Wait blocks until they finish.
type Notifier struct {
	email    EmailSender
	sms      SMSSender
	currency string
	log      *logger.Logger
	wg       sync.WaitGroup
}

func NewNotifier(email EmailSender, sms SMSSender, currency string, log *logger.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, currency: currency, log: log}
}

func (n *Notifier) BookingStatusChanged(b *db.Booking, u *db.User) {
	if n == nil || u == nil {
		return
	}
	if n.email != nil && u.Email != "" {
		subject, plain, html, err := n.composeEmail(b, u)
		if err != nil {
			n.log.Error("Failed to render booking email", "booking_code", b.Code, "error", err)
		} else {
			n.run(func(ctx context.Context) error {
				return n.email.SendEmail(ctx, u.Email, u.FullName(), subject, plain, html)
			}, "email", b.Code)
		}
	}
	if n.sms != nil && u.Phone != "" {
		body := fmt.Sprintf("Coworking: booking %s is %s. %s %s-%s at %s.",
			b.Code, b.Status, b.BookingDate, b.StartTime, b.EndTime, b.SpaceName)
		n.run(func(ctx context.Context) error {
			return n.sms.SendSMS(ctx, u.Phone, body)
		}, "sms", b.Code)
	}
}

func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) run(send func(ctx context.Context) error, channel, code string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			n.log.Warn("Booking notification failed", "channel", channel, "booking_code", code, "error", err)
		}
	}()
}

func (n *Notifier) composeEmail(b *db.Booking, u *db.User) (subject, plain, html string, err error) {
	data := entities.BookingEmailData{
		UserName:    u.FullName(),
		BookingCode: b.Code,
		SpaceName:   b.SpaceName,
		Date:        b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  fmt.Sprintf("%.2f %s", b.TotalPrice, strings.ToUpper(n.currency)),
		Status:      b.Status,
		CurrentYear: time.Now().Year(),
	}

	subject = fmt.Sprintf("Your booking is %s - Code: %s", data.Status, data.BookingCode)
	plain = fmt.Sprintf(
		"Hello %s,\n\nYour booking is %s.\n\n"+
			"Booking code: %s\n"+
			"Space: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n"+
			"Total: %s\n\n"+
			"Thank you for booking with us.",
		data.UserName, data.Status, data.BookingCode, data.SpaceName, data.Date,
		data.StartTime, data.EndTime, data.TotalPrice,
	)

	var buf bytes.Buffer
	if err := bookingEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, plain, buf.String(), nil
}
