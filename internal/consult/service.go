// Package consult books menopause consultations: it computes the appointment
// slot, emails the confirmation and records the booking.
package consult

import (
	"context"
	"fmt"
	"time"

	"menoassist-chatbot/internal/mail"
	"menoassist-chatbot/pkg"
)

// AppointmentTimeFormat is the timestamp layout used in confirmation emails
// and API responses.
const AppointmentTimeFormat = "2006-01-02 15:04:05"

// Recorder is the persistence collaborator for bookings.
type Recorder interface {
	SaveConsultation(ctx context.Context, userID int64, name, email string, appointmentAt time.Time) (string, error)
	SaveRecord(ctx context.Context, userID int64, stage string, answers pkg.Answers) error
}

// Service coordinates one booking end to end.  The clock is injected so tests
// can pin the appointment computation.
type Service struct {
	Repo   Recorder
	Mailer mail.Mailer
	Now    func() time.Time
}

// NewService constructs a booking service using the wall clock.
func NewService(repo Recorder, mailer mail.Mailer) *Service {
	return &Service{Repo: repo, Mailer: mailer, Now: time.Now}
}

// Book schedules a consultation for the user: compute the slot, send the
// confirmation email, then persist the booking and a funnel record.  The
// consultation id and slot are returned for the caller's response and any
// follow-up notification.
func (s *Service) Book(ctx context.Context, userID int64, name, email string) (string, time.Time, error) {
	appointmentAt := ComputeAppointment(s.Now())
	formatted := appointmentAt.Format(AppointmentTimeFormat)

	subject := "Your Menopause Consultation is Confirmed"
	body := fmt.Sprintf("Dear %s,\n\nYour consultation is confirmed for %s.\n\nBest Regards,\nMenopause Assistant",
		name, formatted)
	if err := s.Mailer.Send(ctx, email, subject, body); err != nil {
		return "", time.Time{}, err
	}

	id, err := s.Repo.SaveConsultation(ctx, userID, name, email, appointmentAt)
	if err != nil {
		return "", time.Time{}, err
	}
	record := pkg.Answers{"name": name, "email": email, "appointment_time": formatted}
	if err := s.Repo.SaveRecord(ctx, userID, "consultation", record); err != nil {
		return "", time.Time{}, err
	}
	return id, appointmentAt, nil
}
