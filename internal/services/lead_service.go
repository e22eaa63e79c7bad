package services

import (
	"context"
	"errors"
	"strings"

	"travelbuddies/internal/catalog"
	"travelbuddies/internal/domain"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/leads"
	"travelbuddies/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadStore persists received leads. repositories.LeadRepository satisfies it.
type LeadStore interface {
	Enabled() bool
	Insert(ctx context.Context, l models.Lead) error
	ListRecent(ctx context.Context, kind string, limit int) ([]models.Lead, error)
}

// LeadService receives leads posted by the page workflow. A lead counts as
// accepted once it is stored or mailed to the agency.
type LeadService struct {
	Catalog   *catalog.Catalog
	Store     LeadStore
	Notifier  Notifier
	RequestID string
}

func (s LeadService) AcceptBooking(ctx context.Context, p models.BookingPayload) (models.Lead, error) {
	form := leads.BookingFormFromPayload(p)
	if err := form.Validate(); err != nil {
		return models.Lead{}, err
	}
	trip, err := s.Catalog.UpcomingByID(form.TripID)
	if err != nil {
		return models.Lead{}, err
	}
	if strings.TrimSpace(form.TripName) == "" {
		form.TripName = trip.Title
	}

	payload := form.Payload()
	lead := models.Lead{
		ID:            uuid.NewString(),
		Kind:          models.LeadBooking,
		TripID:        payload.TripID,
		TripName:      payload.TripName,
		FullName:      payload.FullName,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Travelers:     payload.Travelers,
		PreferredDate: payload.PreferredDate,
		Message:       payload.Message,
		CreatedAt:     utils.NowUTC(),
	}
	agency := s.Catalog.Agency()
	return lead, s.deliver(ctx, lead, leads.BookingSubject(form.TripName), leads.BookingBody(agency.Name, form))
}

func (s LeadService) AcceptEnquiry(ctx context.Context, p models.EnquiryPayload) (models.Lead, error) {
	form := leads.EnquiryFormFromPayload(p)
	if err := form.Validate(); err != nil {
		return models.Lead{}, err
	}

	payload := form.Payload()
	lead := models.Lead{
		ID:        uuid.NewString(),
		Kind:      models.LeadEnquiry,
		FullName:  payload.FullName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Subject:   payload.Subject,
		Message:   payload.Message,
		CreatedAt: utils.NowUTC(),
	}
	agency := s.Catalog.Agency()
	return lead, s.deliver(ctx, lead, leads.EnquirySubject(form), leads.EnquiryBody(agency.Name, form))
}

// RecentLeads lists stored leads for the operator inbox, newest first.
func (s LeadService) RecentLeads(ctx context.Context, kind string, limit int) ([]models.Lead, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "" && kind != string(models.LeadBooking) && kind != string(models.LeadEnquiry) {
		return nil, domain.ValidationError{Field: "kind", Msg: "kind must be booking or enquiry"}
	}
	if s.Store == nil || !s.Store.Enabled() {
		return nil, domain.UnavailableError{Msg: "lead store not configured"}
	}
	out, err := s.Store.ListRecent(ctx, kind, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "list leads", Err: err}
	}
	return out, nil
}

func (s LeadService) deliver(ctx context.Context, lead models.Lead, subject, body string) error {
	var stored, notified bool
	var errs []error

	if s.Store != nil && s.Store.Enabled() {
		if err := s.Store.Insert(ctx, lead); err != nil {
			errs = append(errs, err)
			utils.LogWarn(s.RequestID, "leads", "store_"+string(lead.Kind), "insert failed", zap.String("lead_id", lead.ID), zap.Error(err))
		} else {
			stored = true
		}
	}

	if s.Notifier != nil {
		to := s.Catalog.Agency().Email
		if err := s.Notifier.Notify(ctx, to, subject, body); err != nil {
			if !errors.Is(err, ErrNotifierDisabled) {
				errs = append(errs, err)
				utils.LogWarn(s.RequestID, "leads", "notify_"+string(lead.Kind), "notification failed", zap.String("lead_id", lead.ID), zap.Error(err))
			}
		} else {
			notified = true
		}
	}

	if !stored && !notified {
		return domain.UnavailableError{Msg: "lead could not be delivered", Err: errors.Join(errs...)}
	}
	utils.LogEvent(s.RequestID, "leads", "accept_"+string(lead.Kind), "lead accepted",
		zap.String("lead_id", lead.ID), zap.Bool("stored", stored), zap.Bool("notified", notified))
	return nil
}
