package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"travelbuddies/internal/domain"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/leads"

	"github.com/gin-gonic/gin"
)

// FormSessionHeader identifies one open modal. Requests without it get a
// one-off session, so they are not guarded against double submission.
const FormSessionHeader = "X-Form-Session"

type formResponse struct {
	State       leads.State   `json:"state"`
	Message     string        `json:"message"`
	Mailto      string        `json:"mailto,omitempty"`
	Transitions []leads.State `json:"transitions"`
}

// POST /forms/booking
func (h *Handlers) SubmitBookingForm(c *gin.Context) {
	var p models.BookingPayload
	if err := c.ShouldBind(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	form := leads.BookingFormFromPayload(p)
	if form.TripName == "" {
		if trip, err := h.Catalog.UpcomingByID(form.TripID); err == nil {
			form.TripName = trip.Title
		}
	}
	h.runForm(c, func(ctx context.Context, w leads.Workflow, sess *leads.Session) (leads.Outcome, error) {
		return w.SubmitBooking(ctx, sess, form)
	})
}

// POST /forms/enquiry
func (h *Handlers) SubmitEnquiryForm(c *gin.Context) {
	var p models.EnquiryPayload
	if err := c.ShouldBind(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	form := leads.EnquiryFormFromPayload(p)
	h.runForm(c, func(ctx context.Context, w leads.Workflow, sess *leads.Session) (leads.Outcome, error) {
		return w.SubmitEnquiry(ctx, sess, form)
	})
}

type submitFunc func(ctx context.Context, w leads.Workflow, sess *leads.Session) (leads.Outcome, error)

func (h *Handlers) runForm(c *gin.Context, submit submitFunc) {
	key, tracked := formSessionKey(c)
	sess := leads.NewSession()
	if tracked {
		sess = h.Sessions.Get(key)
	}

	wf := leads.Workflow{
		Agency:    h.Catalog.Agency(),
		Remote:    h.Remote,
		RequestID: middleware.GetRequestID(c),
	}
	if h.Fallbacks != nil {
		wf.Recorder = h.Fallbacks
	}

	out, err := submit(c.Request.Context(), wf, sess)
	if errors.Is(err, leads.ErrSubmissionInProgress) {
		RespondDomainError(c, domain.ConflictError{Resource: "form", Msg: err.Error(), Err: err})
		return
	}

	if out.State == leads.StateIdle {
		resp := gin.H{"state": out.State, "error": out.Message, "transitions": out.Transitions}
		var ve domain.ValidationError
		if errors.As(out.Err, &ve) && ve.Field != "" {
			resp["field"] = ve.Field
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	// Terminal: the modal closes and the next open starts a fresh session.
	if tracked {
		h.Sessions.Close(key)
	}

	resp := formResponse{State: out.State, Message: out.Message, Transitions: out.Transitions}
	if out.Mailto != nil {
		resp.Mailto = out.Mailto.URI()
	}
	c.JSON(http.StatusOK, resp)
}

func formSessionKey(c *gin.Context) (string, bool) {
	if k := strings.TrimSpace(c.GetHeader(FormSessionHeader)); k != "" && len(k) <= 128 {
		return "session:" + k, true
	}
	return "", false
}
