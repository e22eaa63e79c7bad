// Package leads runs the booking and enquiry submissions: validate locally,
// make one remote attempt, and hand off to the visitor's mail client when the
// remote endpoint does not accept the lead.
package leads

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/utils"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle                      State = "idle"
	StateValidating                State = "validating"
	StateSubmitting                State = "submitting"
	StateSucceeded                 State = "succeeded"
	StateFailedRemoteFallbackLocal State = "fallback_local"
)

// Terminal reports whether the form closes in this state.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailedRemoteFallbackLocal
}

var (
	// ErrRemoteUnavailable covers every remote failure: transport errors,
	// timeouts and non-2xx answers are not told apart.
	ErrRemoteUnavailable = errors.New("remote lead endpoint unavailable")
	// ErrSubmissionInProgress is returned when a form is submitted again while
	// its first submission is still running.
	ErrSubmissionInProgress = errors.New("submission already in progress")
)

const (
	MsgBookingSent  = "Booking request sent successfully!"
	MsgEnquirySent  = "Enquiry sent successfully!"
	MsgOpeningEmail = "Opening your email client..."
)

// Submitter makes the single remote attempt.
type Submitter interface {
	SendBooking(ctx context.Context, p models.BookingPayload) error
	SendEnquiry(ctx context.Context, p models.EnquiryPayload) error
}

// Handoff passes a composed message to the visitor's mail client. It cannot fail.
type Handoff interface {
	Open(msg MailtoMessage)
}

type HandoffFunc func(msg MailtoMessage)

func (f HandoffFunc) Open(msg MailtoMessage) { f(msg) }

// FallbackRecorder keeps remote failures visible to the operator, since the
// visitor is never shown them.
type FallbackRecorder interface {
	RecordFallback(ctx context.Context, ev models.FallbackEvent)
}

// Outcome is the result of one submission attempt.
type Outcome struct {
	State   State
	Message string
	// Err is the validation error when State is StateIdle.
	Err error
	// Mailto is set when the local fallback was used.
	Mailto      *MailtoMessage
	Transitions []State
}

// Session is one open form instance. Its submitting flag gates re-entry.
type Session struct {
	mu         sync.Mutex
	state      State
	submitting bool
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submitting reports whether a submission is in flight (the submit control is disabled).
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *Session) set(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) end(st State) {
	s.mu.Lock()
	s.state = st
	s.submitting = false
	s.mu.Unlock()
}

// Workflow carries the collaborators of one submission. It is a value type;
// callers copy it per request and set RequestID.
type Workflow struct {
	Agency    models.Agency
	Remote    Submitter
	Handoff   Handoff
	Recorder  FallbackRecorder
	RequestID string
}

// SubmitBooking runs the booking form through the workflow. The only error
// returned is ErrSubmissionInProgress; validation failures are reported in
// the Outcome so the form stays open.
func (w Workflow) SubmitBooking(ctx context.Context, sess *Session, form BookingForm) (Outcome, error) {
	return w.run(ctx, sess, submission{
		kind:     models.LeadBooking,
		tripID:   form.TripID,
		validate: form.Validate,
		remote: func(ctx context.Context) error {
			if w.Remote == nil {
				return ErrRemoteUnavailable
			}
			return w.Remote.SendBooking(ctx, form.Payload())
		},
		success: MsgBookingSent,
		mailto:  func() MailtoMessage { return BookingMailto(w.Agency.Email, w.Agency.Name, form) },
	})
}

// SubmitEnquiry is SubmitBooking for the general enquiry form.
func (w Workflow) SubmitEnquiry(ctx context.Context, sess *Session, form EnquiryForm) (Outcome, error) {
	return w.run(ctx, sess, submission{
		kind:     models.LeadEnquiry,
		validate: form.Validate,
		remote: func(ctx context.Context) error {
			if w.Remote == nil {
				return ErrRemoteUnavailable
			}
			return w.Remote.SendEnquiry(ctx, form.Payload())
		},
		success: MsgEnquirySent,
		mailto:  func() MailtoMessage { return EnquiryMailto(w.Agency.Email, w.Agency.Name, form) },
	})
}

type submission struct {
	kind     models.LeadKind
	tripID   string
	validate func() error
	remote   func(ctx context.Context) error
	success  string
	mailto   func() MailtoMessage
}

func (w Workflow) run(ctx context.Context, sess *Session, sub submission) (Outcome, error) {
	if sess == nil {
		sess = NewSession()
	}
	if !sess.begin() {
		return Outcome{State: StateSubmitting}, ErrSubmissionInProgress
	}

	out := Outcome{Transitions: []State{StateIdle}}
	step := func(st State) {
		out.Transitions = append(out.Transitions, st)
		sess.set(st)
	}

	step(StateValidating)
	if err := sub.validate(); err != nil {
		out.Transitions = append(out.Transitions, StateIdle)
		out.State = StateIdle
		out.Message = err.Error()
		out.Err = err
		sess.end(StateIdle)
		utils.LogEvent(w.RequestID, "leads", "validate_"+string(sub.kind), "validation failed", zap.Error(err))
		return out, nil
	}

	step(StateSubmitting)
	err := sub.remote(ctx)
	if err == nil {
		out.Transitions = append(out.Transitions, StateSucceeded)
		out.State = StateSucceeded
		out.Message = sub.success
		sess.end(StateSucceeded)
		utils.LogEvent(w.RequestID, "leads", "submit_"+string(sub.kind), "remote accepted lead")
		return out, nil
	}

	msg := sub.mailto()
	if w.Handoff != nil {
		w.Handoff.Open(msg)
	}
	if w.Recorder != nil {
		w.Recorder.RecordFallback(ctx, models.FallbackEvent{
			Kind:       sub.kind,
			TripID:     sub.tripID,
			Reason:     err.Error(),
			RequestID:  w.RequestID,
			OccurredAt: utils.NowUTC(),
		})
	}
	utils.LogWarn(w.RequestID, "leads", "fallback_"+string(sub.kind), "remote unavailable, handing off to mail client", zap.Error(err))

	out.Transitions = append(out.Transitions, StateFailedRemoteFallbackLocal)
	out.State = StateFailedRemoteFallbackLocal
	out.Message = MsgOpeningEmail
	out.Mailto = &msg
	sess.end(StateFailedRemoteFallbackLocal)
	return out, nil
}

// remoteError wraps a cause under ErrRemoteUnavailable.
func remoteError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRemoteUnavailable, fmt.Sprintf(format, args...))
}
