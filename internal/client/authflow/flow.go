// Package authflow drives the phone → OTP → profile authentication sequence.
// A Flow is page-local and transient: it is created when the login or signup
// screen opens and discarded once the session store is populated. Steps only
// advance forward; the one exception is the resend self-loop on EnterOtp.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/models"
	"github.com/ventline/ventline/internal/client/session"
)

// timeNow is a test seam for the resend cooldown clock.
var timeNow = time.Now

const otpLength = 6

// Step is the flow's current position.
type Step int

const (
	StepEnterPhone Step = iota
	StepEnterOtp
	StepCompleteProfile
	StepAuthenticated
)

func (s Step) String() string {
	switch s {
	case StepEnterPhone:
		return "enter-phone"
	case StepEnterOtp:
		return "enter-otp"
	case StepCompleteProfile:
		return "complete-profile"
	case StepAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Kind distinguishes login (terminates after OTP verify) from signup
// (continues to the optional profile step).
type Kind int

const (
	KindLogin Kind = iota
	KindSignup
)

var (
	ErrWrongStep      = errors.New("action not allowed in current step")
	ErrInvalidOTP     = errors.New("otp must be exactly 6 digits")
	ErrResendCooldown = errors.New("resend otp is on cooldown")
)

// Result is the outcome of one flow action. On failure, Message carries the
// server's error text verbatim when one was provided, or a per-operation
// fallback; the flow stays in its current step so the action can be retried.
type Result struct {
	OK      bool
	Message string
}

func failure(err error, fallback string) Result {
	return Result{OK: false, Message: api.UserMessage(err, fallback)}
}

// ProfileUpdate collects the optional enrichment entered on the profile step.
type ProfileUpdate struct {
	Username string
	Details  models.ProfileDetails
}

// Flow is the auth state machine. Not safe for concurrent use; it belongs to
// a single interactive session.
type Flow struct {
	client             api.Client
	store              *session.Store
	kind               Kind
	defaultCountryCode string
	cooldown           time.Duration

	step           Step
	phone          string
	resendDeadline time.Time
}

// New creates a flow in StepEnterPhone.
func New(client api.Client, store *session.Store, kind Kind, defaultCountryCode string, resendCooldown time.Duration) *Flow {
	return &Flow{
		client:             client,
		store:              store,
		kind:               kind,
		defaultCountryCode: defaultCountryCode,
		cooldown:           resendCooldown,
		step:               StepEnterPhone,
	}
}

func (f *Flow) Step() Step { return f.step }

// Phone returns the normalized number the OTP was requested for.
func (f *Flow) Phone() string { return f.phone }

// RequestOTP normalizes the phone number and asks the server to send a code.
// On success the flow advances to StepEnterOtp; on failure it stays in
// StepEnterPhone with the error surfaced in the result.
func (f *Flow) RequestOTP(ctx context.Context, phone string) Result {
	if f.step != StepEnterPhone {
		return Result{OK: false, Message: ErrWrongStep.Error()}
	}

	normalized, err := NormalizePhone(phone, f.defaultCountryCode)
	if err != nil {
		return Result{OK: false, Message: "Please enter a phone number"}
	}

	if err := f.client.RequestOTP(ctx, normalized); err != nil {
		return failure(err, "Failed to send OTP")
	}

	f.phone = normalized
	f.step = StepEnterOtp
	return Result{OK: true}
}

// VerifyOTP submits the completed 6-digit code. On success the session store
// is logged in with the returned token and user; a login flow terminates in
// StepAuthenticated while a signup flow continues to StepCompleteProfile.
func (f *Flow) VerifyOTP(ctx context.Context, code string) Result {
	if f.step != StepEnterOtp {
		return Result{OK: false, Message: ErrWrongStep.Error()}
	}
	if !ValidOTP(code) {
		return Result{OK: false, Message: ErrInvalidOTP.Error()}
	}

	auth, err := f.client.VerifyOTP(ctx, f.phone, code)
	if err != nil {
		return failure(err, "Invalid OTP")
	}

	if err := f.store.Login(ctx, auth.Token, auth.User); err != nil {
		return Result{OK: false, Message: err.Error()}
	}

	if f.kind == KindSignup {
		f.step = StepCompleteProfile
	} else {
		f.step = StepAuthenticated
	}
	return Result{OK: true}
}

// ResendCooldownActive reports whether a resend would currently be rejected.
func (f *Flow) ResendCooldownActive() bool {
	return timeNow().Before(f.resendDeadline)
}

// ResendOTP re-requests a code for the same phone number. While the cooldown
// window is open the request is rejected locally, without a network call.
// The window opens on every attempt, whether or not the request succeeds.
func (f *Flow) ResendOTP(ctx context.Context) Result {
	if f.step != StepEnterOtp {
		return Result{OK: false, Message: ErrWrongStep.Error()}
	}
	if f.ResendCooldownActive() {
		remaining := f.resendDeadline.Sub(timeNow()).Round(time.Second)
		return Result{OK: false, Message: fmt.Sprintf("Please wait %s before requesting another OTP", remaining)}
	}

	f.resendDeadline = timeNow().Add(f.cooldown)

	if err := f.client.RequestOTP(ctx, f.phone); err != nil {
		return failure(err, "Failed to resend OTP")
	}
	return Result{OK: true}
}

// CompleteProfile saves the optional profile enrichment: a username change
// first (only when a non-empty name differing from the current one was
// entered), then the detail update. The first failure aborts and leaves the
// flow in StepCompleteProfile; both calls are idempotent to re-issue on
// retry. On success the store is re-logged-in with the refreshed identity.
func (f *Flow) CompleteProfile(ctx context.Context, update ProfileUpdate) Result {
	if f.step != StepCompleteProfile {
		return Result{OK: false, Message: ErrWrongStep.Error()}
	}

	current := f.store.Current().Identity
	if update.Username != "" && (current == nil || update.Username != current.Username) {
		if _, err := f.client.ChangeUsername(ctx, update.Username); err != nil {
			return failure(err, "Failed to change username")
		}
	}

	auth, err := f.client.UpdateUserDetails(ctx, update.Details)
	if err != nil {
		return failure(err, "Profile update failed")
	}

	token := auth.Token
	if token == "" {
		token = f.store.Token()
	}
	if err := f.store.Login(ctx, token, auth.User); err != nil {
		return Result{OK: false, Message: err.Error()}
	}

	f.step = StepAuthenticated
	return Result{OK: true}
}

// Skip finishes a signup flow without touching the profile.
func (f *Flow) Skip() Result {
	if f.step != StepCompleteProfile {
		return Result{OK: false, Message: ErrWrongStep.Error()}
	}
	f.step = StepAuthenticated
	return Result{OK: true}
}
