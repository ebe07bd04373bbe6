package authflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/models"
	"github.com/ventline/ventline/internal/client/session"
)

// ---- helpers ----

type memRepo struct {
	m map[string]string
}

func newMemRepo() *memRepo { return &memRepo{m: make(map[string]string)} }

func (r *memRepo) Get(ctx context.Context, key string) (string, error) { return r.m[key], nil }
func (r *memRepo) Set(ctx context.Context, key, value string) error {
	r.m[key] = value
	return nil
}
func (r *memRepo) Delete(ctx context.Context, key string) error {
	delete(r.m, key)
	return nil
}

// fakeClient implements api.Client for flow unit tests.
type fakeClient struct {
	RequestOTPErr   error
	RequestOTPCalls int
	LastOTPPhone    string

	VerifyRet       *models.AuthResult
	VerifyErr       error
	VerifyCalls     int
	LastVerifyPhone string
	LastVerifyCode  string

	ChangeUsernameErr   error
	ChangeUsernameCalls int
	LastNewUsername     string

	UpdateRet   *models.AuthResult
	UpdateErr   error
	UpdateCalls int
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) RequestOTP(ctx context.Context, phone string) error {
	f.RequestOTPCalls++
	f.LastOTPPhone = phone
	return f.RequestOTPErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, phone, code string) (*models.AuthResult, error) {
	f.VerifyCalls++
	f.LastVerifyPhone = phone
	f.LastVerifyCode = code
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) { return nil, nil }

func (f *fakeClient) GetUserDetails(ctx context.Context, userID string) (*models.User, error) {
	return nil, nil
}

func (f *fakeClient) ChangeUsername(ctx context.Context, newUsername string) (*models.User, error) {
	f.ChangeUsernameCalls++
	f.LastNewUsername = newUsername
	return &models.User{Username: newUsername}, f.ChangeUsernameErr
}

func (f *fakeClient) UpdateUserDetails(ctx context.Context, details models.ProfileDetails) (*models.AuthResult, error) {
	f.UpdateCalls++
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) CreateVent(ctx context.Context, vent models.NewVent) error { return nil }
func (f *fakeClient) ListVents(ctx context.Context, opts api.ListOptions) ([]models.Vent, error) {
	return nil, nil
}
func (f *fakeClient) FeedVents(ctx context.Context, page, limit int) ([]models.Vent, error) {
	return nil, nil
}
func (f *fakeClient) MyVents(ctx context.Context) ([]models.Vent, error) { return nil, nil }
func (f *fakeClient) SearchVents(ctx context.Context, query string) ([]models.Vent, error) {
	return nil, nil
}
func (f *fakeClient) ReactToVent(ctx context.Context, ventID string, reaction models.Reaction) error {
	return nil
}
func (f *fakeClient) DeleteVent(ctx context.Context, ventID string) error { return nil }
func (f *fakeClient) ReportVent(ctx context.Context, ventID string, reason string) error {
	return nil
}
func (f *fakeClient) MatchSuggestions(ctx context.Context) ([]models.Match, error) { return nil, nil }
func (f *fakeClient) PendingMatches(ctx context.Context) (*models.PendingMatches, error) {
	return nil, nil
}
func (f *fakeClient) MatchHistory(ctx context.Context) ([]models.MatchRecord, error) {
	return nil, nil
}
func (f *fakeClient) AcceptMatch(ctx context.Context, matchID string) error { return nil }
func (f *fakeClient) RejectMatch(ctx context.Context, matchID string) error { return nil }
func (f *fakeClient) UnmatchUser(ctx context.Context, matchID string) error { return nil }
func (f *fakeClient) RefreshMatches(ctx context.Context) error              { return nil }

func newTestFlow(t *testing.T, client api.Client, kind Kind) (*Flow, *session.Store) {
	t.Helper()
	store := session.NewStore(newMemRepo())
	return New(client, store, kind, "1", 30*time.Second), store
}

func freezeClock(t *testing.T, at time.Time) func(d time.Duration) {
	t.Helper()
	current := at
	old := timeNow
	timeNow = func() time.Time { return current }
	t.Cleanup(func() { timeNow = old })
	return func(d time.Duration) { current = current.Add(d) }
}

// ---- TESTS ----

func TestRequestOTP_NormalizesBeforeNetwork(t *testing.T) {
	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)

	res := flow.RequestOTP(context.Background(), "5551234567")
	require.True(t, res.OK)
	require.Equal(t, "+15551234567", fc.LastOTPPhone)
	require.Equal(t, "+15551234567", flow.Phone())
	require.Equal(t, StepEnterOtp, flow.Step())
}

func TestRequestOTP_EmptyPhoneIsLocal(t *testing.T) {
	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)

	res := flow.RequestOTP(context.Background(), "  ")
	require.False(t, res.OK)
	require.Zero(t, fc.RequestOTPCalls)
	require.Equal(t, StepEnterPhone, flow.Step())
}

func TestRequestOTP_ServerMessageVerbatim(t *testing.T) {
	fc := &fakeClient{RequestOTPErr: &api.Error{Status: 429, Message: "Too many requests"}}
	flow, _ := newTestFlow(t, fc, KindLogin)

	res := flow.RequestOTP(context.Background(), "+15551234567")
	require.False(t, res.OK)
	require.Equal(t, "Too many requests", res.Message)
	require.Equal(t, StepEnterPhone, flow.Step())
}

func TestRequestOTP_TransportFallback(t *testing.T) {
	fc := &fakeClient{RequestOTPErr: api.ErrUnavailable}
	flow, _ := newTestFlow(t, fc, KindLogin)

	res := flow.RequestOTP(context.Background(), "+15551234567")
	require.False(t, res.OK)
	require.Equal(t, "Failed to send OTP", res.Message)
}

func TestVerifyOTP_LoginPopulatesSession(t *testing.T) {
	fc := &fakeClient{VerifyRet: &models.AuthResult{
		Token: "abc",
		User:  &models.User{ID: "u1", Username: "x"},
	}}
	flow, store := newTestFlow(t, fc, KindLogin)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	res := flow.VerifyOTP(context.Background(), "123456")
	require.True(t, res.OK)
	require.Equal(t, 1, fc.VerifyCalls)
	require.Equal(t, "+15551234567", fc.LastVerifyPhone)
	require.Equal(t, "123456", fc.LastVerifyCode)
	require.Equal(t, StepAuthenticated, flow.Step())

	current := store.Current()
	require.NotNil(t, current.Identity)
	require.Equal(t, "u1", current.Identity.ID)
	require.Equal(t, "abc", store.Token())
}

func TestVerifyOTP_SignupContinuesToProfile(t *testing.T) {
	fc := &fakeClient{VerifyRet: &models.AuthResult{Token: "abc", User: &models.User{ID: "u1"}}}
	flow, _ := newTestFlow(t, fc, KindSignup)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	require.True(t, flow.VerifyOTP(context.Background(), "123456").OK)
	require.Equal(t, StepCompleteProfile, flow.Step())
}

func TestVerifyOTP_ShortCodeIsLocal(t *testing.T) {
	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	res := flow.VerifyOTP(context.Background(), "12345")
	require.False(t, res.OK)
	require.Zero(t, fc.VerifyCalls)
	require.Equal(t, StepEnterOtp, flow.Step())
}

func TestVerifyOTP_ServerFailureStaysInStep(t *testing.T) {
	fc := &fakeClient{VerifyErr: &api.Error{Status: 400, Message: "Invalid OTP"}}
	flow, store := newTestFlow(t, fc, KindLogin)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	res := flow.VerifyOTP(context.Background(), "123456")
	require.False(t, res.OK)
	require.Equal(t, "Invalid OTP", res.Message)
	require.Equal(t, StepEnterOtp, flow.Step())
	require.Nil(t, store.Current().Identity)
}

func TestResendOTP_CooldownRejectsLocally(t *testing.T) {
	advance := freezeClock(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)
	require.Equal(t, 1, fc.RequestOTPCalls)

	require.True(t, flow.ResendOTP(context.Background()).OK)
	require.Equal(t, 2, fc.RequestOTPCalls)
	require.True(t, flow.ResendCooldownActive())

	// Inside the window: rejected locally, no network call.
	advance(29 * time.Second)
	res := flow.ResendOTP(context.Background())
	require.False(t, res.OK)
	require.Equal(t, 2, fc.RequestOTPCalls)

	// Window elapsed: callable again.
	advance(1 * time.Second)
	require.True(t, flow.ResendOTP(context.Background()).OK)
	require.Equal(t, 3, fc.RequestOTPCalls)
}

func TestResendOTP_FailureStillOpensWindow(t *testing.T) {
	freezeClock(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	fc.RequestOTPErr = api.ErrUnavailable
	res := flow.ResendOTP(context.Background())
	require.False(t, res.OK)
	require.Equal(t, "Failed to resend OTP", res.Message)
	require.True(t, flow.ResendCooldownActive())
}

func signupAtProfile(t *testing.T, fc *fakeClient) (*Flow, *session.Store) {
	t.Helper()
	fc.VerifyRet = &models.AuthResult{Token: "abc", User: &models.User{ID: "u1", Username: "anon123"}}
	flow, store := newTestFlow(t, fc, KindSignup)
	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)
	require.True(t, flow.VerifyOTP(context.Background(), "123456").OK)
	require.Equal(t, StepCompleteProfile, flow.Step())
	return flow, store
}

func TestCompleteProfile_UsernameFailureSurfacedVerbatim(t *testing.T) {
	fc := &fakeClient{ChangeUsernameErr: &api.Error{Status: 409, Message: "Username taken"}}
	flow, _ := signupAtProfile(t, fc)

	res := flow.CompleteProfile(context.Background(), ProfileUpdate{Username: "newname"})
	require.False(t, res.OK)
	require.Equal(t, "Username taken", res.Message)
	require.Equal(t, StepCompleteProfile, flow.Step())
	// The detail update was never reached.
	require.Zero(t, fc.UpdateCalls)

	// A retry re-issues both calls.
	fc.ChangeUsernameErr = nil
	fc.UpdateRet = &models.AuthResult{User: &models.User{ID: "u1", Username: "newname"}}
	res = flow.CompleteProfile(context.Background(), ProfileUpdate{Username: "newname"})
	require.True(t, res.OK)
	require.Equal(t, 2, fc.ChangeUsernameCalls)
	require.Equal(t, 1, fc.UpdateCalls)
	require.Equal(t, StepAuthenticated, flow.Step())
}

func TestCompleteProfile_SameUsernameSkipsChangeCall(t *testing.T) {
	fc := &fakeClient{}
	flow, store := signupAtProfile(t, fc)

	fc.UpdateRet = &models.AuthResult{User: &models.User{ID: "u1", Username: "anon123", Bio: "hi"}}
	res := flow.CompleteProfile(context.Background(), ProfileUpdate{Username: "anon123"})
	require.True(t, res.OK)
	require.Zero(t, fc.ChangeUsernameCalls)
	require.Equal(t, 1, fc.UpdateCalls)

	// No token in the response: the previous one is kept.
	require.Equal(t, "abc", store.Token())
	require.Equal(t, "hi", store.Current().Identity.Bio)
}

func TestSkip(t *testing.T) {
	fc := &fakeClient{}
	flow, store := signupAtProfile(t, fc)

	require.True(t, flow.Skip().OK)
	require.Equal(t, StepAuthenticated, flow.Step())
	require.Zero(t, fc.UpdateCalls)
	require.NotNil(t, store.Current().Identity)
}

func TestStepsOnlyAdvanceForward(t *testing.T) {
	fc := &fakeClient{}
	flow, _ := newTestFlow(t, fc, KindLogin)

	// OTP actions before the phone step completed.
	require.False(t, flow.VerifyOTP(context.Background(), "123456").OK)
	require.False(t, flow.ResendOTP(context.Background()).OK)
	require.False(t, flow.Skip().OK)
	require.Zero(t, fc.VerifyCalls)

	require.True(t, flow.RequestOTP(context.Background(), "+15551234567").OK)

	// Re-entering the phone step is not a transition the flow allows.
	require.False(t, flow.RequestOTP(context.Background(), "+2555").OK)
	require.Equal(t, StepEnterOtp, flow.Step())
}
