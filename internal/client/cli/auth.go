package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ventline/ventline/internal/client/authflow"
)

// getSimpleText and readOTP are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	readOTP       = ReadOTP
)

// Login runs the sign-in flow: phone capture, OTP request, OTP verify.
func (a *App) Login(ctx context.Context) {
	flow := a.newFlow(authflow.KindLogin)
	if !a.runPhoneAndOtp(ctx, flow) {
		return
	}
	if identity := a.store.Current().Identity; identity != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", identity.Username)
	}
}

// Signup runs the sign-up flow: phone capture, OTP request, OTP verify,
// then the optional profile completion step.
func (a *App) Signup(ctx context.Context) {
	flow := a.newFlow(authflow.KindSignup)
	if !a.runPhoneAndOtp(ctx, flow) {
		return
	}

	fmt.Fprintln(a.out, "Account created. You can complete your profile now or skip it.")
	a.runCompleteProfile(ctx, flow)
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) {
	if err := a.store.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) newFlow(kind authflow.Kind) *authflow.Flow {
	return authflow.New(a.client, a.store, kind, a.config.DefaultCountryCode, a.config.ResendCooldown)
}

// runPhoneAndOtp drives the flow through the phone and OTP steps. Returns
// true once the session store holds the verified identity.
func (a *App) runPhoneAndOtp(ctx context.Context, flow *authflow.Flow) bool {
	for flow.Step() == authflow.StepEnterPhone {
		phone, err := getSimpleText(a.reader, "Enter your phone number (with country code, e.g. +15551234567)", a.out)
		if err != nil {
			return false
		}
		if phone == "" {
			return false
		}
		if res := flow.RequestOTP(ctx, phone); !res.OK {
			fmt.Fprintln(a.out, res.Message)
			continue
		}
		fmt.Fprintf(a.out, "OTP sent to %s\n", flow.Phone())
	}

	for flow.Step() == authflow.StepEnterOtp {
		code, err := readOTP(a.reader, a.out, 6)
		switch {
		case errors.Is(err, ErrResendRequested):
			if res := flow.ResendOTP(ctx); !res.OK {
				fmt.Fprintln(a.out, res.Message)
			} else {
				fmt.Fprintf(a.out, "OTP re-sent to %s\n", flow.Phone())
			}
			continue
		case errors.Is(err, ErrOtpCancelled):
			return false
		case err != nil:
			return false
		}

		if res := flow.VerifyOTP(ctx, code); !res.OK {
			fmt.Fprintln(a.out, res.Message)
		}
	}

	return flow.Step() != authflow.StepEnterPhone
}

// runCompleteProfile drives the optional enrichment step. Failures leave the
// flow in the profile step so the user can retry or skip.
func (a *App) runCompleteProfile(ctx context.Context, flow *authflow.Flow) {
	for flow.Step() == authflow.StepCompleteProfile {
		answer, err := getSimpleText(a.reader, "Complete profile now? (y/N)", a.out)
		if err != nil || (answer != "y" && answer != "Y") {
			flow.Skip()
			return
		}

		update, err := a.promptProfile()
		if err != nil {
			flow.Skip()
			return
		}

		if res := flow.CompleteProfile(ctx, update); !res.OK {
			fmt.Fprintln(a.out, res.Message)
			continue
		}
		fmt.Fprintln(a.out, "Profile saved")
	}
}
