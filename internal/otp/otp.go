// Package otp implements the stateless time-based one-time-password engine.
//
// No challenge is stored server-side: the code is re-derived at verification
// time from the identifier (phone or email), a purpose salt, and the current
// time window. A purpose salt scopes a code to one flow so a phone code can
// never be replayed against the email flow and vice versa.
package otp

import (
	"encoding/base32"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Engine generates and verifies TOTP codes.
type Engine struct {
	digits otp.Digits
	period uint
	skew   uint
}

// NewEngine returns an engine producing 6-digit codes over 30s windows,
// accepting one adjacent window on verification for clock skew.
func NewEngine() *Engine {
	return &Engine{
		digits: otp.DigitsSix,
		period: 30,
		skew:   1,
	}
}

// secret derives the shared TOTP secret from identifier+salt. TOTP secrets
// are base32 strings, so the concatenation is encoded rather than used raw.
func (e *Engine) secret(identifier, purposeSalt string) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).
		EncodeToString([]byte(identifier + purposeSalt))
}

func (e *Engine) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    e.period,
		Skew:      e.skew,
		Digits:    e.digits,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// Generate computes the code for the current time window.
func (e *Engine) Generate(identifier, purposeSalt string) (string, error) {
	return e.generateAt(identifier, purposeSalt, time.Now())
}

// Verify reports whether code is valid for identifier+purposeSalt in the
// current window or one adjacent window. Expired and wrong codes are both
// simply false.
func (e *Engine) Verify(identifier, purposeSalt, code string) bool {
	return e.verifyAt(identifier, purposeSalt, code, time.Now())
}

func (e *Engine) generateAt(identifier, purposeSalt string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(e.secret(identifier, purposeSalt), t, e.opts())
}

func (e *Engine) verifyAt(identifier, purposeSalt, code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, e.secret(identifier, purposeSalt), t, e.opts())
	return err == nil && ok
}
