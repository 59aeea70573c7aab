package utils

import (
	"time"

	"github.com/pquerna/otp/totp"
)

// DeviceTOTP computes the current one-time code from a provisioned device
// secret, so a headless device can complete the 2FA step when its refresh
// token expires.
func DeviceTOTP(secret string) (string, error) {
	return totp.GenerateCode(secret, time.Now())
}

// ValidateTOTP checks a user-entered 2FA code against the account secret.
func ValidateTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
