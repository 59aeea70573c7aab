package utils

import (
	"context"

	"teamchat-client/cache"

	"golang.org/x/crypto/bcrypt"
)

const appLockKey = "applock:passcode"

// SetAppLock stores the bcrypt hash of the local app-lock passcode.
func SetAppLock(ctx context.Context, c cache.Service, passcode string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), 14)
	if err != nil {
		return err
	}
	return c.Set(ctx, appLockKey, string(hash))
}

// VerifyAppLock checks a passcode against the stored hash. With no passcode
// configured the lock is open.
func VerifyAppLock(ctx context.Context, c cache.Service, passcode string) bool {
	hash, err := c.Get(ctx, appLockKey)
	if err != nil {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}

// ClearAppLock removes the passcode.
func ClearAppLock(ctx context.Context, c cache.Service) error {
	return c.Delete(ctx, appLockKey)
}
