package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

const sessionCookieName = "rb_admin_session"

// adminSubject is the fixed principal carried by the session token. The
// dashboard has a single operator, so the token only has to prove "this
// browser passed the password check", not identify a user.
const adminSubject = "admin"

// SessionTTL is how long an admin session cookie stays valid.
const SessionTTL = 7 * 24 * time.Hour

const minSecretLen = 32

// SessionCookieName returns the admin session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// CreateAdminToken generates a signed session token for the admin.
func CreateAdminToken(secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(adminSubject))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(adminSubject)) + "." + sig
}

// VerifyAdminToken checks the token's signature and subject.
func VerifyAdminToken(token string, secret []byte) error {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return err
	}
	if string(payload) != adminSubject {
		return errors.New("unknown session subject")
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return errors.New("invalid signature")
	}
	return nil
}

// SessionSecretBytes derives the signing key from the configured secret,
// zero-padding to a 32-byte minimum.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
