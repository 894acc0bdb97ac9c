package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Verifier authenticates callbacks with the merchant's shared hash secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign computes the lowercase hex HMAC-SHA512 of the canonical string.
func (v *Verifier) Sign(canonical string) string {
	mac := hmac.New(sha512.New, v.secret)
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyParams canonicalizes params and checks the carried vnp_SecureHash.
// A missing or empty signature is always invalid. The comparison is
// constant-time; hmac.Equal never short-circuits on the first differing
// byte.
func (v *Verifier) VerifyParams(params CallbackParams) bool {
	received, ok := params.SecureHash()
	if !ok {
		return false
	}
	expected := v.Sign(Canonicalize(params))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(received)))
}
