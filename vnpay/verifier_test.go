package vnpay

import "testing"

func signedParams(t *testing.T, v *Verifier, base CallbackParams) CallbackParams {
	t.Helper()
	params := make(CallbackParams, len(base)+1)
	for k, val := range base {
		params[k] = val
	}
	params[ParamSecureHash] = v.Sign(Canonicalize(params))
	return params
}

func TestVerifier_AcceptsCorrectSignature(t *testing.T) {
	v := NewVerifier("test-secret")
	params := signedParams(t, v, CallbackParams{
		"vnp_Amount":            "1000000",
		"vnp_TxnRef":            "ORD1",
		"vnp_ResponseCode":      "00",
		"vnp_TransactionStatus": "00",
	})

	if !v.VerifyParams(params) {
		t.Error("Expected valid signature to verify")
	}
}

func TestVerifier_RejectsTamperedValue(t *testing.T) {
	v := NewVerifier("test-secret")
	base := CallbackParams{
		"vnp_Amount":            "1000000",
		"vnp_TxnRef":            "ORD1",
		"vnp_ResponseCode":      "00",
		"vnp_TransactionStatus": "00",
	}
	params := signedParams(t, v, base)

	// Changing any single signed value must break verification.
	for key := range base {
		tampered := make(CallbackParams, len(params))
		for k, val := range params {
			tampered[k] = val
		}
		tampered[key] = tampered[key] + "0"
		if v.VerifyParams(tampered) {
			t.Errorf("Expected verification to fail after tampering with %s", key)
		}
	}
}

func TestVerifier_RejectsMutatedSignature(t *testing.T) {
	v := NewVerifier("test-secret")
	params := signedParams(t, v, CallbackParams{"vnp_TxnRef": "ORD1"})

	sig := params[ParamSecureHash]
	if sig[0] == 'a' {
		params[ParamSecureHash] = "b" + sig[1:]
	} else {
		params[ParamSecureHash] = "a" + sig[1:]
	}
	if v.VerifyParams(params) {
		t.Error("Expected mutated signature to be rejected")
	}
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	signer := NewVerifier("secret-one")
	verifier := NewVerifier("secret-two")
	params := signedParams(t, signer, CallbackParams{"vnp_TxnRef": "ORD1"})

	if verifier.VerifyParams(params) {
		t.Error("Expected signature from a different secret to be rejected")
	}
}

func TestVerifier_MissingSignatureIsInvalid(t *testing.T) {
	v := NewVerifier("test-secret")

	if v.VerifyParams(CallbackParams{"vnp_TxnRef": "ORD1"}) {
		t.Error("Expected missing signature to be invalid")
	}
	if v.VerifyParams(CallbackParams{"vnp_TxnRef": "ORD1", ParamSecureHash: ""}) {
		t.Error("Expected empty signature to be invalid")
	}
}

func TestVerifier_AcceptsUppercaseHexSignature(t *testing.T) {
	v := NewVerifier("test-secret")
	params := signedParams(t, v, CallbackParams{"vnp_TxnRef": "ORD1"})

	upper := ""
	for _, r := range params[ParamSecureHash] {
		if r >= 'a' && r <= 'f' {
			upper += string(r - 32)
		} else {
			upper += string(r)
		}
	}
	params[ParamSecureHash] = upper
	if !v.VerifyParams(params) {
		t.Error("Expected uppercase hex signature to verify")
	}
}
