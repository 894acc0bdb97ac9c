// Package vnpay implements the VNPay gateway callback protocol: parameter
// canonicalization, HMAC-SHA512 signature verification and result-code
// interpretation. Everything here is pure; persistence and HTTP live
// elsewhere.
package vnpay

import "net/url"

// Well-known callback parameter names.
const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
	ParamTxnRef         = "vnp_TxnRef"
	ParamResponseCode   = "vnp_ResponseCode"
	ParamTxnStatus      = "vnp_TransactionStatus"
	ParamAmount         = "vnp_Amount"
)

// CallbackParams is the flat parameter set of one gateway callback, exactly
// as received on the wire. Treated as immutable after parsing.
type CallbackParams map[string]string

// ParseCallback flattens query/form values into CallbackParams. VNPay sends
// each parameter once; if a key repeats, the first value wins.
func ParseCallback(values url.Values) CallbackParams {
	params := make(CallbackParams, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}

// SecureHash returns the received signature, if any.
func (p CallbackParams) SecureHash() (string, bool) {
	sig, ok := p[ParamSecureHash]
	return sig, ok && sig != ""
}

// TxnRef returns the order reference carried by the callback.
func (p CallbackParams) TxnRef() string {
	return p[ParamTxnRef]
}

// HasResultFields reports whether both fields needed to interpret the
// outcome are present.
func (p CallbackParams) HasResultFields() bool {
	_, hasCode := p[ParamResponseCode]
	_, hasStatus := p[ParamTxnStatus]
	return hasCode && hasStatus
}
