package vnpay

import (
	"net/url"
	"sort"
	"strings"
)

// Canonicalize builds the string VNPay signs: all parameters except the
// signature fields, sorted ascending by key (byte-wise, locale-free), each
// rendered as key=encodedValue with URI component encoding and space as
// '+', joined by '&'. Two param sets with the same key/value pairs always
// canonicalize identically regardless of wire order. Keys with empty values
// are kept as "key=".
func Canonicalize(params CallbackParams) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == ParamSecureHash || key == ParamSecureHashType {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[key]))
	}
	return b.String()
}
