package vnpay

import (
	"net/url"
	"testing"
)

func TestCanonicalize_SortsAndEncodes(t *testing.T) {
	params := CallbackParams{
		"vnp_TxnRef":         "ORD123",
		"vnp_Amount":         "1000000",
		"vnp_OrderInfo":      "Thanh toan don hang",
		"vnp_SecureHash":     "deadbeef",
		"vnp_SecureHashType": "HmacSHA512",
	}

	got := Canonicalize(params)
	want := "vnp_Amount=1000000&vnp_OrderInfo=Thanh+toan+don+hang&vnp_TxnRef=ORD123"
	if got != want {
		t.Errorf("Expected canonical string %q, got %q", want, got)
	}
}

func TestCanonicalize_OrderIndependent(t *testing.T) {
	// Same pairs inserted in different orders must canonicalize identically.
	a := ParseCallback(url.Values{
		"vnp_Amount":     {"5000"},
		"vnp_TxnRef":     {"A1"},
		"vnp_BankCode":   {"NCB"},
		"vnp_SecureHash": {"x"},
	})
	b := CallbackParams{}
	b["vnp_SecureHash"] = "y"
	b["vnp_BankCode"] = "NCB"
	b["vnp_TxnRef"] = "A1"
	b["vnp_Amount"] = "5000"

	if Canonicalize(a) != Canonicalize(b) {
		t.Errorf("Canonical strings differ: %q vs %q", Canonicalize(a), Canonicalize(b))
	}
}

func TestCanonicalize_EmptyValueKept(t *testing.T) {
	params := CallbackParams{
		"vnp_BankTranNo": "",
		"vnp_TxnRef":     "A1",
	}
	got := Canonicalize(params)
	want := "vnp_BankTranNo=&vnp_TxnRef=A1"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCanonicalize_PercentEncoding(t *testing.T) {
	params := CallbackParams{
		"vnp_OrderInfo": "100% nuts & bolts",
	}
	got := Canonicalize(params)
	want := "vnp_OrderInfo=100%25+nuts+%26+bolts"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
