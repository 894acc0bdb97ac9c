package vnpay

import "testing"

func TestInterpret(t *testing.T) {
	tests := []struct {
		name     string
		params   CallbackParams
		sigValid bool
		valid    bool
		success  bool
	}{
		{
			name:     "success codes",
			params:   CallbackParams{ParamResponseCode: "00", ParamTxnStatus: "00"},
			sigValid: true,
			valid:    true,
			success:  true,
		},
		{
			name:     "user cancelled",
			params:   CallbackParams{ParamResponseCode: "24", ParamTxnStatus: "02"},
			sigValid: true,
			valid:    true,
			success:  false,
		},
		{
			name:     "response ok but transaction suspicious",
			params:   CallbackParams{ParamResponseCode: "00", ParamTxnStatus: "07"},
			sigValid: true,
			valid:    true,
			success:  false,
		},
		{
			name:     "missing transaction status",
			params:   CallbackParams{ParamResponseCode: "00"},
			sigValid: true,
			valid:    false,
			success:  false,
		},
		{
			name:     "failed signature never valid",
			params:   CallbackParams{ParamResponseCode: "00", ParamTxnStatus: "00"},
			sigValid: false,
			valid:    false,
			success:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Interpret(tt.params, tt.sigValid)
			if outcome.Valid != tt.valid {
				t.Errorf("Expected Valid=%v, got %v", tt.valid, outcome.Valid)
			}
			if outcome.Success != tt.success {
				t.Errorf("Expected Success=%v, got %v", tt.success, outcome.Success)
			}
		})
	}
}
