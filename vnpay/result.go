package vnpay

// codeSuccess is the gateway's success sentinel for both the response code
// and the transaction status.
const codeSuccess = "00"

// Outcome is the interpreted result of one verified callback. Invalid
// outcomes must never reach order finalization.
type Outcome struct {
	Valid        bool
	Success      bool
	ResponseCode string
	TxnStatus    string
}

// Interpret maps a signature-checked parameter set to an Outcome. Success
// requires both vnp_ResponseCode and vnp_TransactionStatus to equal "00";
// any other present pair is a legitimately signed decline. Missing fields,
// or sigValid=false, yield an invalid outcome. Signature validity and
// business outcome stay orthogonal otherwise.
func Interpret(params CallbackParams, sigValid bool) Outcome {
	if !sigValid || !params.HasResultFields() {
		return Outcome{}
	}
	code := params[ParamResponseCode]
	status := params[ParamTxnStatus]
	return Outcome{
		Valid:        true,
		Success:      code == codeSuccess && status == codeSuccess,
		ResponseCode: code,
		TxnStatus:    status,
	}
}
