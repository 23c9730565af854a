package exchange

import "encoding/json"

// Exchange error codes reported through the JSON-RPC error envelope.
// Only the session-invalid subset is interpreted by the session manager;
// everything else passes through to the caller untouched.
const (
	CodeTooMuchData               = "TOO_MUCH_DATA"
	CodeInvalidInputData          = "INVALID_INPUT_DATA"
	CodeInvalidSessionInformation = "INVALID_SESSION_INFORMATION"
	CodeNoAppKey                  = "NO_APP_KEY"
	CodeNoSession                 = "NO_SESSION"
	CodeUnexpectedError           = "UNEXPECTED_ERROR"
	CodeInvalidAppKey             = "INVALID_APP_KEY"
	CodeTooManyRequests           = "TOO_MANY_REQUESTS"
	CodeServiceBusy               = "SERVICE_BUSY"
	CodeTimeoutError              = "TIMEOUT_ERROR"
	CodeRequestSizeExceedsLimit   = "REQUEST_SIZE_EXCEEDS_LIMIT"
	CodeAccessDenied              = "ACCESS_DENIED"
)

// IsSessionInvalidCode reports whether the exchange error code means the
// session token is invalid or expired.
func IsSessionInvalidCode(code string) bool {
	return code == CodeInvalidSessionInformation || code == CodeNoSession
}

// RemoteException is the structured exception the exchange embeds in the
// error envelope's data member.
type RemoteException struct {
	ErrorCode    string `json:"errorCode"`
	ErrorDetails string `json:"errorDetails,omitempty"`
	RequestUUID  string `json:"requestUUID,omitempty"`
}

// remoteExceptionEnvelope matches the data member layout
// {"APINGException": {...}}.
type remoteExceptionEnvelope struct {
	Exception *RemoteException `json:"APINGException"`
}

// decodeRemoteException extracts the enumerated error code and details from
// an error envelope. The code lives in data.APINGException.errorCode when
// the structured form is present, otherwise in the envelope message.
func decodeRemoteException(message string, data json.RawMessage) (code, details string) {
	if len(data) > 0 {
		var env remoteExceptionEnvelope
		if err := json.Unmarshal(data, &env); err == nil && env.Exception != nil && env.Exception.ErrorCode != "" {
			return env.Exception.ErrorCode, env.Exception.ErrorDetails
		}
	}
	return message, ""
}

// Login statuses returned by the identity-cert endpoint. Any status other
// than success is a login failure carrying the status for diagnostics.
const (
	LoginStatusSuccess = "SUCCESS"
)

// Keep-alive statuses and error reasons returned by the identity endpoint.
const (
	KeepAliveStatusSuccess = "SUCCESS"
	KeepAliveStatusFail    = "FAIL"

	KeepAliveErrInputValidation = "INPUT_VALIDATION_ERROR"
	KeepAliveErrInternal        = "INTERNAL_ERROR"
	KeepAliveErrNoSession       = "NO_SESSION"
)
