package models

// Status codes exchanged with the session layer for per-item results and
// session outcomes.
const (
	StatusOK             = 200
	StatusItemAdded      = 201
	StatusAccepted       = 202
	StatusNotFound       = 404
	StatusNotSupported   = 406
	StatusRemoteWins     = 419
	StatusDeviceFull     = 420
	StatusCommandFailed  = 500
	StatusRefreshRequire = 508
)

// Status is a protocol status code with optional free-form data.
type Status struct {
	Code int    `json:"code"`
	Data string `json:"data,omitempty"`
}

// IsSuccess reports whether the status acknowledges the operation.
func (s Status) IsSuccess() bool {
	return s.Code >= 200 && s.Code < 300
}

// IsRemoteWins reports whether the peer resolved a conflict in favour of
// its own version.
func (s Status) IsRemoteWins() bool {
	return s.Code == StatusRemoteWins
}
