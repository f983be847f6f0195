package alert

import "errors"

// ErrMalformedAlert is returned by [Parse] for input that does not follow the
// alert layout.
var ErrMalformedAlert = errors.New("malformed server alert")
