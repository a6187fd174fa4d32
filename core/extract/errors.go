package extract

import "errors"

// ErrContractViolation is returned when the generator produces a result that
// carries neither a completion nor an error detail, or both. The session is
// aborted.
//
// Example:
//
//	if errors.Is(err, extract.ErrContractViolation) {
//	    // the generator implementation is broken, not the model
//	}
var ErrContractViolation = errors.New("fieldex: generator result is neither text nor detail")
