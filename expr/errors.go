package expr

import "errors"

// ErrParse is the sentinel wrapped by every syntax/semantic error the
// compiler reports (unexpected tokens, unknown identifiers, wrong arity).
var ErrParse = errors.New("expr: parse error")
