package jsonbind

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Shape-class: the input's JSON kind or keys do not structurally fit the
	// target type. Recoverable during union alternative trial.
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
	CodeUnionNoMatch = "union_no_match"

	// Semantic-class: the JSON kind matched but the value violates a domain
	// rule. Never swallowed during union alternative trial.
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidValue   = "invalid_value"
	CodeInvalidEnum    = "invalid_enum"
	CodeLengthMismatch = "length_mismatch"

	// Construction-time: codec construction aborted entirely.
	CodeUnsupportedType = "unsupported_type"
	CodeDuplicateKey    = "duplicate_key"
	CodeInvalidKey      = "invalid_key"

	CodeParseError = "parse_error"
)

// shapeCodes is the single source of truth for the shape-mismatch vs
// semantic-violation split. Union trial consults it through IsShapeMismatch;
// do not scatter per-code checks elsewhere.
var shapeCodes = map[string]bool{
	CodeInvalidType:  true,
	CodeRequired:     true,
	CodeUnknownKey:   true,
	CodeUnionNoMatch: true,
}

// Issue represents a single conversion failure entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string",
	// "got":"number"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsShapeMismatch reports whether every issue carried by err is shape-class,
// i.e. the input's JSON kind or keys failed to fit the target type. Union
// trial continues to the next alternative only for such errors.
func IsShapeMismatch(err error) bool {
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return false
	}
	for _, it := range iss {
		if !shapeCodes[it.Code] {
			return false
		}
	}
	return true
}

// IsSemanticViolation reports whether err carries at least one issue whose
// JSON kind matched but whose value violates a domain rule.
func IsSemanticViolation(err error) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code != "" && !shapeCodes[it.Code] {
			return true
		}
	}
	return false
}

// UnsupportedTypeError is returned at construction time when no codec can be
// built for a type (functions, channels, bare interfaces, invalid map keys).
// It never occurs at value time; classification is total over supported types.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("jsonbind: unsupported type %s", e.Type)
	}
	return fmt.Sprintf("jsonbind: unsupported type %s: %s", e.Type, e.Reason)
}

// IsUnsupportedType reports whether err stems from asking the engine to build
// a codec for a type it cannot classify.
func IsUnsupportedType(err error) bool {
	var ute *UnsupportedTypeError
	return errors.As(err, &ute)
}

// singleIssue builds an Issues value holding one root-level entry.
func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}

// prefixIssues rebases child issues under the given base path.
func prefixIssues(base string, err error) Issues {
	if err == nil {
		return nil
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
