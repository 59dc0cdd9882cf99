package provision

import (
	"errors"
	"fmt"
)

// Kind categorizes a provisioning failure.
type Kind int

const (
	// KindUnknown indicates an unclassified failure.
	KindUnknown Kind = iota
	// KindDownload indicates the release archive could not be fetched.
	KindDownload
	// KindExtraction indicates the release archive could not be unpacked.
	KindExtraction
	// KindFilesystem indicates a directory or file operation failed.
	KindFilesystem
	// KindProvisioning indicates the broker scaffolding command failed.
	KindProvisioning
	// KindConfigParse indicates broker.xml could not be parsed.
	KindConfigParse
	// KindConfigSchema indicates an expected broker.xml node was not found.
	KindConfigSchema
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDownload:
		return "download error"
	case KindExtraction:
		return "extraction error"
	case KindFilesystem:
		return "filesystem error"
	case KindProvisioning:
		return "provisioning error"
	case KindConfigParse:
		return "config parse error"
	case KindConfigSchema:
		return "config schema error"
	default:
		return "error"
	}
}

// Error is returned by every provisioning step.
type Error struct {
	// Kind categorizes the failure.
	Kind Kind
	// Step names the orchestrator step that failed. Empty until the
	// orchestrator attaches it.
	Step string
	// Path is the file, directory or URL the step was working on.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Step != "" {
		msg = fmt.Sprintf("step %s: %s", e.Step, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error of the given kind with a formatted cause.
func Errorf(kind Kind, path string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// Wrap builds an Error of the given kind around err. A nil err yields nil.
func Wrap(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// WithStep attaches the step name to err. Errors that are not an *Error are
// wrapped as KindUnknown so the step still shows up in the message.
func WithStep(step string, err error) error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		cp := *perr
		cp.Step = step
		return &cp
	}
	return &Error{Kind: KindUnknown, Step: step, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries a provisioning error of the given kind.
func IsKind(err error, kind Kind) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == kind
}
