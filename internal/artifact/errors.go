package artifact

import "fmt"

// ParseError reports a malformed artifact with file and line context.
// Parsers fail all-or-nothing: a ParseError means no model was built
// for that artifact.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(path string, line int, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Line: line, Err: fmt.Errorf(format, args...)}
}
