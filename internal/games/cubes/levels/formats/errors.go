package formats

import "fmt"

// Error codes reported by ParseError.
const (
	CodeSyntax          = "syntax"
	CodeSchema          = "schema"
	CodeMissingField    = "missing_field"
	CodeInvalidMarker   = "invalid_marker"
	CodeUncopiable      = "uncopiable"
	CodeUnmergeable     = "unmergeable"
	CodeInvalidMovement = "invalid_movement"
	CodeInvalidLocation = "invalid_location"
)

// ParseError describes why a level document could not be turned into a seed.
// Line and Column are 1-based positions in map.raw or in a command's content
// when they apply, zero otherwise.
type ParseError struct {
	Code    string
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func errorAt(code string, line, column int, format string, args ...any) ParseError {
	return ParseError{Code: code, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}
