// Package diag implements the error taxonomy, diagnostic rendering, and
// trace-channel sinks used throughout the CLIKE pipeline.
package diag

import "fmt"

// Kind enumerates every error kind the pipeline can report.
type Kind int

const (
	LexUnexpectedChar Kind = iota
	LexBadChar
	LexUnterminatedString

	ParseExpected
	ParseIncludeDepth
	ParseIncludeIO
	ParseBadIncludePosition

	SemIDNotFound
	SemDuplicateID
	SemArgCountMismatch
	SemTypeNarrowing
	SemNotAnArray
	SemMissingMain

	RunIndexOutOfBounds
	RunDivByZero
	RunTypeError
	RunUndefinedVariable
	RunUndefinedFunction
	RunStrayReturn
)

var kindNames = map[Kind]string{
	LexUnexpectedChar:     "LEX_UNEXPECTED_CHAR",
	LexBadChar:            "LEX_BAD_CHAR",
	LexUnterminatedString: "LEX_UNTERMINATED_STRING",

	ParseExpected:           "PARSE_EXPECTED",
	ParseIncludeDepth:       "PARSE_INCLUDE_DEPTH",
	ParseIncludeIO:          "PARSE_INCLUDE_IO",
	ParseBadIncludePosition: "PARSE_BAD_INCLUDE_POSITION",

	SemIDNotFound:          "ID_NOT_FOUND",
	SemDuplicateID:         "DUPLICATE_ID",
	SemArgCountMismatch:    "ARG_COUNT_MISMATCH",
	SemTypeNarrowing:       "TYPE_NARROWING",
	SemNotAnArray:          "NOT_AN_ARRAY",
	SemMissingMain:         "MISSING_MAIN",

	RunIndexOutOfBounds:  "INDEX_OUT_OF_BOUNDS",
	RunDivByZero:         "DIV_BY_ZERO",
	RunTypeError:         "TYPE_ERROR",
	RunUndefinedVariable: "RUNTIME_UNDEFINED",
	RunUndefinedFunction: "RUNTIME_UNDEFINED_FUNCTION",
	RunStrayReturn:       "RUNTIME_STRAY_RETURN",
}

// String returns the taxonomy name of the kind, eg. "TYPE_NARROWING".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position is the source span a diagnostic is anchored to: a token position
// for lexical/syntactic errors, a node position for semantic/runtime ones.
type Position struct {
	StartLn, StartCol, EndLn, EndCol int
}

// Diagnostic is the single user-visible error/warning type for the whole
// pipeline. It satisfies the error interface so it can be propagated with
// ordinary Go error returns and still be rendered with full context at the
// boundary that reports it.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     *Position
	IsWarning bool
}

func (d *Diagnostic) Error() string {
	if d.Pos == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, col %d)", d.Kind, d.Message, d.Pos.StartLn, d.Pos.StartCol)
}

// Errorf builds a hard-error Diagnostic.
func Errorf(kind Kind, pos *Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Warnf builds a warning Diagnostic.
func Warnf(kind Kind, pos *Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, IsWarning: true}
}
