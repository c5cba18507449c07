package tableql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/location"
)

// Error is a semantic error bound to the syntax node that caused it.
type Error struct {
	Message string
	Node    ast.Node
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if loc := e.Location(); loc != nil {
		return fmt.Sprintf("%s:%d:%d: %s", e.sourceName(), loc.Line, loc.Column, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Location returns the node's 1-based line and column, or nil.
func (e *Error) Location() *location.SourceLocation {
	loc := e.loc()
	if loc == nil {
		return nil
	}
	pos := location.GetLocation(loc.Source, loc.Start)
	return &pos
}

func (e *Error) loc() *ast.Location {
	if e.Node == nil {
		return nil
	}
	loc := e.Node.GetLoc()
	if loc == nil || loc.Source == nil {
		return nil
	}
	return loc
}

func (e *Error) sourceName() string {
	if loc := e.loc(); loc != nil && loc.Source.Name != "" {
		return loc.Source.Name
	}
	return "schema"
}

func errorAt(node ast.Node, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Node: node}
}

func wrapAt(node ast.Node, cause error, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Node: node, Cause: cause}
}

const (
	highlightOn  = "\033[0;31m\033[1m"
	highlightOff = "\033[0;0m\033[0m"
)

// Annotate renders a located *Error with a source excerpt highlighting the
// offending span; any other error renders as its plain message.
func Annotate(err error, contextSize int) string {
	var serr *Error
	if !errors.As(err, &serr) {
		return err.Error()
	}
	loc := serr.loc()
	if loc == nil || contextSize < 0 {
		return err.Error()
	}
	pos := location.GetLocation(loc.Source, loc.Start)
	lines := strings.Split(string(loc.Source.Body), "\n")
	line := pos.Line - 1
	if line < 0 || line >= len(lines) {
		return err.Error()
	}
	begin := max(0, line-contextSize)
	end := min(len(lines), line+contextSize+1)
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n")
	for i := begin; i < end; i++ {
		if i == line {
			b.WriteString(annotateLine(i+1, lines[i], pos.Column-1, loc.End-loc.Start))
		} else {
			fmt.Fprintf(&b, "%3d\t%s\n", i+1, lines[i])
		}
	}
	return b.String()
}

func annotateLine(num int, line string, start, span int) string {
	if start < 0 || start >= len(line) {
		return fmt.Sprintf("%3d\t%s\n", num, line)
	}
	if span < 1 {
		span = 1
	}
	if start+span > len(line) {
		span = len(line) - start
	}
	return fmt.Sprintf("%3d\t%s%s%s%s%s\n", num, line[:start],
		highlightOn, line[start:start+span], highlightOff, line[start+span:])
}
