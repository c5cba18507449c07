package tableql

import (
	"strconv"

	"github.com/graphql-go/graphql/language/ast"
)

const (
	dirRef       = "ref"
	dirUnique    = "unique"
	dirLocalized = "localized"
	dirFile      = "file"
	dirFiles     = "files"
	dirIndexing  = "indexing"
	dirTags      = "tags"
)

var (
	fieldDirectives = []string{dirRef, dirUnique, dirLocalized, dirFile, dirFiles}
	tableDirectives = []string{dirTags}
	enumDirectives  = []string{dirIndexing}
)

// directive is a decoded annotation; its arguments have passed validation.
type directive interface {
	name() string
	node() *ast.Directive
}

type refDirective struct {
	dir    *ast.Directive
	column string
}

type uniqueDirective struct {
	dir *ast.Directive
}

type localizedDirective struct {
	dir *ast.Directive
}

type fileDirective struct {
	dir *ast.Directive
	ext string
}

type filesDirective struct {
	dir  *ast.Directive
	exts []string
}

type indexingDirective struct {
	dir   *ast.Directive
	first int
}

type tagsDirective struct {
	dir  *ast.Directive
	list []string
}

func (d refDirective) name() string       { return dirRef }
func (d uniqueDirective) name() string    { return dirUnique }
func (d localizedDirective) name() string { return dirLocalized }
func (d fileDirective) name() string      { return dirFile }
func (d filesDirective) name() string     { return dirFiles }
func (d indexingDirective) name() string  { return dirIndexing }
func (d tagsDirective) name() string      { return dirTags }

func (d refDirective) node() *ast.Directive       { return d.dir }
func (d uniqueDirective) node() *ast.Directive    { return d.dir }
func (d localizedDirective) node() *ast.Directive { return d.dir }
func (d fileDirective) node() *ast.Directive      { return d.dir }
func (d filesDirective) node() *ast.Directive     { return d.dir }
func (d indexingDirective) node() *ast.Directive  { return d.dir }
func (d tagsDirective) node() *ast.Directive      { return d.dir }

func decodeDirectives(dirs []*ast.Directive, legal []string) ([]directive, error) {
	var decoded []directive
	for _, dir := range dirs {
		if !legalDirective(dir.Name.Value, legal) {
			return nil, errorAt(dir, "unknown annotation @%s", dir.Name.Value)
		}
		d, err := decodeDirective(dir)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, d)
	}
	return decoded, nil
}

func legalDirective(name string, legal []string) bool {
	for _, l := range legal {
		if l == name {
			return true
		}
	}
	return false
}

func decodeDirective(dir *ast.Directive) (directive, *Error) {
	switch dir.Name.Value {
	case dirRef:
		return decodeRef(dir)
	case dirUnique:
		if err := rejectArguments(dir); err != nil {
			return nil, err
		}
		return uniqueDirective{dir: dir}, nil
	case dirLocalized:
		if err := rejectArguments(dir); err != nil {
			return nil, err
		}
		return localizedDirective{dir: dir}, nil
	case dirFile:
		return decodeFile(dir)
	case dirFiles:
		return decodeFiles(dir)
	case dirIndexing:
		return decodeIndexing(dir)
	case dirTags:
		return decodeTags(dir)
	}
	// every legal set is drawn from the seven names above
	panic("tableql: decodeDirective called with unrecognized annotation @" + dir.Name.Value)
}

func rejectArguments(dir *ast.Directive) *Error {
	if len(dir.Arguments) > 0 {
		arg := dir.Arguments[0]
		return errorAt(arg, "unknown argument %q for @%s", arg.Name.Value, dir.Name.Value)
	}
	return nil
}

func decodeRef(dir *ast.Directive) (directive, *Error) {
	d := refDirective{dir: dir}
	seen := false
	for _, arg := range dir.Arguments {
		switch arg.Name.Value {
		case "column":
			sv, ok := arg.Value.(*ast.StringValue)
			if !ok {
				return nil, errorAt(arg, `argument "column" of @ref must be a string`)
			}
			d.column = sv.Value
			seen = true
		default:
			return nil, errorAt(arg, "unknown argument %q for @ref", arg.Name.Value)
		}
	}
	if !seen {
		return nil, errorAt(dir, `@ref requires argument "column"`)
	}
	return d, nil
}

func decodeFile(dir *ast.Directive) (directive, *Error) {
	d := fileDirective{dir: dir}
	seen := false
	for _, arg := range dir.Arguments {
		switch arg.Name.Value {
		case "ext":
			sv, ok := arg.Value.(*ast.StringValue)
			if !ok {
				return nil, errorAt(arg, `argument "ext" of @file must be a string`)
			}
			d.ext = sv.Value
			seen = true
		default:
			return nil, errorAt(arg, "unknown argument %q for @file", arg.Name.Value)
		}
	}
	if !seen {
		return nil, errorAt(dir, `@file requires argument "ext"`)
	}
	return d, nil
}

func decodeFiles(dir *ast.Directive) (directive, *Error) {
	d := filesDirective{dir: dir}
	seen := false
	for _, arg := range dir.Arguments {
		switch arg.Name.Value {
		case "ext":
			lv, ok := arg.Value.(*ast.ListValue)
			if !ok {
				return nil, errorAt(arg, `argument "ext" of @files must be a list of strings`)
			}
			// an empty list is legal here, unlike @tags
			d.exts = make([]string, 0, len(lv.Values))
			for _, v := range lv.Values {
				sv, ok := v.(*ast.StringValue)
				if !ok {
					return nil, errorAt(v, `argument "ext" of @files must contain only strings`)
				}
				d.exts = append(d.exts, sv.Value)
			}
			seen = true
		default:
			return nil, errorAt(arg, "unknown argument %q for @files", arg.Name.Value)
		}
	}
	if !seen {
		return nil, errorAt(dir, `@files requires argument "ext"`)
	}
	return d, nil
}

func decodeIndexing(dir *ast.Directive) (directive, *Error) {
	d := indexingDirective{dir: dir}
	seen := false
	for _, arg := range dir.Arguments {
		switch arg.Name.Value {
		case "first":
			iv, ok := arg.Value.(*ast.IntValue)
			if !ok {
				return nil, errorAt(arg, `argument "first" of @indexing must be an integer`)
			}
			n, err := strconv.Atoi(iv.Value)
			if err != nil || (n != 0 && n != 1) {
				return nil, errorAt(arg, "@indexing value must be 0 or 1")
			}
			d.first = n
			seen = true
		default:
			return nil, errorAt(arg, "unknown argument %q for @indexing", arg.Name.Value)
		}
	}
	if !seen {
		return nil, errorAt(dir, `@indexing requires argument "first"`)
	}
	return d, nil
}

func decodeTags(dir *ast.Directive) (directive, *Error) {
	d := tagsDirective{dir: dir}
	seen := false
	for _, arg := range dir.Arguments {
		switch arg.Name.Value {
		case "list":
			lv, ok := arg.Value.(*ast.ListValue)
			if !ok {
				return nil, errorAt(arg, `argument "list" of @tags must be a list of strings`)
			}
			if len(lv.Values) == 0 {
				return nil, errorAt(arg, "@tags requires a non-empty list")
			}
			d.list = make([]string, 0, len(lv.Values))
			for _, v := range lv.Values {
				sv, ok := v.(*ast.StringValue)
				if !ok {
					return nil, errorAt(v, `argument "list" of @tags must contain only strings`)
				}
				d.list = append(d.list, sv.Value)
			}
			seen = true
		default:
			return nil, errorAt(arg, "unknown argument %q for @tags", arg.Name.Value)
		}
	}
	if !seen {
		return nil, errorAt(dir, `@tags requires argument "list"`)
	}
	return d, nil
}

// findDirective returns the first match; a repeated annotation's first
// occurrence wins.
func findDirective(dirs []directive, name string) directive {
	for _, d := range dirs {
		if d.name() == name {
			return d
		}
	}
	return nil
}

// hasAnnotation reads a raw directive list, for checks against fields that
// are not resolved yet.
func hasAnnotation(dirs []*ast.Directive, name string) bool {
	for _, dir := range dirs {
		if dir.Name.Value == name {
			return true
		}
	}
	return false
}
