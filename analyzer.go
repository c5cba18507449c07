package tableql

import (
	"fmt"
	"os"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

func ParseFile(path string) (*SchemaFile, error) {
	return ParseFiles(path)
}

// ParseFiles analyzes a set of files as one schema; declarations may
// reference each other across files, in any order.
func ParseFiles(paths ...string) (*SchemaFile, error) {
	docs := make([]*ast.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		doc, err := parseSource(&source.Source{Body: data, Name: path})
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Analyze(docs...)
}

func ParseString(src string) (*SchemaFile, error) {
	doc, err := parseSource(&source.Source{Body: []byte(src), Name: "schema"})
	if err != nil {
		return nil, err
	}
	return Analyze(doc)
}

func ParseStrings(srcs ...string) (*SchemaFile, error) {
	docs := make([]*ast.Document, 0, len(srcs))
	for i, src := range srcs {
		name := fmt.Sprintf("schema-%d", i+1)
		doc, err := parseSource(&source.Source{Body: []byte(src), Name: name})
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Analyze(docs...)
}

func parseSource(src *source.Source) (*ast.Document, error) {
	Debug("parsing ", src.Name)
	doc, err := parser.Parse(parser.ParseParams{Source: src})
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", src.Name, err)
	}
	return doc, nil
}

// Analyze builds the schema model from parsed documents, stopping at the
// first error.
func Analyze(docs ...*ast.Document) (*SchemaFile, error) {
	a := &analyzer{
		tables: make(map[string]*ast.ObjectDefinition),
		enums:  make(map[string]*ast.EnumDefinition),
	}
	for _, doc := range docs {
		if err := a.collect(doc); err != nil {
			return nil, err
		}
	}
	schema := &SchemaFile{
		Tables:       make([]*SchemaTable, 0, len(a.tableOrder)),
		Enumerations: make([]*SchemaEnumeration, 0, len(a.enumOrder)),
	}
	for _, name := range a.tableOrder {
		table, err := a.resolveTable(a.tables[name])
		if err != nil {
			return nil, err
		}
		schema.Tables = append(schema.Tables, table)
	}
	for _, name := range a.enumOrder {
		enum, err := a.resolveEnum(a.enums[name])
		if err != nil {
			return nil, err
		}
		schema.Enumerations = append(schema.Enumerations, enum)
	}
	return schema, nil
}

// analyzer holds every declaration by name before any resolution starts.
type analyzer struct {
	tables     map[string]*ast.ObjectDefinition
	enums      map[string]*ast.EnumDefinition
	tableOrder []string
	enumOrder  []string
}

func (a *analyzer) collect(doc *ast.Document) error {
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.ObjectDefinition:
			name := def.Name.Value
			if _, ok := a.tables[name]; ok {
				return errorAt(def.Name, "duplicate table %q", name)
			}
			a.tables[name] = def
			a.tableOrder = append(a.tableOrder, name)
		case *ast.EnumDefinition:
			name := def.Name.Value
			if _, ok := a.enums[name]; ok {
				return errorAt(def.Name, "duplicate enumeration %q", name)
			}
			a.enums[name] = def
			a.enumOrder = append(a.enumOrder, name)
		default:
			return errorAt(def, "unsupported definition of kind %s", def.GetKind())
		}
	}
	return nil
}

func (a *analyzer) resolveTable(def *ast.ObjectDefinition) (*SchemaTable, error) {
	dirs, err := decodeDirectives(def.Directives, tableDirectives)
	if err != nil {
		return nil, err
	}
	table := &SchemaTable{
		Name:    def.Name.Value,
		Columns: make([]*TableColumn, 0, len(def.Fields)),
	}
	if d := findDirective(dirs, dirTags); d != nil {
		table.Tags = d.(tagsDirective).list
	}
	seen := make(map[string]bool)
	for _, field := range def.Fields {
		col, err := a.resolveColumn(def, field)
		if err != nil {
			return nil, err
		}
		if col.Name != nil {
			if seen[*col.Name] {
				return nil, errorAt(field.Name, "duplicate column %q in table %q", *col.Name, table.Name)
			}
			seen[*col.Name] = true
		}
		table.Columns = append(table.Columns, col)
	}
	Debug("resolved table ", table.Name)
	return table, nil
}

func (a *analyzer) resolveEnum(def *ast.EnumDefinition) (*SchemaEnumeration, error) {
	dirs, err := decodeDirectives(def.Directives, enumDirectives)
	if err != nil {
		return nil, err
	}
	d := findDirective(dirs, dirIndexing)
	if d == nil {
		return nil, errorAt(def.Name, "indexing is required for enumerations")
	}
	enum := &SchemaEnumeration{
		Name:     def.Name.Value,
		Indexing: d.(indexingDirective).first,
	}
	values := def.Values
	if len(values) == 1 && values[0].Name.Value == NamePlaceholder {
		// a lone placeholder declares an enumeration with no values yet
		values = nil
	}
	enum.Enumerators = make([]*string, 0, len(values))
	seen := make(map[string]bool)
	for _, val := range values {
		name := val.Name.Value
		if name == NamePlaceholder {
			enum.Enumerators = append(enum.Enumerators, nil)
			continue
		}
		if seen[name] {
			return nil, errorAt(val.Name, "duplicate enumerator %q in enumeration %q", name, enum.Name)
		}
		seen[name] = true
		n := name
		enum.Enumerators = append(enum.Enumerators, &n)
	}
	Debug("resolved enumeration ", enum.Name)
	return enum, nil
}
