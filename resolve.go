package tableql

import (
	"github.com/graphql-go/graphql/language/ast"
)

// unwrapType strips at most one list wrapper; anything deeper is rejected.
func unwrapType(t ast.Type) (bool, string, error) {
	array := false
	if list, ok := t.(*ast.List); ok {
		array = true
		t = list.Type
	}
	named, ok := t.(*ast.Named)
	if !ok {
		return false, "", errorAt(t, "type must be a simple name or a list of a simple name")
	}
	return array, named.Name.Value, nil
}

func (a *analyzer) resolveColumn(def *ast.ObjectDefinition, field *ast.FieldDefinition) (*TableColumn, error) {
	dirs, err := decodeDirectives(field.Directives, fieldDirectives)
	if err != nil {
		return nil, err
	}
	col := &TableColumn{}
	if field.Name.Value != NamePlaceholder {
		name := field.Name.Value
		col.Name = &name
	}
	if field.Description != nil {
		col.Description = field.Description.Value
	}
	array, typeName, err := unwrapType(field.Type)
	if err != nil {
		return nil, err
	}
	col.Array = array

	tableName := def.Name.Value
	switch {
	case typeName == tableName:
		col.Type = TypeRow
		col.References = &ColumnReference{Table: tableName}
	case typeName == NameGenericRow:
		col.Type = TypeForeignRow
	case typeName == NamePlaceholder:
		if !array {
			return nil, errorAt(field.Type, "placeholder type _ must be wrapped in a list")
		}
		col.Type = TypeArray
	default:
		if scalar, ok := ScalarType(typeName); ok {
			col.Type = scalar
		} else if _, ok := a.tables[typeName]; ok {
			col.Type = TypeForeignRow
			col.References = &ColumnReference{Table: typeName}
		} else if _, ok := a.enums[typeName]; ok {
			col.Type = TypeEnumRow
			col.References = &ColumnReference{Table: typeName}
		} else {
			return nil, errorAt(field.Type, "unresolved reference to type %q", typeName)
		}
	}

	col.Unique = findDirective(dirs, dirUnique) != nil
	col.Localized = findDirective(dirs, dirLocalized) != nil
	if d := findDirective(dirs, dirFile); d != nil {
		col.File = d.(fileDirective).ext
	}
	if d := findDirective(dirs, dirFiles); d != nil {
		col.Files = d.(filesDirective).exts
	}
	if d := findDirective(dirs, dirRef); d != nil {
		if err := a.resolveColumnRef(col, d.(refDirective)); err != nil {
			return nil, err
		}
	}
	if !col.Type.Valid() {
		panic("tableql: column resolved to invalid type " + string(col.Type))
	}
	return col, nil
}

// resolveColumnRef narrows a row-valued column to one scalar column of the
// table it points at. @ref on a column with no reference target is a bug in
// resolveColumn, not a schema error.
func (a *analyzer) resolveColumnRef(col *TableColumn, ref refDirective) error {
	if col.References == nil {
		panic("tableql: @ref on a column with no reference target")
	}
	if col.Type == TypeEnumRow {
		// only an enumrow column can point at an enumeration
		enum := a.enums[col.References.Table]
		cause := errorAt(enum.Name, "cannot reference a column of enumeration %q", col.References.Table)
		return wrapAt(ref.dir, cause, "invalid column reference %q", ref.column)
	}
	scalar, err := a.referencedColumn(col.References.Table, ref.column)
	if err != nil {
		return wrapAt(ref.dir, err, "invalid column reference %q", ref.column)
	}
	col.References.Column = ref.column
	col.Type = scalar
	return nil
}

// referencedColumn vets a reference target and returns its scalar type. The
// target may not be resolved yet, so the checks read its raw declaration.
func (a *analyzer) referencedColumn(tableName, columnName string) (ColumnType, error) {
	def, ok := a.tables[tableName]
	if !ok {
		// reference targets come out of the declaration maps
		panic("tableql: reference to unknown table " + tableName)
	}
	field := findField(def, columnName)
	if field == nil {
		return "", errorAt(def.Name, "referenced column %q not found in table %q", columnName, tableName)
	}
	array, typeName, err := unwrapType(field.Type)
	if err != nil {
		return "", err
	}
	if array {
		return "", errorAt(field, "cannot reference an array-typed column")
	}
	if !hasAnnotation(field.Directives, dirUnique) {
		return "", errorAt(field, "referenced column must be unique")
	}
	scalar, ok := ScalarType(typeName)
	if !ok {
		return "", errorAt(field, "cannot reference a non-scalar column")
	}
	return scalar, nil
}

// findField never matches the placeholder; anonymous columns have no name.
func findField(def *ast.ObjectDefinition, name string) *ast.FieldDefinition {
	for _, field := range def.Fields {
		if field.Name.Value == NamePlaceholder {
			continue
		}
		if field.Name.Value == name {
			return field
		}
	}
	return nil
}
