package tableql

// ColumnType is the closed set of types a resolved column can have.
type ColumnType string

const (
	TypeBool       ColumnType = "bool"
	TypeString     ColumnType = "string"
	TypeInt16      ColumnType = "i16"
	TypeInt32      ColumnType = "i32"
	TypeFloat32    ColumnType = "f32"
	TypeRow        ColumnType = "row"
	TypeForeignRow ColumnType = "foreignrow"
	TypeEnumRow    ColumnType = "enumrow"
	TypeArray      ColumnType = "array"
)

const (
	NamePlaceholder = "_"   // anonymous column, unnamed enumerator, or untyped array element
	NameGenericRow  = "rid" // a row of some table, bound at runtime
)

var scalarTypes = map[string]ColumnType{
	"bool":   TypeBool,
	"string": TypeString,
	"i16":    TypeInt16,
	"i32":    TypeInt32,
	"f32":    TypeFloat32,
}

func ScalarType(name string) (ColumnType, bool) {
	t, ok := scalarTypes[name]
	return t, ok
}

func (t ColumnType) Valid() bool {
	switch t {
	case TypeBool, TypeString, TypeInt16, TypeInt32, TypeFloat32,
		TypeRow, TypeForeignRow, TypeEnumRow, TypeArray:
		return true
	}
	return false
}

// SchemaFile is the analyzed model, in declaration order.
type SchemaFile struct {
	Tables       []*SchemaTable       `json:"tables"`
	Enumerations []*SchemaEnumeration `json:"enumerations"`
}

type SchemaTable struct {
	Name    string         `json:"name"`
	Tags    []string       `json:"tags,omitempty"`
	Columns []*TableColumn `json:"columns"`
}

type ColumnReference struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
}

// TableColumn is a resolved field of a table. A nil Name is an anonymous
// placeholder column; Until is reserved and never set.
type TableColumn struct {
	Name        *string          `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Array       bool             `json:"array,omitempty"`
	Type        ColumnType       `json:"type"`
	Unique      bool             `json:"unique,omitempty"`
	Localized   bool             `json:"localized,omitempty"`
	References  *ColumnReference `json:"references,omitempty"`
	File        string           `json:"file,omitempty"`
	Files       []string         `json:"files,omitempty"`
	Until       *string          `json:"until,omitempty"`
}

// SchemaEnumeration is a resolved enumeration. Nil Enumerators entries are
// placeholders that reserve a slot; the first entry has the value Indexing.
type SchemaEnumeration struct {
	Name        string    `json:"name"`
	Indexing    int       `json:"indexing"`
	Enumerators []*string `json:"enumerators"`
}

func (schema *SchemaFile) FindTable(name string) *SchemaTable {
	for _, t := range schema.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (schema *SchemaFile) FindEnumeration(name string) *SchemaEnumeration {
	for _, e := range schema.Enumerations {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindColumn never finds anonymous columns.
func (table *SchemaTable) FindColumn(name string) *TableColumn {
	for _, c := range table.Columns {
		if c.Name != nil && *c.Name == name {
			return c
		}
	}
	return nil
}
