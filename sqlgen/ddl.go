package sqlgen

import (
	"fmt"
	"strings"

	"github.com/boynton/tableql"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Statements renders one CREATE TABLE per table, in declaration order, with
// a synthetic "id" primary key unless the table declares that column itself.
// Postgres foreign keys come last, as ALTER TABLE statements.
func Statements(schema *tableql.SchemaFile, dialect Dialect) ([]string, error) {
	switch dialect {
	case SQLite, Postgres:
	default:
		return nil, fmt.Errorf("unknown dialect %q (use sqlite or postgres)", dialect)
	}
	var stmts []string
	var alters []string
	for _, table := range schema.Tables {
		stmt, tableAlters, err := createTable(schema, table, dialect)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		alters = append(alters, tableAlters...)
	}
	return append(stmts, alters...), nil
}

// DDL renders the schema as one executable script.
func DDL(schema *tableql.SchemaFile, dialect Dialect) (string, error) {
	stmts, err := Statements(schema, dialect)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, stmt := range stmts {
		b.WriteString(stmt)
		b.WriteString(";\n\n")
	}
	return b.String(), nil
}

func createTable(schema *tableql.SchemaFile, table *tableql.SchemaTable, dialect Dialect) (string, []string, error) {
	var defs []string
	var alters []string
	if table.FindColumn("id") == nil {
		defs = append(defs, syntheticID(dialect))
	}
	for _, col := range table.Columns {
		if col.Name == nil {
			// anonymous columns carry no storage
			continue
		}
		def, alter, err := columnDef(schema, table, col, dialect)
		if err != nil {
			return "", nil, err
		}
		defs = append(defs, def)
		if alter != "" {
			alters = append(alters, alter)
		}
	}
	stmt := "CREATE TABLE " + quoteIdent(table.Name) + " (\n    " + strings.Join(defs, ",\n    ") + "\n)"
	return stmt, alters, nil
}

func syntheticID(dialect Dialect) string {
	if dialect == Postgres {
		return `"id" bigserial PRIMARY KEY`
	}
	return `"id" INTEGER PRIMARY KEY`
}

func columnDef(schema *tableql.SchemaFile, table *tableql.SchemaTable, col *tableql.TableColumn, dialect Dialect) (string, string, error) {
	name := *col.Name
	typ, err := sqlType(col, dialect)
	if err != nil {
		return "", "", fmt.Errorf("column %q of table %q: %w", name, table.Name, err)
	}
	def := quoteIdent(name) + " " + typ
	if col.Unique {
		def += " UNIQUE"
	}
	if col.Array {
		// arrays are stored serialized; element-type constraints do not apply
		return def, "", nil
	}
	if col.Type == tableql.TypeEnumRow {
		enum := schema.FindEnumeration(col.References.Table)
		if enum == nil {
			return "", "", fmt.Errorf("column %q of table %q: unknown enumeration %q", name, table.Name, col.References.Table)
		}
		lo := enum.Indexing
		hi := enum.Indexing + len(enum.Enumerators) - 1
		def += fmt.Sprintf(" CHECK (%s BETWEEN %d AND %d)", quoteIdent(name), lo, hi)
		return def, "", nil
	}
	if col.References != nil {
		targetCol := col.References.Column
		if targetCol == "" {
			targetCol = "id"
		}
		fk := "REFERENCES " + quoteIdent(col.References.Table) + "(" + quoteIdent(targetCol) + ")"
		if dialect == SQLite {
			def += " " + fk
			return def, "", nil
		}
		alter := "ALTER TABLE " + quoteIdent(table.Name) +
			" ADD FOREIGN KEY (" + quoteIdent(name) + ") " + fk
		return def, alter, nil
	}
	return def, "", nil
}

func sqlType(col *tableql.TableColumn, dialect Dialect) (string, error) {
	if col.Array {
		if dialect == Postgres {
			return "jsonb", nil
		}
		return "TEXT", nil
	}
	pg := dialect == Postgres
	switch col.Type {
	case tableql.TypeBool:
		if pg {
			return "boolean", nil
		}
		return "INTEGER", nil
	case tableql.TypeString:
		if pg {
			return "text", nil
		}
		return "TEXT", nil
	case tableql.TypeInt16:
		if pg {
			return "smallint", nil
		}
		return "INTEGER", nil
	case tableql.TypeInt32:
		if pg {
			return "integer", nil
		}
		return "INTEGER", nil
	case tableql.TypeFloat32:
		if pg {
			return "real", nil
		}
		return "REAL", nil
	case tableql.TypeRow, tableql.TypeForeignRow:
		if pg {
			return "bigint", nil
		}
		return "INTEGER", nil
	case tableql.TypeEnumRow:
		if pg {
			return "smallint", nil
		}
		return "INTEGER", nil
	}
	return "", fmt.Errorf("cannot render column type %q", col.Type)
}

// quoteIdent doubles embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
