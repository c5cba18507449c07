package sqlgen

import (
	"strings"
	"testing"

	"github.com/boynton/tableql"
)

func parseString(test *testing.T, src string) *tableql.SchemaFile {
	v, err := tableql.ParseString(src)
	if err != nil {
		test.Fatalf("%v", err)
	}
	return v
}

const gameSrc = `
type Monster {
  name: string @unique
  hp: i32
  home: Region
  color: Color
  drops: [_]
  _: [_]
}
type Region { name: string }
enum Color @indexing(first: 1) { red green blue }
`

func TestSQLiteStatements(test *testing.T) {
	stmts, err := Statements(parseString(test, gameSrc), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if len(stmts) != 2 {
		test.Fatalf("Expected 2 statements, got %d:\n%s", len(stmts), strings.Join(stmts, ";\n"))
	}
	monster := stmts[0]
	for _, want := range []string{
		`CREATE TABLE "Monster"`,
		`"id" INTEGER PRIMARY KEY`,
		`"name" TEXT UNIQUE`,
		`"hp" INTEGER`,
		`"home" INTEGER REFERENCES "Region"("id")`,
		`"color" INTEGER CHECK ("color" BETWEEN 1 AND 3)`,
		`"drops" TEXT`,
	} {
		if !strings.Contains(monster, want) {
			test.Errorf("Statement should contain %q:\n%s", want, monster)
		}
	}
	if strings.Contains(monster, `"_"`) {
		test.Errorf("Anonymous columns should not be rendered:\n%s", monster)
	}
	if !strings.Contains(stmts[1], `CREATE TABLE "Region"`) {
		test.Errorf("Wrong second statement:\n%s", stmts[1])
	}
}

func TestPostgresStatements(test *testing.T) {
	stmts, err := Statements(parseString(test, gameSrc), Postgres)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if len(stmts) != 3 {
		test.Fatalf("Expected 2 creates and 1 alter, got %d:\n%s", len(stmts), strings.Join(stmts, ";\n"))
	}
	monster := stmts[0]
	for _, want := range []string{
		`CREATE TABLE "Monster"`,
		`"id" bigserial PRIMARY KEY`,
		`"name" text UNIQUE`,
		`"hp" integer`,
		`"home" bigint`,
		`"color" smallint CHECK ("color" BETWEEN 1 AND 3)`,
		`"drops" jsonb`,
	} {
		if !strings.Contains(monster, want) {
			test.Errorf("Statement should contain %q:\n%s", want, monster)
		}
	}
	if strings.Contains(monster, "REFERENCES") {
		test.Errorf("Postgres foreign keys should come as ALTER statements:\n%s", monster)
	}
	alter := stmts[2]
	if alter != `ALTER TABLE "Monster" ADD FOREIGN KEY ("home") REFERENCES "Region"("id")` {
		test.Errorf("Wrong alter statement: %s", alter)
	}
}

func TestUserDeclaredID(test *testing.T) {
	stmts, err := Statements(parseString(test, `type Save { id: i32 @unique slot: i16 }`), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if strings.Contains(stmts[0], "PRIMARY KEY") {
		test.Errorf("A declared id column should suppress the synthetic key:\n%s", stmts[0])
	}
	if !strings.Contains(stmts[0], `"id" INTEGER UNIQUE`) {
		test.Errorf("The declared id column should survive:\n%s", stmts[0])
	}
}

func TestRefForeignKey(test *testing.T) {
	stmts, err := Statements(parseString(test, `
type Item { code: i32 @unique }
type Stock { item: Item @ref(column: "code") }
`), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	stock := stmts[1]
	if !strings.Contains(stock, `"item" INTEGER REFERENCES "Item"("code")`) {
		test.Errorf("@ref should target the named column:\n%s", stock)
	}
}

func TestGenericRowNoForeignKey(test *testing.T) {
	stmts, err := Statements(parseString(test, `type Event { target: rid }`), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if strings.Contains(stmts[0], "REFERENCES") {
		test.Errorf("rid columns have no target to reference:\n%s", stmts[0])
	}
	if !strings.Contains(stmts[0], `"target" INTEGER`) {
		test.Errorf("rid columns should still be stored:\n%s", stmts[0])
	}
}

func TestArrayColumnsStoreSerialized(test *testing.T) {
	stmts, err := Statements(parseString(test, `
type Monster { allies: [Monster] scores: [i32] }
`), Postgres)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if len(stmts) != 1 {
		test.Fatalf("Array columns should produce no foreign keys:\n%s", strings.Join(stmts, ";\n"))
	}
	if !strings.Contains(stmts[0], `"allies" jsonb`) || !strings.Contains(stmts[0], `"scores" jsonb`) {
		test.Errorf("Wrong array column rendering:\n%s", stmts[0])
	}
}

func TestEmptyEnumAdmitsNoValues(test *testing.T) {
	stmts, err := Statements(parseString(test, `
type Monster { color: Color }
enum Color @indexing(first: 0) { _ }
`), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if !strings.Contains(stmts[0], "BETWEEN 0 AND -1") {
		test.Errorf("An empty enumeration should admit no stored values:\n%s", stmts[0])
	}
}

func TestUnknownDialect(test *testing.T) {
	_, err := Statements(parseString(test, `type Monster { hp: i32 }`), Dialect("mysql"))
	if err == nil || !strings.Contains(err.Error(), "unknown dialect") {
		test.Errorf("Expected an unknown dialect error, got: %v", err)
	}
}

func TestDDLScript(test *testing.T) {
	script, err := DDL(parseString(test, gameSrc), SQLite)
	if err != nil {
		test.Fatalf("%v", err)
	}
	if strings.Count(script, "CREATE TABLE") != 2 {
		test.Errorf("Wrong script:\n%s", script)
	}
	if !strings.HasSuffix(script, ";\n\n") {
		test.Errorf("Statements should be terminated:\n%q", script)
	}
}
