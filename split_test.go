package tableql

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSplit(test *testing.T) {
	v := testAnalyze(test, true, `
type Monster {
  name: string @unique
  color: Color
  home: Region
  rival: Monster
}
type Region { name: string }
enum Color @indexing(first: 0) { red green }
`)
	if v == nil {
		return
	}
	dir := filepath.Join(test.TempDir(), "out")
	if err := NewSplitter(dir, "json").Split(v); err != nil {
		test.Fatalf("%v", err)
	}
	for _, name := range []string{"Monster.json", "Region.json", "Color.json", "_index.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			test.Errorf("Missing split file %s: %v", name, err)
		}
	}
	raw, err := os.ReadFile(filepath.Join(dir, "_index.json"))
	if err != nil {
		test.Fatalf("%v", err)
	}
	var index struct {
		Tables []struct {
			Name       string   `json:"name"`
			References []string `json:"references"`
		} `json:"tables"`
		Enumerations []string `json:"enumerations"`
	}
	if err := json.Unmarshal(raw, &index); err != nil {
		test.Fatalf("%v", err)
	}
	if len(index.Tables) != 2 || index.Tables[0].Name != "Monster" {
		test.Errorf("Wrong index tables: %s", raw)
		return
	}
	refs := index.Tables[0].References
	if len(refs) != 2 || refs[0] != "Color" || refs[1] != "Region" {
		test.Errorf("Wrong Monster references, self references should not count: %v", refs)
	}
	if len(index.Tables[1].References) != 0 {
		test.Errorf("Region should reference nothing: %s", raw)
	}
	if len(index.Enumerations) != 1 || index.Enumerations[0] != "Color" {
		test.Errorf("Wrong index enumerations: %s", raw)
	}
}

func TestSplitYAML(test *testing.T) {
	v := testAnalyze(test, true, `type Monster { name: string }`)
	if v == nil {
		return
	}
	dir := filepath.Join(test.TempDir(), "out")
	if err := NewSplitter(dir, "yaml").Split(v); err != nil {
		test.Fatalf("%v", err)
	}
	for _, name := range []string{"Monster.yaml", "_index.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			test.Errorf("Missing split file %s: %v", name, err)
		}
	}
}
