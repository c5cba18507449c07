package tableql

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

// WriteSchemaFile writes the model to w; an empty format means JSON.
func WriteSchemaFile(w io.Writer, schema *SchemaFile, format string) error {
	data, err := marshalModel(schema, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalModel(obj interface{}, format string) ([]byte, error) {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(obj, "", "    ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(obj)
	default:
		return nil, fmt.Errorf("unknown output format %q (use json or yaml)", format)
	}
}
