package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/catalog.json
var staticCatalog []byte

// StaticSource serves the catalog compiled into the binary.
type StaticSource struct{}

// Load decodes the embedded dataset. Unknown fields are rejected so a typo
// in the data file fails tests rather than silently dropping a field.
func (StaticSource) Load(context.Context) (Data, error) {
	dec := json.NewDecoder(bytes.NewReader(staticCatalog))
	dec.DisallowUnknownFields()

	var data Data
	if err := dec.Decode(&data); err != nil {
		return Data{}, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return data, nil
}
