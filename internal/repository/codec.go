package repository

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"

	"book_catalog/internal/model"

	jsoniter "github.com/json-iterator/go"
)

const indent = "    "

// standard library compatible mode sorts map keys, which keeps encoding of
// the users map deterministic.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func EncodeCatalog(catalog model.Catalog) ([]byte, error) {
	catalog.Normalize()
	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}

	// jsoniter's own indent mode expands empty containers; json.Indent
	// keeps them as [] and {}.
	var buf bytes.Buffer
	if err = stdjson.Indent(&buf, data, "", indent); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeCatalog(data []byte) (model.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Catalog{}, fmt.Errorf("%w: empty document", ErrCorrupt)
	}

	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, fmt.Errorf("%w: %s", ErrCorrupt, err.Error())
	}
	catalog.Normalize()

	return catalog, nil
}
