package pathway

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// UnmarshalFlexible unmarshals record JSON into v, falling back to repairing
// the input when it is not strictly valid JSON. Record documents produced by
// third-party exporters regularly carry trailing commas or unquoted keys.
func UnmarshalFlexible(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return fmt.Errorf("failed to repair document JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("failed to unmarshal repaired document JSON: %w", err)
	}
	return nil
}

// DecodeDocument parses a record document from its JSON wire form. The
// metadata is not validated here; assembly owns that check.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := UnmarshalFlexible(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record document: %w", err)
	}
	return &doc, nil
}

// DocumentSchema returns the JSON schema of the record-document wire format.
func DocumentSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&Document{})
}
