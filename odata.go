package sharepoint

import (
	"encoding/json"
	"strings"
)

// metadata is the server-side type discriminator embedded in request bodies,
// e.g. {"__metadata": {"type": "SP.Web"}}.
type metadata struct {
	Type string `json:"type"`
}

// metadataType builds the discriminator value for the given server type.
func metadataType(t string) metadata {
	return metadata{Type: t}
}

// typedBody merges a __metadata discriminator into a set of properties,
// producing the body shape the verbose OData endpoints expect.
func typedBody(serverType string, props map[string]any) map[string]any {
	body := make(map[string]any, len(props)+1)
	body["__metadata"] = metadataType(serverType)
	for k, v := range props {
		body[k] = v
	}
	return body
}

// unwrapODataBody strips the OData envelope from a response body. Verbose
// responses wrap the payload in "d" (collections in "d.results"); minimal
// responses use "value" for collections. Bodies without an envelope are
// returned unchanged.
func unwrapODataBody(raw []byte) []byte {
	var probe struct {
		D     json.RawMessage `json:"d"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}
	if probe.D != nil {
		var inner struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(probe.D, &inner); err == nil && inner.Results != nil {
			return inner.Results
		}
		return probe.D
	}
	if probe.Value != nil {
		return probe.Value
	}
	return raw
}

// odataURLFrom extracts the entity URL from a response payload, looking at
// the "odata.id" annotation first and the verbose "__metadata".uri/id pair
// second. Returns "" when the payload carries neither.
func odataURLFrom(raw []byte) string {
	payload := unwrapODataBody(raw)

	var probe struct {
		ODataID  string `json:"odata.id"`
		Metadata struct {
			URI string `json:"uri"`
			ID  string `json:"id"`
		} `json:"__metadata"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return ""
	}
	if probe.ODataID != "" {
		return probe.ODataID
	}
	if probe.Metadata.URI != "" {
		return probe.Metadata.URI
	}
	return probe.Metadata.ID
}

// unmarshalFunctionResult decodes a REST function-call payload into out.
// Verbose responses key the result by the function name
// ({"d": {"MapToIcon": ...}}); minimal responses return the bare value.
func unmarshalFunctionResult(raw []byte, name string, out any) error {
	payload := unwrapODataBody(raw)

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(payload, &keyed); err == nil {
		if inner, ok := keyed[name]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	return json.Unmarshal(payload, out)
}

// escapeQueryStr escapes single quotes for embedding a string inside a
// quoted OData function-call argument.
func escapeQueryStr(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// joinPath concatenates two URL fragments with exactly one slash between
// them. Empty fragments are ignored.
func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	if segment == "" {
		return parent
	}
	return strings.TrimSuffix(parent, "/") + "/" + strings.TrimPrefix(segment, "/")
}
