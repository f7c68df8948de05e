package sharepoint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapODataBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"Id":"1"}`, `{"Id":"1"}`},
		{"verbose entity", `{"d":{"Id":"1"}}`, `{"Id":"1"}`},
		{"verbose collection", `{"d":{"results":[{"Id":"1"}]}}`, `[{"Id":"1"}]`},
		{"minimal collection", `{"value":[{"Id":"1"}]}`, `[{"Id":"1"}]`},
		{"bare array", `[1,2]`, `[1,2]`},
		{"scalar", `"x"`, `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(unwrapODataBody([]byte(tt.raw))))
		})
	}
}

func TestODataURLFrom(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"odata.id annotation",
			`{"odata.id":"https://x/_api/web","__metadata":{"uri":"https://y/_api/web"}}`,
			"https://x/_api/web",
		},
		{
			"verbose metadata uri",
			`{"__metadata":{"uri":"https://y/_api/web"}}`,
			"https://y/_api/web",
		},
		{
			"verbose metadata id",
			`{"__metadata":{"id":"https://z/_api/web"}}`,
			"https://z/_api/web",
		},
		{
			"wrapped in d",
			`{"d":{"odata.id":"https://x/_api/web"}}`,
			"https://x/_api/web",
		},
		{"nothing", `{"Id":"1"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, odataURLFrom([]byte(tt.raw)))
		})
	}
}

func TestUnmarshalFunctionResult(t *testing.T) {
	var s string
	require.NoError(t, unmarshalFunctionResult([]byte(`{"d":{"MapToIcon":"icgen.gif"}}`), "MapToIcon", &s))
	assert.Equal(t, "icgen.gif", s)

	s = ""
	require.NoError(t, unmarshalFunctionResult([]byte(`"icgen.gif"`), "MapToIcon", &s))
	assert.Equal(t, "icgen.gif", s)

	var entity StorageEntity
	require.NoError(t, unmarshalFunctionResult([]byte(`{"GetStorageEntity":{"Value":"v"}}`), "GetStorageEntity", &entity))
	assert.Equal(t, "v", entity.Value)

	entity = StorageEntity{}
	require.NoError(t, unmarshalFunctionResult([]byte(`{"Value":"v","Comment":"c"}`), "GetStorageEntity", &entity))
	assert.Equal(t, "v", entity.Value)
	assert.Equal(t, "c", entity.Comment)
}

func TestTypedBody(t *testing.T) {
	body := typedBody("SP.Web", map[string]any{"Title": "New"})

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"__metadata":{"type":"SP.Web"},"Title":"New"}`, string(raw))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a/b", joinPath("a", "b"))
	assert.Equal(t, "a/b", joinPath("a/", "/b"))
	assert.Equal(t, "b", joinPath("", "b"))
	assert.Equal(t, "a", joinPath("a", ""))
}
