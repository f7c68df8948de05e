package sharepoint_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharepoint "github.com/pedro-pedrosa/sharepoint-go"
	"github.com/pedro-pedrosa/sharepoint-go/sptest"
)

func TestWebGet(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	server.RespondWithJSON(200, `{"d":{"Id":"w-1","Title":"Dev Site","ServerRelativeUrl":"/sites/dev","Language":1033}}`)

	info, err := client.Web().Select("Id", "Title").Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "w-1", info.ID)
	assert.Equal(t, "Dev Site", info.Title)
	assert.Equal(t, 1033, info.Language)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/_api/web", req.Path)
	assert.Contains(t, req.Query, "%24select=Id%2CTitle")
}

func TestWebUpdate(t *testing.T) {
	client, server := sptest.NewTestClient(t)

	web := client.Web()
	result, err := web.Update(context.Background(), map[string]any{"Title": "Renamed"})
	require.NoError(t, err)

	// The returned reference is the receiver itself.
	assert.Same(t, web, result.Web)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/_api/web", req.Path)
	assert.Equal(t, "MERGE", req.Header.Get("X-HTTP-Method"))
	assert.Equal(t, sptest.TestDigest, req.Header.Get("X-RequestDigest"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "Renamed", body["Title"])
	assert.Equal(t, map[string]any{"type": "SP.Web"}, body["__metadata"])
}

func TestWebDelete(t *testing.T) {
	client, server := sptest.NewTestClient(t)

	require.NoError(t, client.Web().Delete(context.Background()))

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/_api/web", req.Path)
	assert.Equal(t, "DELETE", req.Header.Get("X-HTTP-Method"))
	assert.Empty(t, req.Body)
}

func TestWebEnsureUser(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	userURL := client.SiteURL() + "/_api/Web/GetUserById(10)"
	server.RespondWithJSON(200, fmt.Sprintf(
		`{"d":{"__metadata":{"uri":"%s"},"Id":10,"LoginName":"i:0#.f|membership|dev@contoso.com","Title":"Dev User"}}`,
		userURL,
	))

	result, err := client.Web().EnsureUser(context.Background(), "i:0#.f|membership|dev@contoso.com")
	require.NoError(t, err)

	assert.Equal(t, 10, result.Data.ID)
	assert.Equal(t, "Dev User", result.Data.Title)
	// The user reference is derived from the response's entity URL.
	assert.Equal(t, userURL, result.User.URL())

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/_api/web/ensureuser", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "i:0#.f|membership|dev@contoso.com", body["logonName"])
}

func TestWebEnsureUserEmptyLogin(t *testing.T) {
	client, server := sptest.NewTestClient(t)

	_, err := client.Web().EnsureUser(context.Background(), "")
	assert.ErrorIs(t, err, sharepoint.ErrEmptyLoginName)
	assert.Equal(t, 0, server.RequestCount())
}

func TestWebGetCatalog(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	listURL := client.SiteURL() + "/_api/Web/Lists(guid'aaaa-bbbb')"
	server.RespondWithJSON(200, fmt.Sprintf(`{"d":{"__metadata":{"uri":"%s"},"Id":"aaaa-bbbb"}}`, listURL))

	result, err := client.Web().GetCatalog(context.Background(), 111)
	require.NoError(t, err)

	// The list reference comes from the returned identifier, not from the
	// getcatalog path.
	assert.Equal(t, listURL, result.List.URL())

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/_api/web/getcatalog(111)", req.Path)
	assert.Contains(t, req.Query, "%24select=Id")
}

func TestWebGetChanges(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	server.RespondWithJSON(200, `{"d":{"results":[{"ChangeType":1}]}}`)

	data, err := client.Web().GetChanges(context.Background(), &sharepoint.ChangeQuery{Web: true, Add: true})
	require.NoError(t, err)

	// Raw payload passes through untouched beyond envelope stripping.
	assert.JSONEq(t, `[{"ChangeType":1}]`, string(data))

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/_api/web/getchanges", req.Path)

	var body struct {
		Query map[string]any `json:"query"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, map[string]any{"type": "SP.ChangeQuery"}, body.Query["__metadata"])
	assert.Equal(t, true, body.Query["Web"])
	assert.Equal(t, true, body.Query["Add"])
	_, present := body.Query["Update"]
	assert.False(t, present, "unset flags should not be serialized")
}

func TestWebStorageEntities(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	ctx := context.Background()

	server.RespondWithJSON(200, `{"d":{"GetStorageEntity":{"Value":"#0078d4","Description":"brand color"}}}`)
	entity, err := client.Web().GetStorageEntity(ctx, "brand'color")
	require.NoError(t, err)
	assert.Equal(t, "#0078d4", entity.Value)
	assert.Equal(t, "/_api/web/getStorageEntity('brand''color')", server.LastRequest().Path)

	server.RespondWithJSON(200, `{}`)
	require.NoError(t, client.Web().SetStorageEntity(ctx, "brand", "#0078d4", "brand color", "updated"))
	req := server.LastRequest()
	assert.Equal(t, "/_api/web/setStorageEntity", req.Path)
	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "brand", body["key"])
	assert.Equal(t, "#0078d4", body["value"])

	require.NoError(t, client.Web().RemoveStorageEntity(ctx, "brand"))
	assert.Equal(t, "/_api/web/removeStorageEntity('brand')", server.LastRequest().Path)

	_, err = client.Web().GetStorageEntity(ctx, "")
	assert.ErrorIs(t, err, sharepoint.ErrEmptyKey)
}

func TestWebApplyTheme(t *testing.T) {
	client, server := sptest.NewTestClient(t)

	err := client.Web().ApplyTheme(context.Background(), sharepoint.ThemeInfo{
		ColorPaletteURL: "/sites/dev/_catalogs/theme/15/palette011.spcolor",
		FontSchemeURL:   "/sites/dev/_catalogs/theme/15/fontscheme007.spfont",
		ShareGenerated:  true,
	})
	require.NoError(t, err)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/_api/web/applytheme", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "/sites/dev/_catalogs/theme/15/palette011.spcolor", body["colorPaletteUrl"])
	assert.Equal(t, true, body["shareGenerated"])
}

func TestWebApplyWebTemplate(t *testing.T) {
	client, server := sptest.NewTestClient(t)

	require.NoError(t, client.Web().ApplyWebTemplate(context.Background(), "STS#0"))

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	// The template travels as an aliased query parameter.
	assert.Equal(t, "/_api/web/applywebtemplate(@t)", req.Path)
	assert.Contains(t, req.Query, "%40t=%27STS%230%27")
}

func TestWebMapToIcon(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	server.RespondWithJSON(200, `{"d":{"MapToIcon":"icdocx.png"}}`)

	icon, err := client.Web().MapToIcon(context.Background(), "report.docx", 0)
	require.NoError(t, err)
	assert.Equal(t, "icdocx.png", icon)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/_api/web/maptoicon(filename='report.docx', progid='', size=0)", req.Path)
}

func TestWebAccessorPaths(t *testing.T) {
	client, _ := sptest.NewTestClient(t)

	web := client.Web()
	assert.Equal(t, "_api/web", web.URL())
	assert.Equal(t, "_api/web/webs", web.Webs().URL())
	assert.Equal(t, "_api/web/webinfos", web.WebInfos().URL())
}

func TestWebFromURL(t *testing.T) {
	client, _ := sptest.NewTestClient(t)
	site := client.SiteURL()

	tests := []struct {
		name      string
		candidate string
		path      []string
		want      string
	}{
		{
			"entity url",
			site + "/_api/Web/Lists(guid'x')",
			nil,
			site + "/_api/web",
		},
		{
			"plain site url",
			site + "/sites/dev",
			nil,
			site + "/sites/dev/_api/web",
		},
		{
			"trailing slash",
			site + "/sites/dev/",
			nil,
			site + "/sites/dev/_api/web",
		},
		{
			"custom path",
			site + "/_api/web/webs",
			[]string{"_api/site"},
			site + "/_api/site",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			web := sharepoint.WebFromURL(client, tt.candidate, tt.path...)
			assert.Equal(t, tt.want, web.URL())
		})
	}
}
