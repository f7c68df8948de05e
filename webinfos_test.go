package sharepoint_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedro-pedrosa/sharepoint-go/sptest"
)

func TestWebInfosGet(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	server.RespondWithJSON(200, `{"value":[{"Id":"a","Title":"One","WebTemplate":"STS"},{"Id":"b","Title":"Two","WebTemplate":"BLOG"}]}`)

	infos, err := client.Web().WebInfos().Get(context.Background())
	require.NoError(t, err)

	require.Len(t, *infos, 2)
	assert.Equal(t, "STS", (*infos)[0].WebTemplate)
	assert.Equal(t, "Two", (*infos)[1].Title)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/_api/web/webinfos", req.Path)
}

func TestWebInfosShaping(t *testing.T) {
	client, server := sptest.NewTestClient(t)
	server.RespondWithJSON(200, `{"value":[]}`)

	_, err := client.Web().WebInfos().
		Select("Id", "Title").
		Filter("Language eq 1033").
		OrderBy("Title", true).
		Top(25).
		Get(context.Background())
	require.NoError(t, err)

	query := server.LastRequest().Query
	assert.Contains(t, query, "%24select=Id%2CTitle")
	assert.Contains(t, query, "%24filter=Language+eq+1033")
	assert.Contains(t, query, "%24orderby=Title+asc")
	assert.Contains(t, query, "%24top=25")
}
