package databricks

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportBody(t *testing.T, content string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{"content": content, "file_type": "py"})
	require.NoError(t, err)
	return string(b)
}

func TestExportNotebook_TruncatesLongContent(t *testing.T) {
	content := strings.Repeat("a", 1000) + strings.Repeat("b", 500)
	stub := newStubServer(t, http.StatusOK, exportBody(t, content))
	client := newTestClient(stub.URL)

	resp, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/Users/me/etl"})
	require.NoError(t, err)

	want := strings.Repeat("a", 1000) + "... [content truncated, total length: 1500 characters]"
	assert.Equal(t, want, resp["content"])
	assert.Equal(t, "py", resp["file_type"])
}

func TestExportNotebook_ShortContentUnchanged(t *testing.T) {
	content := strings.Repeat("x", 500)
	stub := newStubServer(t, http.StatusOK, exportBody(t, content))
	client := newTestClient(stub.URL)

	resp, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/Users/me/etl"})
	require.NoError(t, err)
	assert.Equal(t, content, resp["content"])
}

func TestExportNotebook_ExactlyAtLimitUnchanged(t *testing.T) {
	content := strings.Repeat("x", 1000)
	stub := newStubServer(t, http.StatusOK, exportBody(t, content))
	client := newTestClient(stub.URL)

	resp, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/n"})
	require.NoError(t, err)
	assert.Equal(t, content, resp["content"])
}

func TestExportNotebook_CountsCharactersNotBytes(t *testing.T) {
	content := strings.Repeat("é", 1200)
	stub := newStubServer(t, http.StatusOK, exportBody(t, content))
	client := newTestClient(stub.URL)

	resp, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/n"})
	require.NoError(t, err)

	got := resp["content"].(string)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("é", 1000)+"..."))
	assert.True(t, strings.HasSuffix(got, "total length: 1200 characters]"))
}

func TestExportNotebook_FormatQuery(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{}`)
	client := newTestClient(stub.URL)

	_, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/n"})
	require.NoError(t, err)
	_, err = client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/n", Format: "jupyter"})
	require.NoError(t, err)

	reqs := stub.Requests()
	assert.Equal(t, "/api/2.0/workspace/export", reqs[0].Path)
	assert.Equal(t, "/n", reqs[0].Query.Get("path"))
	assert.Equal(t, "SOURCE", reqs[0].Query.Get("format"))
	assert.Equal(t, "JUPYTER", reqs[1].Query.Get("format"))
}

func TestExportNotebook_Validation(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{}`)
	client := newTestClient(stub.URL)

	_, err := client.ExportNotebook(context.Background(), ExportNotebookRequest{})
	assert.EqualError(t, err, "path is required")

	_, err = client.ExportNotebook(context.Background(), ExportNotebookRequest{Path: "/n", Format: "PDF"})
	assert.EqualError(t, err, "format must be one of SOURCE, HTML, JUPYTER, DBC")

	assert.Empty(t, stub.Requests())
}

func TestListNotebooks(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{"objects":[{"path":"/Users/me/etl","object_type":"NOTEBOOK"}]}`)
	client := newTestClient(stub.URL)

	_, err := client.ListNotebooks(context.Background(), WorkspacePathRequest{Path: "/Users/me"})
	require.NoError(t, err)

	req := stub.Requests()[0]
	assert.Equal(t, "/api/2.0/workspace/list", req.Path)
	assert.Equal(t, "/Users/me", req.Query.Get("path"))

	_, err = client.ListNotebooks(context.Background(), WorkspacePathRequest{})
	assert.EqualError(t, err, "path is required")
}

func TestListFiles(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{"files":[{"path":"/tmp/a","is_dir":false,"file_size":10}]}`)
	client := newTestClient(stub.URL)

	_, err := client.ListFiles(context.Background(), ListFilesRequest{Path: "/tmp"})
	require.NoError(t, err)

	req := stub.Requests()[0]
	assert.Equal(t, "/api/2.0/dbfs/list", req.Path)
	assert.Equal(t, "/tmp", req.Query.Get("path"))

	_, err = client.ListFiles(context.Background(), ListFilesRequest{})
	assert.EqualError(t, err, "dbfs_path is required")
}

func TestTruncateContent_NonStringContent(t *testing.T) {
	resp := Response{"content": 12}
	assert.False(t, truncateContent(resp, 1))
	assert.Equal(t, 12, resp["content"])
}
