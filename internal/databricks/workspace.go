package databricks

import (
	"context"
	"fmt"
	"net/url"
)

const workspaceAPI = "/api/2.0/workspace"

// maxNotebookContent is the number of characters of exported content kept
// in a response. Larger exports are cut to a preview.
const maxNotebookContent = 1000

// ListNotebooks lists the objects in a workspace directory.
func (c *Client) ListNotebooks(ctx context.Context, req WorkspacePathRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, workspaceAPI+"/list", url.Values{"path": {req.Path}})
}

// ExportNotebook exports a notebook. A content field longer than
// maxNotebookContent characters is replaced by a preview and its total length.
func (c *Client) ExportNotebook(ctx context.Context, req ExportNotebookRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	format := req.Format.normalize()
	resp, err := c.get(ctx, workspaceAPI+"/export", url.Values{
		"path":   {req.Path},
		"format": {string(format)},
	})
	if err != nil {
		return nil, err
	}

	if truncateContent(resp, maxNotebookContent) {
		c.logger.Debug().Str("path", req.Path).Msg("notebook content truncated")
	}
	return resp, nil
}

// truncateContent shortens resp["content"] to limit runes and reports
// whether it did.
func truncateContent(resp Response, limit int) bool {
	content, ok := resp["content"].(string)
	if !ok {
		return false
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return false
	}
	resp["content"] = fmt.Sprintf("%s... [content truncated, total length: %d characters]", string(runes[:limit]), len(runes))
	return true
}
