package databricks

import (
	"context"
	"net/url"
)

// ListFiles lists the files and directories under a DBFS path.
func (c *Client) ListFiles(ctx context.Context, req ListFilesRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/2.0/dbfs/list", url.Values{"path": {req.Path}})
}
