package databricks

import (
	"context"
	"net/url"
)

const statementsAPI = "/api/2.0/sql/statements"

// defaultWaitTimeout is how long Databricks blocks before returning a
// PENDING statement instead of results.
const defaultWaitTimeout = "10s"

// ExecuteStatement submits a SQL statement to a warehouse. Statements that
// outlive the wait timeout come back with a statement_id to poll with
// GetStatement.
func (c *Client) ExecuteStatement(ctx context.Context, req ExecuteStatementRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	waitTimeout := req.WaitTimeout
	if waitTimeout == "" {
		waitTimeout = defaultWaitTimeout
	}

	body := map[string]any{
		"statement":    req.Statement,
		"warehouse_id": req.WarehouseID,
		"wait_timeout": waitTimeout,
	}
	if req.Catalog != "" {
		body["catalog"] = req.Catalog
	}
	if req.Schema != "" {
		body["schema"] = req.Schema
	}
	return c.post(ctx, statementsAPI, body)
}

// GetStatement returns the status and, once finished, the first result
// chunk of a statement.
func (c *Client) GetStatement(ctx context.Context, req StatementRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.getRoute(ctx, statementsAPI+"/{statement_id}", statementsAPI+"/"+url.PathEscape(req.StatementID), nil)
}
