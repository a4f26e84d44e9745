package databricks

import (
	"context"
	"net/url"
)

const clustersAPI = "/api/2.0/clusters"

// ListClusters returns all pinned, active and recently terminated clusters.
func (c *Client) ListClusters(ctx context.Context) (Response, error) {
	return c.get(ctx, clustersAPI+"/list", nil)
}

// GetCluster returns the configuration and state of one cluster.
func (c *Client) GetCluster(ctx context.Context, req ClusterRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, clustersAPI+"/get", url.Values{"cluster_id": {req.ClusterID}})
}

// CreateCluster creates a cluster and returns its cluster_id. Optional
// sizing fields are only sent when set.
func (c *Client) CreateCluster(ctx context.Context, req CreateClusterRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := map[string]any{
		"cluster_name":  req.ClusterName,
		"spark_version": req.SparkVersion,
		"node_type_id":  req.NodeTypeID,
	}
	if req.NumWorkers != nil {
		body["num_workers"] = *req.NumWorkers
	}
	if req.AutoterminationMinutes != nil {
		body["autotermination_minutes"] = *req.AutoterminationMinutes
	}

	return c.post(ctx, clustersAPI+"/create", body)
}

// StartCluster starts a terminated cluster.
func (c *Client) StartCluster(ctx context.Context, req ClusterRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, clustersAPI+"/start", map[string]any{"cluster_id": req.ClusterID})
}

// TerminateCluster terminates a cluster. The cluster definition is kept
// and it can be started again.
func (c *Client) TerminateCluster(ctx context.Context, req ClusterRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, clustersAPI+"/delete", map[string]any{"cluster_id": req.ClusterID})
}
