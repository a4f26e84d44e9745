package databricks

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCluster(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{"cluster_id":"0101-abc","state":"RUNNING"}`)
	client := newTestClient(stub.URL)

	resp, err := client.GetCluster(context.Background(), ClusterRequest{ClusterID: "0101-abc"})
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", resp["state"])

	req := stub.Requests()[0]
	assert.Equal(t, "/api/2.0/clusters/get", req.Path)
	assert.Equal(t, "0101-abc", req.Query.Get("cluster_id"))
}

func TestStartAndTerminateCluster(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{}`)
	client := newTestClient(stub.URL)

	_, err := client.StartCluster(context.Background(), ClusterRequest{ClusterID: "c1"})
	require.NoError(t, err)
	_, err = client.TerminateCluster(context.Background(), ClusterRequest{ClusterID: "c1"})
	require.NoError(t, err)

	reqs := stub.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/api/2.0/clusters/start", reqs[0].Path)
	assert.Equal(t, "/api/2.0/clusters/delete", reqs[1].Path)
	for _, r := range reqs {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.JSONEq(t, `{"cluster_id":"c1"}`, r.RawBody)
	}
}

func TestClusterRequests_RequireClusterID(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{}`)
	client := newTestClient(stub.URL)
	ctx := context.Background()

	_, err := client.GetCluster(ctx, ClusterRequest{})
	assert.EqualError(t, err, "cluster_id is required")
	_, err = client.StartCluster(ctx, ClusterRequest{})
	assert.EqualError(t, err, "cluster_id is required")
	_, err = client.TerminateCluster(ctx, ClusterRequest{})
	assert.EqualError(t, err, "cluster_id is required")

	assert.Empty(t, stub.Requests())
}

func TestCreateCluster(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{"cluster_id":"new-1"}`)
	client := newTestClient(stub.URL)

	workers := 2
	_, err := client.CreateCluster(context.Background(), CreateClusterRequest{
		ClusterName:  "analytics",
		SparkVersion: "15.4.x-scala2.12",
		NodeTypeID:   "i3.xlarge",
		NumWorkers:   &workers,
	})
	require.NoError(t, err)

	req := stub.Requests()[0]
	assert.Equal(t, "/api/2.0/clusters/create", req.Path)
	assert.JSONEq(t, `{"cluster_name":"analytics","spark_version":"15.4.x-scala2.12","node_type_id":"i3.xlarge","num_workers":2}`, req.RawBody)
}

func TestCreateCluster_Validation(t *testing.T) {
	stub := newStubServer(t, http.StatusOK, `{}`)
	client := newTestClient(stub.URL)

	negative := -1
	cases := map[string]CreateClusterRequest{
		"cluster_name is required":  {SparkVersion: "v", NodeTypeID: "n"},
		"spark_version is required": {ClusterName: "c", NodeTypeID: "n"},
		"node_type_id is required":  {ClusterName: "c", SparkVersion: "v"},
		"num_workers must not be negative": {
			ClusterName: "c", SparkVersion: "v", NodeTypeID: "n", NumWorkers: &negative,
		},
	}
	for want, req := range cases {
		_, err := client.CreateCluster(context.Background(), req)
		assert.EqualError(t, err, want)
	}
	assert.Empty(t, stub.Requests())
}
