// Package interfaces defines the contracts between the tool layer and the
// Databricks client.
package interfaces

import (
	"context"

	"github.com/bobmcallan/databricks-mcp/internal/databricks"
)

// DatabricksClient provides access to one Databricks workspace.
// Every method issues at most one request and returns the decoded body.
type DatabricksClient interface {
	// Host returns the workspace base URL
	Host() string

	// Clusters
	ListClusters(ctx context.Context) (databricks.Response, error)
	GetCluster(ctx context.Context, req databricks.ClusterRequest) (databricks.Response, error)
	CreateCluster(ctx context.Context, req databricks.CreateClusterRequest) (databricks.Response, error)
	StartCluster(ctx context.Context, req databricks.ClusterRequest) (databricks.Response, error)
	TerminateCluster(ctx context.Context, req databricks.ClusterRequest) (databricks.Response, error)

	// Jobs
	ListJobs(ctx context.Context, req databricks.ListJobsRequest) (databricks.Response, error)
	GetJob(ctx context.Context, req databricks.JobRequest) (databricks.Response, error)
	CreateJob(ctx context.Context, req databricks.CreateJobRequest) (databricks.Response, error)
	UpdateJob(ctx context.Context, req databricks.UpdateJobRequest) (databricks.Response, error)
	DeleteJob(ctx context.Context, req databricks.JobRequest) (databricks.Response, error)
	RunJob(ctx context.Context, req databricks.RunJobRequest) (databricks.Response, error)

	// Runs
	ListJobRuns(ctx context.Context, req databricks.ListJobRunsRequest) (databricks.Response, error)
	GetJobRun(ctx context.Context, req databricks.RunRequest) (databricks.Response, error)
	GetRunOutput(ctx context.Context, req databricks.RunRequest) (databricks.Response, error)
	CancelRun(ctx context.Context, req databricks.RunRequest) (databricks.Response, error)

	// Workspace and DBFS
	ListNotebooks(ctx context.Context, req databricks.WorkspacePathRequest) (databricks.Response, error)
	ExportNotebook(ctx context.Context, req databricks.ExportNotebookRequest) (databricks.Response, error)
	ListFiles(ctx context.Context, req databricks.ListFilesRequest) (databricks.Response, error)

	// SQL statement execution
	ExecuteStatement(ctx context.Context, req databricks.ExecuteStatementRequest) (databricks.Response, error)
	GetStatement(ctx context.Context, req databricks.StatementRequest) (databricks.Response, error)
}

var _ DatabricksClient = (*databricks.Client)(nil)
