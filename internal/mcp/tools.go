package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/interfaces"
)

func param(name, typ, description string) CatalogParam {
	return CatalogParam{Name: name, Type: typ, Description: description}
}

func requiredParam(name, typ, description string) CatalogParam {
	return CatalogParam{Name: name, Type: typ, Description: description, Required: true}
}

// Catalog returns every Databricks tool in registration order.
func Catalog() []CatalogTool {
	clusterID := requiredParam("cluster_id", "string", "ID of the cluster")
	jobID := requiredParam("job_id", "number", "ID of the job")
	runID := requiredParam("run_id", "number", "ID of the job run")

	return []CatalogTool{
		// Clusters
		{
			Name:        "list_clusters",
			Description: "List all Databricks clusters in the workspace. No parameters.",
			call:        noArgs(interfaces.DatabricksClient.ListClusters),
		},
		{
			Name:        "get_cluster",
			Description: "Get the configuration and state of a Databricks cluster. Required: cluster_id.",
			Params:      []CatalogParam{clusterID},
			call:        bind(interfaces.DatabricksClient.GetCluster),
		},
		{
			Name:        "create_cluster",
			Description: "Create a new Databricks cluster. Required: cluster_name, spark_version, node_type_id. Optional: num_workers, autotermination_minutes.",
			Params: []CatalogParam{
				requiredParam("cluster_name", "string", "Name for the cluster"),
				requiredParam("spark_version", "string", "Databricks runtime version, e.g. 15.4.x-scala2.12"),
				requiredParam("node_type_id", "string", "Instance type for driver and workers, e.g. i3.xlarge"),
				param("num_workers", "number", "Number of worker nodes"),
				param("autotermination_minutes", "number", "Idle minutes before the cluster terminates"),
			},
			call: bind(interfaces.DatabricksClient.CreateCluster),
		},
		{
			Name:        "start_cluster",
			Description: "Start a terminated Databricks cluster. Required: cluster_id.",
			Params:      []CatalogParam{clusterID},
			call:        bind(interfaces.DatabricksClient.StartCluster),
		},
		{
			Name:        "terminate_cluster",
			Description: "Terminate a Databricks cluster. The cluster configuration is kept. Required: cluster_id.",
			Params:      []CatalogParam{clusterID},
			call:        bind(interfaces.DatabricksClient.TerminateCluster),
		},

		// Jobs
		{
			Name:        "list_jobs",
			Description: "List Databricks jobs, one page at a time. Optional: limit (1-100), page_token from a previous next_page_token, name filter.",
			Params: []CatalogParam{
				param("limit", "number", "Maximum jobs to return (1-100)"),
				param("page_token", "string", "next_page_token from a previous call"),
				param("name", "string", "Exact job name filter"),
			},
			call: bind(interfaces.DatabricksClient.ListJobs),
		},
		{
			Name:        "get_job",
			Description: "Get the settings of a Databricks job. Required: job_id.",
			Params:      []CatalogParam{jobID},
			call:        bind(interfaces.DatabricksClient.GetJob),
		},
		{
			Name:        "create_job",
			Description: "Create a Databricks job from a Jobs API settings object. Required: settings.",
			Params: []CatalogParam{
				requiredParam("settings", "object", "Job settings, e.g. name, tasks, schedule"),
			},
			call: bind(interfaces.DatabricksClient.CreateJob),
		},
		{
			Name:        "update_job",
			Description: "Update fields of a Databricks job. Fields not in new_settings are left unchanged. Required: job_id, new_settings.",
			Params: []CatalogParam{
				jobID,
				requiredParam("new_settings", "object", "Settings fields to change"),
			},
			call: bind(interfaces.DatabricksClient.UpdateJob),
		},
		{
			Name:        "delete_job",
			Description: "Delete a Databricks job. Required: job_id.",
			Params:      []CatalogParam{jobID},
			call:        bind(interfaces.DatabricksClient.DeleteJob),
		},
		{
			Name:        "run_job",
			Description: "Trigger a run of a Databricks job now. Required: job_id. Optional: notebook_params.",
			Params: []CatalogParam{
				jobID,
				param("notebook_params", "object", "Widget values passed to notebook tasks"),
			},
			call: bind(interfaces.DatabricksClient.RunJob),
		},

		// Runs
		{
			Name:        "list_job_runs",
			Description: "List job runs, newest first, one page at a time. Optional: job_id (all jobs when omitted), limit (1-25), page_token, active_only, completed_only.",
			Params: []CatalogParam{
				param("job_id", "number", "Only list runs of this job"),
				param("limit", "number", "Maximum runs to return (1-25)"),
				param("page_token", "string", "next_page_token from a previous call"),
				param("active_only", "boolean", "Only pending and running runs"),
				param("completed_only", "boolean", "Only finished runs"),
			},
			call: bind(interfaces.DatabricksClient.ListJobRuns),
		},
		{
			Name:        "get_job_run_details",
			Description: "Get the state and task details of a job run. Required: run_id.",
			Params:      []CatalogParam{runID},
			call:        bind(interfaces.DatabricksClient.GetJobRun),
		},
		{
			Name:        "get_task_run_output",
			Description: "Get the output and error of a single task run. Required: run_id of the task run.",
			Params:      []CatalogParam{runID},
			call:        bind(interfaces.DatabricksClient.GetRunOutput),
		},
		{
			Name:        "cancel_run",
			Description: "Cancel an active job run. Cancellation is asynchronous. Required: run_id.",
			Params:      []CatalogParam{runID},
			call:        bind(interfaces.DatabricksClient.CancelRun),
		},

		// Workspace
		{
			Name:        "list_notebooks",
			Description: "List notebooks and folders in a workspace directory. Required: path.",
			Params: []CatalogParam{
				requiredParam("path", "string", "Workspace directory, e.g. /Users/someone@example.com"),
			},
			call: bind(interfaces.DatabricksClient.ListNotebooks),
		},
		{
			Name:        "export_notebook",
			Description: "Export a notebook. Content over 1000 characters is truncated. Required: path. Optional: format (SOURCE, HTML, JUPYTER, DBC; default SOURCE).",
			Params: []CatalogParam{
				requiredParam("path", "string", "Workspace path of the notebook"),
				{
					Name:        "format",
					Type:        "string",
					Description: "Export format",
					Enum:        []string{"SOURCE", "HTML", "JUPYTER", "DBC"},
				},
			},
			call: bind(interfaces.DatabricksClient.ExportNotebook),
		},
		{
			Name:        "list_files",
			Description: "List files and directories in a DBFS path. Required: dbfs_path.",
			Params: []CatalogParam{
				requiredParam("dbfs_path", "string", "DBFS directory, e.g. /FileStore"),
			},
			call: bind(interfaces.DatabricksClient.ListFiles),
		},

		// SQL
		{
			Name:        "execute_sql",
			Description: "Execute a SQL statement on a SQL warehouse. Long statements return a statement_id to poll with get_sql_statement. Required: statement, warehouse_id. Optional: catalog, schema, wait_timeout (default 10s).",
			Params: []CatalogParam{
				requiredParam("statement", "string", "SQL statement to execute"),
				requiredParam("warehouse_id", "string", "ID of the SQL warehouse"),
				param("catalog", "string", "Default catalog for the statement"),
				param("schema", "string", "Default schema for the statement"),
				param("wait_timeout", "string", "How long to wait for results, e.g. 30s"),
			},
			call: bind(interfaces.DatabricksClient.ExecuteStatement),
		},
		{
			Name:        "get_sql_statement",
			Description: "Get the status and results of a SQL statement. Required: statement_id.",
			Params: []CatalogParam{
				requiredParam("statement_id", "string", "statement_id returned by execute_sql"),
			},
			call: bind(interfaces.DatabricksClient.GetStatement),
		},
	}
}

// RegisterTools validates the catalog and registers every tool plus get_version.
// It returns the number of catalog tools registered.
func RegisterTools(s *server.MCPServer, client interfaces.DatabricksClient, logger *common.Logger) int {
	catalog := ValidateCatalog(Catalog(), logger)
	for _, ct := range catalog {
		s.AddTool(BuildMCPTool(ct), toolHandler(client, ct, logger))
	}
	s.AddTool(VersionTool(), VersionToolHandler(client.Host()))
	return len(catalog)
}
