package databricks

import (
	"strings"
)

// Page size limits enforced by the Jobs API.
const (
	maxJobsListLimit = 100
	maxRunsListLimit = 25
)

// ExportFormat is a workspace export format.
type ExportFormat string

const (
	FormatSource  ExportFormat = "SOURCE"
	FormatHTML    ExportFormat = "HTML"
	FormatJupyter ExportFormat = "JUPYTER"
	FormatDBC     ExportFormat = "DBC"
)

// Valid reports whether f is one of the supported export formats.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatSource, FormatHTML, FormatJupyter, FormatDBC:
		return true
	}
	return false
}

// normalize upper-cases f and applies the SOURCE default.
func (f ExportFormat) normalize() ExportFormat {
	if f == "" {
		return FormatSource
	}
	return ExportFormat(strings.ToUpper(string(f)))
}

// checkID reports a zero id as missing and a negative one as invalid.
func checkID(field string, id int64) error {
	switch {
	case id == 0:
		return required(field)
	case id < 0:
		return invalid(field, "must be a positive integer")
	}
	return nil
}

// ClusterRequest identifies a cluster.
type ClusterRequest struct {
	ClusterID string `mapstructure:"cluster_id"`
}

func (r *ClusterRequest) Validate() error {
	if r.ClusterID == "" {
		return required("cluster_id")
	}
	return nil
}

// CreateClusterRequest holds the settings for a new cluster.
type CreateClusterRequest struct {
	ClusterName            string `mapstructure:"cluster_name"`
	SparkVersion           string `mapstructure:"spark_version"`
	NodeTypeID             string `mapstructure:"node_type_id"`
	NumWorkers             *int   `mapstructure:"num_workers"`
	AutoterminationMinutes *int   `mapstructure:"autotermination_minutes"`
}

func (r *CreateClusterRequest) Validate() error {
	switch {
	case r.ClusterName == "":
		return required("cluster_name")
	case r.SparkVersion == "":
		return required("spark_version")
	case r.NodeTypeID == "":
		return required("node_type_id")
	case r.NumWorkers != nil && *r.NumWorkers < 0:
		return invalid("num_workers", "must not be negative")
	case r.AutoterminationMinutes != nil && *r.AutoterminationMinutes < 0:
		return invalid("autotermination_minutes", "must not be negative")
	}
	return nil
}

// ListJobsRequest pages through job definitions.
type ListJobsRequest struct {
	Limit     int    `mapstructure:"limit"`
	PageToken string `mapstructure:"page_token"`
	Name      string `mapstructure:"name"`
}

func (r *ListJobsRequest) Validate() error {
	if r.Limit < 0 || r.Limit > maxJobsListLimit {
		return invalid("limit", "must be between 1 and 100")
	}
	return nil
}

// JobRequest identifies a job.
type JobRequest struct {
	JobID int64 `mapstructure:"job_id"`
}

func (r *JobRequest) Validate() error {
	if err := checkID("job_id", r.JobID); err != nil {
		return err
	}
	return nil
}

// CreateJobRequest carries a full job settings object.
type CreateJobRequest struct {
	Settings map[string]any `mapstructure:"settings"`
}

func (r *CreateJobRequest) Validate() error {
	if len(r.Settings) == 0 {
		return required("settings")
	}
	return nil
}

// UpdateJobRequest applies a partial settings update to a job.
type UpdateJobRequest struct {
	JobID       int64          `mapstructure:"job_id"`
	NewSettings map[string]any `mapstructure:"new_settings"`
}

func (r *UpdateJobRequest) Validate() error {
	if err := checkID("job_id", r.JobID); err != nil {
		return err
	}
	if len(r.NewSettings) == 0 {
		return required("new_settings")
	}
	return nil
}

// RunJobRequest triggers a job run.
type RunJobRequest struct {
	JobID          int64          `mapstructure:"job_id"`
	NotebookParams map[string]any `mapstructure:"notebook_params"`
}

func (r *RunJobRequest) Validate() error {
	if err := checkID("job_id", r.JobID); err != nil {
		return err
	}
	return nil
}

// ListJobRunsRequest filters and pages job runs. A nil JobID lists runs of all jobs.
type ListJobRunsRequest struct {
	JobID         *int64 `mapstructure:"job_id"`
	Limit         int    `mapstructure:"limit"`
	PageToken     string `mapstructure:"page_token"`
	ActiveOnly    bool   `mapstructure:"active_only"`
	CompletedOnly bool   `mapstructure:"completed_only"`
}

func (r *ListJobRunsRequest) Validate() error {
	if r.JobID != nil && *r.JobID <= 0 {
		return invalid("job_id", "must be a positive integer")
	}
	if r.Limit < 0 || r.Limit > maxRunsListLimit {
		return invalid("limit", "must be between 1 and 25")
	}
	if r.ActiveOnly && r.CompletedOnly {
		return invalid("active_only", "cannot be combined with completed_only")
	}
	return nil
}

// RunRequest identifies a job run.
type RunRequest struct {
	RunID int64 `mapstructure:"run_id"`
}

func (r *RunRequest) Validate() error {
	if err := checkID("run_id", r.RunID); err != nil {
		return err
	}
	return nil
}

// WorkspacePathRequest identifies a workspace directory.
type WorkspacePathRequest struct {
	Path string `mapstructure:"path"`
}

func (r *WorkspacePathRequest) Validate() error {
	if r.Path == "" {
		return required("path")
	}
	return nil
}

// ExportNotebookRequest identifies a notebook and the export format.
type ExportNotebookRequest struct {
	Path   string       `mapstructure:"path"`
	Format ExportFormat `mapstructure:"format"`
}

func (r *ExportNotebookRequest) Validate() error {
	if r.Path == "" {
		return required("path")
	}
	if !r.Format.normalize().Valid() {
		return invalid("format", "must be one of SOURCE, HTML, JUPYTER, DBC")
	}
	return nil
}

// ListFilesRequest identifies a DBFS directory.
type ListFilesRequest struct {
	Path string `mapstructure:"dbfs_path"`
}

func (r *ListFilesRequest) Validate() error {
	if r.Path == "" {
		return required("dbfs_path")
	}
	return nil
}

// ExecuteStatementRequest runs one SQL statement on a warehouse.
type ExecuteStatementRequest struct {
	Statement   string `mapstructure:"statement"`
	WarehouseID string `mapstructure:"warehouse_id"`
	Catalog     string `mapstructure:"catalog"`
	Schema      string `mapstructure:"schema"`
	WaitTimeout string `mapstructure:"wait_timeout"`
}

func (r *ExecuteStatementRequest) Validate() error {
	if strings.TrimSpace(r.Statement) == "" {
		return required("statement")
	}
	if r.WarehouseID == "" {
		return required("warehouse_id")
	}
	return nil
}

// StatementRequest identifies a previously submitted SQL statement.
type StatementRequest struct {
	StatementID string `mapstructure:"statement_id"`
}

func (r *StatementRequest) Validate() error {
	if r.StatementID == "" {
		return required("statement_id")
	}
	return nil
}
