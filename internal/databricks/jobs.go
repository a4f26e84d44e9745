package databricks

import (
	"context"
	"net/url"
	"strconv"
)

const jobsAPI = "/api/2.2/jobs"

// ListJobs returns one page of job definitions. The response carries
// has_more and next_page_token; pages are never followed automatically.
func (c *Client) ListJobs(ctx context.Context, req ListJobsRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.PageToken != "" {
		query.Set("page_token", req.PageToken)
	}
	if req.Name != "" {
		query.Set("name", req.Name)
	}
	return c.get(ctx, jobsAPI+"/list", query)
}

// GetJob returns the settings of one job.
func (c *Client) GetJob(ctx context.Context, req JobRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, jobsAPI+"/get", url.Values{"job_id": {formatID(req.JobID)}})
}

// CreateJob creates a job from a full settings object and returns its job_id.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, jobsAPI+"/create", req.Settings)
}

// UpdateJob merges new_settings into an existing job.
func (c *Client) UpdateJob(ctx context.Context, req UpdateJobRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, jobsAPI+"/update", map[string]any{
		"job_id":       req.JobID,
		"new_settings": req.NewSettings,
	})
}

// DeleteJob deletes a job.
func (c *Client) DeleteJob(ctx context.Context, req JobRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, jobsAPI+"/delete", map[string]any{"job_id": req.JobID})
}

// RunJob triggers a run now and returns its run_id. notebook_params is
// omitted from the body when empty.
func (c *Client) RunJob(ctx context.Context, req RunJobRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := map[string]any{"job_id": req.JobID}
	if len(req.NotebookParams) > 0 {
		body["notebook_params"] = req.NotebookParams
	}
	return c.post(ctx, jobsAPI+"/run-now", body)
}

// ListJobRuns returns one page of runs, optionally for a single job.
func (c *Client) ListJobRuns(ctx context.Context, req ListJobRunsRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if req.JobID != nil {
		query.Set("job_id", formatID(*req.JobID))
	} else {
		c.logger.Debug().Msg("no job_id provided, listing runs for all jobs")
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.PageToken != "" {
		query.Set("page_token", req.PageToken)
	}
	if req.ActiveOnly {
		query.Set("active_only", "true")
	}
	if req.CompletedOnly {
		query.Set("completed_only", "true")
	}
	return c.get(ctx, jobsAPI+"/runs/list", query)
}

// GetJobRun returns the metadata and state of one run.
func (c *Client) GetJobRun(ctx context.Context, req RunRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, jobsAPI+"/runs/get", url.Values{"run_id": {formatID(req.RunID)}})
}

// GetRunOutput returns the output and error of a single task run.
func (c *Client) GetRunOutput(ctx context.Context, req RunRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, jobsAPI+"/runs/get-output", url.Values{"run_id": {formatID(req.RunID)}})
}

// CancelRun cancels an active run. Cancellation is asynchronous on the
// Databricks side; the response is empty on success.
func (c *Client) CancelRun(ctx context.Context, req RunRequest) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, jobsAPI+"/runs/cancel", map[string]any{"run_id": req.RunID})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
