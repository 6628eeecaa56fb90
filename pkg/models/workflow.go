package models

import "time"

// Workflow is a single orchestrated run: an ordered pipeline of task groups.
// Workflows are synthesized on demand and never stored; the same (seed, index)
// always reproduces the same value.
type Workflow struct {
	Name       string         `json:"name"`
	Status     WorkflowStatus `json:"status"`
	Priority   string         `json:"priority"`
	Pool       string         `json:"pool"`
	SubmitTime time.Time      `json:"submit_time"`
	StartTime  *time.Time     `json:"start_time,omitempty"` // set once the workflow leaves PENDING/WAITING
	EndTime    *time.Time     `json:"end_time,omitempty"`   // set only for terminal statuses
	Groups     []Group        `json:"groups"`
}

// Group is one stage of a workflow's execution DAG. Upstream and Downstream
// reference sibling groups by name.
type Group struct {
	Name       string      `json:"name"`
	Status     GroupStatus `json:"status"`
	Upstream   []string    `json:"upstream,omitempty"`
	Downstream []string    `json:"downstream,omitempty"`
	Tasks      []Task      `json:"tasks"`
}

// ResourceRequest is the compute shape a task asked for.
type ResourceRequest struct {
	GPU       int `json:"gpu"`
	CPU       int `json:"cpu"`
	MemoryGB  int `json:"memory_gb"`
	StorageGB int `json:"storage_gb"`
}

// Task is a single schedulable unit within a group. RetryID distinguishes
// attempts of the same logical task; the highest RetryID is the live one.
type Task struct {
	Name           string          `json:"name"`
	RetryID        int             `json:"retry_id"`
	Status         TaskStatus      `json:"status"`
	UUID           string          `json:"uuid"`
	PodName        string          `json:"pod_name"`
	NodeName       string          `json:"node_name"`
	Resources      ResourceRequest `json:"resources"`
	ExitCode       *int            `json:"exit_code,omitempty"`
	FailureMessage string          `json:"failure_message,omitempty"`

	SubmitTime            time.Time  `json:"submit_time"`
	StartTime             *time.Time `json:"start_time,omitempty"`
	EndTime               *time.Time `json:"end_time,omitempty"`
	OutputUploadStartTime *time.Time `json:"output_upload_start_time,omitempty"` // terminal tasks only
	OutputUploadEndTime   *time.Time `json:"output_upload_end_time,omitempty"`
}
