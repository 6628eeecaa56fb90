package models

// WorkflowStatus is the top-level execution state of a workflow.
type WorkflowStatus string

const (
	PendingWorkflowStatus   WorkflowStatus = "PENDING"
	WaitingWorkflowStatus   WorkflowStatus = "WAITING"
	RunningWorkflowStatus   WorkflowStatus = "RUNNING"
	CompletedWorkflowStatus WorkflowStatus = "COMPLETED"

	// Failure subtypes. A workflow that stops making progress always carries
	// one of these, never the bare lifecycle states above.
	FailedWorkflowStatus           WorkflowStatus = "FAILED"
	FailedOOMWorkflowStatus        WorkflowStatus = "FAILED_OOM"
	FailedEvictedWorkflowStatus    WorkflowStatus = "FAILED_EVICTED"
	FailedImagePullWorkflowStatus  WorkflowStatus = "FAILED_IMAGE_PULL"
	FailedCrashLoopWorkflowStatus  WorkflowStatus = "FAILED_CRASH_LOOP"
	FailedPreemptedWorkflowStatus  WorkflowStatus = "FAILED_PREEMPTED"
	FailedStartErrorWorkflowStatus WorkflowStatus = "FAILED_START_ERROR"
	FailedTimeoutWorkflowStatus    WorkflowStatus = "FAILED_TIMEOUT"
	FailedCancelledWorkflowStatus  WorkflowStatus = "FAILED_CANCELLED"
	FailedUploadWorkflowStatus     WorkflowStatus = "FAILED_UPLOAD"
	FailedDownloadWorkflowStatus   WorkflowStatus = "FAILED_DOWNLOAD"
	FailedNodeLostWorkflowStatus   WorkflowStatus = "FAILED_NODE_LOST"
)

// WorkflowStatuses lists every workflow status in a fixed order.
func WorkflowStatuses() []WorkflowStatus {
	return []WorkflowStatus{
		PendingWorkflowStatus, WaitingWorkflowStatus, RunningWorkflowStatus,
		CompletedWorkflowStatus, FailedWorkflowStatus, FailedOOMWorkflowStatus,
		FailedEvictedWorkflowStatus, FailedImagePullWorkflowStatus,
		FailedCrashLoopWorkflowStatus, FailedPreemptedWorkflowStatus,
		FailedStartErrorWorkflowStatus, FailedTimeoutWorkflowStatus,
		FailedCancelledWorkflowStatus, FailedUploadWorkflowStatus,
		FailedDownloadWorkflowStatus, FailedNodeLostWorkflowStatus,
	}
}

// IsFailure reports whether the status is one of the failure subtypes.
func (s WorkflowStatus) IsFailure() bool {
	switch s {
	case FailedWorkflowStatus, FailedOOMWorkflowStatus, FailedEvictedWorkflowStatus,
		FailedImagePullWorkflowStatus, FailedCrashLoopWorkflowStatus,
		FailedPreemptedWorkflowStatus, FailedStartErrorWorkflowStatus,
		FailedTimeoutWorkflowStatus, FailedCancelledWorkflowStatus,
		FailedUploadWorkflowStatus, FailedDownloadWorkflowStatus,
		FailedNodeLostWorkflowStatus:
		return true
	}
	return false
}

// IsTerminal reports whether the workflow has stopped executing.
func (s WorkflowStatus) IsTerminal() bool {
	return s == CompletedWorkflowStatus || s.IsFailure()
}

// GroupStatus is the execution state of a task group. It covers the subset of
// the workflow status domain meaningful at group granularity, adds the
// pre-running scheduling states, and adds FAILED_UPSTREAM for groups that
// never ran because something upstream of them failed.
type GroupStatus string

const (
	WaitingGroupStatus      GroupStatus = "WAITING"
	SubmittingGroupStatus   GroupStatus = "SUBMITTING"
	SchedulingGroupStatus   GroupStatus = "SCHEDULING"
	InitializingGroupStatus GroupStatus = "INITIALIZING"
	RunningGroupStatus      GroupStatus = "RUNNING"
	CompletedGroupStatus    GroupStatus = "COMPLETED"

	FailedGroupStatus           GroupStatus = "FAILED"
	FailedOOMGroupStatus        GroupStatus = "FAILED_OOM"
	FailedEvictedGroupStatus    GroupStatus = "FAILED_EVICTED"
	FailedImagePullGroupStatus  GroupStatus = "FAILED_IMAGE_PULL"
	FailedCrashLoopGroupStatus  GroupStatus = "FAILED_CRASH_LOOP"
	FailedPreemptedGroupStatus  GroupStatus = "FAILED_PREEMPTED"
	FailedStartErrorGroupStatus GroupStatus = "FAILED_START_ERROR"
	FailedCancelledGroupStatus  GroupStatus = "FAILED_CANCELLED"
	FailedUploadGroupStatus     GroupStatus = "FAILED_UPLOAD"
	FailedDownloadGroupStatus   GroupStatus = "FAILED_DOWNLOAD"
	FailedUpstreamGroupStatus   GroupStatus = "FAILED_UPSTREAM"
)

// IsFailure reports whether the group carries a failure status.
// FAILED_UPSTREAM counts: a group poisoned by an upstream failure is part of
// the failed set for downstream propagation.
func (s GroupStatus) IsFailure() bool {
	switch s {
	case FailedGroupStatus, FailedOOMGroupStatus, FailedEvictedGroupStatus,
		FailedImagePullGroupStatus, FailedCrashLoopGroupStatus,
		FailedPreemptedGroupStatus, FailedStartErrorGroupStatus,
		FailedCancelledGroupStatus, FailedUploadGroupStatus,
		FailedDownloadGroupStatus, FailedUpstreamGroupStatus:
		return true
	}
	return false
}

// IsTerminal reports whether the group has stopped executing.
func (s GroupStatus) IsTerminal() bool {
	return s == CompletedGroupStatus || s.IsFailure()
}

// TaskStatus mirrors the group status domain; tasks carry their own copy so
// that the two can diverge where the group status is ambiguous (retries,
// partially completed groups).
type TaskStatus string

const (
	WaitingTaskStatus      TaskStatus = "WAITING"
	SubmittingTaskStatus   TaskStatus = "SUBMITTING"
	SchedulingTaskStatus   TaskStatus = "SCHEDULING"
	InitializingTaskStatus TaskStatus = "INITIALIZING"
	RunningTaskStatus      TaskStatus = "RUNNING"
	CompletedTaskStatus    TaskStatus = "COMPLETED"
	FailedTaskStatus       TaskStatus = "FAILED"
)

// IsTerminal reports whether the task has stopped executing.
func (s TaskStatus) IsTerminal() bool {
	return s == CompletedTaskStatus || s.IsFailure()
}

// IsFailure reports whether the task status is failure-classed.
func (s TaskStatus) IsFailure() bool {
	return GroupStatus(s).IsFailure()
}
