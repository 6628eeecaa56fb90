package gen

import (
	"math/rand"

	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// groupTopo is a group's position in the workflow DAG before any statuses are
// assigned: its name and the indices of the groups it depends on.
type groupTopo struct {
	name     string
	upstream []int
}

// failureGroupStatus translates a workflow-level failure subtype into the
// status stamped on the group that caused it. The two enums are almost the
// same, but not exactly:
//
//   - NODE_LOST has no group-level equivalent; from the group's point of view
//     losing its node looks like an eviction.
//   - TIMEOUT is a workflow-scoped deadline, so the group that was cut off
//     carries the generic FAILED.
var failureGroupStatus = map[models.WorkflowStatus]models.GroupStatus{
	models.FailedWorkflowStatus:           models.FailedGroupStatus,
	models.FailedOOMWorkflowStatus:        models.FailedOOMGroupStatus,
	models.FailedEvictedWorkflowStatus:    models.FailedEvictedGroupStatus,
	models.FailedImagePullWorkflowStatus:  models.FailedImagePullGroupStatus,
	models.FailedCrashLoopWorkflowStatus:  models.FailedCrashLoopGroupStatus,
	models.FailedPreemptedWorkflowStatus:  models.FailedPreemptedGroupStatus,
	models.FailedStartErrorWorkflowStatus: models.FailedStartErrorGroupStatus,
	models.FailedTimeoutWorkflowStatus:    models.FailedGroupStatus,
	models.FailedCancelledWorkflowStatus:  models.FailedCancelledGroupStatus,
	models.FailedUploadWorkflowStatus:     models.FailedUploadGroupStatus,
	models.FailedDownloadWorkflowStatus:   models.FailedDownloadGroupStatus,
	models.FailedNodeLostWorkflowStatus:   models.FailedEvictedGroupStatus,
}

// taskFailureDetail maps a group failure subtype to the exit code and message
// stamped on the task that carried the failure.
var taskFailureDetail = map[models.GroupStatus]struct {
	ExitCode int
	Message  string
}{
	models.FailedGroupStatus:           {1, "process exited with non-zero status"},
	models.FailedOOMGroupStatus:        {137, "container killed: out of memory"},
	models.FailedEvictedGroupStatus:    {137, "pod evicted from node"},
	models.FailedImagePullGroupStatus:  {1, "back-off pulling image"},
	models.FailedCrashLoopGroupStatus:  {1, "container restarting in crash loop"},
	models.FailedPreemptedGroupStatus:  {130, "preempted by higher priority workload"},
	models.FailedStartErrorGroupStatus: {128, "container failed to start"},
	models.FailedCancelledGroupStatus:  {130, "cancelled by user"},
	models.FailedUploadGroupStatus:     {1, "output upload failed"},
	models.FailedDownloadGroupStatus:   {1, "input download failed"},
}

// deriveGroupStatuses assigns a status to every group given the workflow
// status and the DAG. The rules, in order of precedence:
//
//  1. COMPLETED workflow: every group COMPLETED.
//  2. PENDING/WAITING workflow: every group WAITING.
//  3. RUNNING workflow: group 0 COMPLETED, group 1 RUNNING, the rest WAITING
//     (a single-group workflow runs group 0). This is the two-stage baseline
//     policy; it intentionally never advances the running frontier past
//     group 1. See deriveRunningFrontier for the generalized alternative.
//  4. FAILED_* workflow: one draw picks the failure point p; groups before p
//     are COMPLETED, group p carries the translated failure subtype, and
//     every group downstream of a failed group is FAILED_UPSTREAM. Groups
//     after p with no failed ancestry stay WAITING.
//
// Consumes at most one draw from rng (the failure point), and only for
// failure statuses.
func deriveGroupStatuses(ws models.WorkflowStatus, topo []groupTopo, rng *rand.Rand) []models.GroupStatus {
	statuses := make([]models.GroupStatus, len(topo))

	switch {
	case ws == models.CompletedWorkflowStatus:
		for i := range statuses {
			statuses[i] = models.CompletedGroupStatus
		}

	case ws == models.PendingWorkflowStatus || ws == models.WaitingWorkflowStatus:
		for i := range statuses {
			statuses[i] = models.WaitingGroupStatus
		}

	case ws == models.RunningWorkflowStatus:
		for i := range statuses {
			statuses[i] = models.WaitingGroupStatus
		}
		if len(topo) == 1 {
			statuses[0] = models.RunningGroupStatus
		} else {
			statuses[0] = models.CompletedGroupStatus
			statuses[1] = models.RunningGroupStatus
		}

	case ws.IsFailure():
		p := rng.Intn(len(topo))
		failed := make(map[int]bool, len(topo))
		for i := range topo {
			switch {
			case i < p:
				statuses[i] = models.CompletedGroupStatus
			case i == p:
				statuses[i] = failureGroupStatus[ws]
				failed[i] = true
			default:
				statuses[i] = models.WaitingGroupStatus
				for _, up := range topo[i].upstream {
					if failed[up] {
						statuses[i] = models.FailedUpstreamGroupStatus
						failed[i] = true
						break
					}
				}
			}
		}
	}

	return statuses
}

// deriveRunningFrontier is the generalized RUNNING policy: every group whose
// upstream set is fully complete is RUNNING, earlier groups are COMPLETED.
// Completion depth is drawn from rng, so pipelines longer than two stages can
// be mid-flight anywhere. Not wired as the default: switching changes every
// generated workflow, which breaks replay compatibility with existing
// consumers. Kept callable so the swap is a one-line change plus a golden
// refresh.
func deriveRunningFrontier(topo []groupTopo, rng *rand.Rand) []models.GroupStatus {
	statuses := make([]models.GroupStatus, len(topo))
	depth := rng.Intn(len(topo))
	for i := range topo {
		switch {
		case i < depth:
			statuses[i] = models.CompletedGroupStatus
		default:
			statuses[i] = models.WaitingGroupStatus
			ready := true
			for _, up := range topo[i].upstream {
				if statuses[up] != models.CompletedGroupStatus {
					ready = false
					break
				}
			}
			if ready {
				statuses[i] = models.RunningGroupStatus
			}
		}
	}
	return statuses
}

// taskStatusesFor expands a group status into per-task statuses. The common
// path mirrors the group; a RUNNING group always has its first task RUNNING
// and a failed group always has exactly one task carrying the failure.
// Consumes one draw per task beyond the first for RUNNING groups.
func taskStatusesFor(gs models.GroupStatus, n int, rng *rand.Rand) []models.TaskStatus {
	statuses := make([]models.TaskStatus, n)

	switch {
	case gs == models.RunningGroupStatus:
		statuses[0] = models.RunningTaskStatus
		for i := 1; i < n; i++ {
			statuses[i] = PickFrom(runningGroupTaskDist, rng)
		}
	case gs == models.FailedUpstreamGroupStatus:
		// Never started; tasks sit where the group sits.
		for i := range statuses {
			statuses[i] = models.WaitingTaskStatus
		}
	case gs.IsFailure():
		for i := range statuses {
			statuses[i] = models.CompletedTaskStatus
		}
		statuses[n-1] = models.TaskStatus(gs)
	default:
		for i := range statuses {
			statuses[i] = models.TaskStatus(gs)
		}
	}

	return statuses
}

var runningGroupTaskDist = Dist[models.TaskStatus]{
	{models.CompletedTaskStatus, 0.40},
	{models.RunningTaskStatus, 0.45},
	{models.InitializingTaskStatus, 0.15},
}
