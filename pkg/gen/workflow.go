package gen

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// Status distribution for generated workflows. Weights sum to 1.0; the bulk
// of the id space completes, a visible slice is live, and the failure tail is
// spread across all twelve subtypes.
var workflowStatusDist = Dist[models.WorkflowStatus]{
	{models.CompletedWorkflowStatus, 0.40},
	{models.RunningWorkflowStatus, 0.20},
	{models.PendingWorkflowStatus, 0.08},
	{models.WaitingWorkflowStatus, 0.05},
	{models.FailedWorkflowStatus, 0.06},
	{models.FailedOOMWorkflowStatus, 0.04},
	{models.FailedEvictedWorkflowStatus, 0.02},
	{models.FailedImagePullWorkflowStatus, 0.03},
	{models.FailedCrashLoopWorkflowStatus, 0.02},
	{models.FailedPreemptedWorkflowStatus, 0.02},
	{models.FailedStartErrorWorkflowStatus, 0.02},
	{models.FailedTimeoutWorkflowStatus, 0.02},
	{models.FailedCancelledWorkflowStatus, 0.02},
	{models.FailedUploadWorkflowStatus, 0.01},
	{models.FailedDownloadWorkflowStatus, 0.01},
	{models.FailedNodeLostWorkflowStatus, 0.02},
}

var priorityDist = Dist[string]{
	{"LOW", 0.20},
	{"NORMAL", 0.50},
	{"HIGH", 0.20},
	{"URGENT", 0.10},
}

var groupCountDist = Dist[int]{
	{1, 0.25},
	{2, 0.35},
	{3, 0.25},
	{4, 0.15},
}

var taskCountDist = Dist[int]{
	{1, 0.45},
	{2, 0.30},
	{3, 0.15},
	{4, 0.10},
}

// Workflow generates the workflow at index. Pure and total: any index yields
// a value satisfying the cross-entity status invariants.
//
// Draw order (fixed, load-bearing): status, priority, pool, workflow
// lifecycle, group count, stage offset, branch draws, failure point, then
// tasks group by group. Nested entities draw from this same stream rather
// than reseeding, so their content depends on generation order.
func (g *Generator) Workflow(index int) models.Workflow {
	rng := rngFor(g.cfg.Seed, index)

	wf := models.Workflow{
		Name:     workflowName(index),
		Status:   PickFrom(workflowStatusDist, rng),
		Priority: PickFrom(priorityDist, rng),
		Pool:     poolName(rng.Intn(maxInt(1, g.cfg.PoolTotal))),
	}

	lc := lifecycleFor(phaseForWorkflow(wf.Status), g.cfg.BaseTime, rng)
	lc.projectWorkflow(&wf)

	topo := drawTopology(rng)
	statuses := deriveGroupStatuses(wf.Status, topo, rng)

	wf.Groups = make([]models.Group, len(topo))
	for i, gt := range topo {
		wf.Groups[i] = g.buildGroup(gt, topo, statuses[i], lc, rng)
	}
	return wf
}

// drawTopology lays out 1-4 groups as a linear chain, with a 25% chance per
// group past the second of attaching to its grandparent instead of its parent
// (a parallel branch). Edges only ever point backwards, so index order is
// topological order.
func drawTopology(rng *rand.Rand) []groupTopo {
	n := PickFrom(groupCountDist, rng)
	offset := rng.Intn(len(stageNames))

	topo := make([]groupTopo, n)
	for i := 0; i < n; i++ {
		topo[i] = groupTopo{name: groupName(i, offset)}
		switch {
		case i == 0:
			// roots have no upstream
		case i >= 2 && rng.Float64() < 0.25:
			topo[i].upstream = []int{i - 2}
		default:
			topo[i].upstream = []int{i - 1}
		}
	}
	return topo
}

func (g *Generator) buildGroup(gt groupTopo, topo []groupTopo, status models.GroupStatus, wfLC lifecycle, rng *rand.Rand) models.Group {
	grp := models.Group{
		Name:   gt.name,
		Status: status,
	}
	for _, up := range gt.upstream {
		grp.Upstream = append(grp.Upstream, topo[up].name)
	}
	for _, other := range topo {
		for _, up := range other.upstream {
			if topo[up].name == gt.name {
				grp.Downstream = append(grp.Downstream, other.name)
			}
		}
	}

	n := PickFrom(taskCountDist, rng)
	taskStatuses := taskStatusesFor(status, n, rng)
	grp.Tasks = make([]models.Task, n)
	for j := range grp.Tasks {
		grp.Tasks[j] = g.buildTask(gt.name, j, taskStatuses[j], wfLC, rng)
	}
	return grp
}

var gpuRequestDist = Dist[int]{
	{0, 0.25},
	{1, 0.40},
	{4, 0.20},
	{8, 0.15},
}

// buildTask fills in one task. Identity draws (uuid, pod, node) come last so
// adding request fields earlier does not shift them.
func (g *Generator) buildTask(group string, j int, status models.TaskStatus, wfLC lifecycle, rng *rand.Rand) models.Task {
	t := models.Task{
		Name:   taskName(group, j),
		Status: status,
	}

	if status.IsFailure() {
		if detail, ok := taskFailureDetail[models.GroupStatus(status)]; ok {
			code := detail.ExitCode
			t.ExitCode = &code
			t.FailureMessage = detail.Message
		}
		// Failed tasks may be on a later attempt.
		t.RetryID = rng.Intn(3)
	}

	t.Resources = models.ResourceRequest{
		GPU:       PickFrom(gpuRequestDist, rng),
		CPU:       4 * (1 + rng.Intn(8)),
		MemoryGB:  16 * (1 + rng.Intn(8)),
		StorageGB: 50 * (1 + rng.Intn(10)),
	}

	// Tasks of a terminal workflow anchor at its end time, everything else at
	// the shared base anchor, so task windows sit inside the workflow window.
	anchor := g.cfg.BaseTime
	if wfLC.phase == phaseTerminal {
		anchor = wfLC.end
	}
	lc := lifecycleFor(phaseForTask(status), anchor, rng)
	lc.projectTask(&t)

	id, _ := uuid.NewRandomFromReader(rng)
	t.UUID = id.String()
	t.PodName = t.Name + "-" + id.String()[:8]
	t.NodeName = nodeName(rng)
	return t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
