package gen_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

func cfgWithSeed(seed int64) gen.Config {
	cfg := gen.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// checkWorkflow asserts every cross-entity invariant one generated workflow
// must satisfy, whatever its status came out as.
func checkWorkflow(t *testing.T, wf models.Workflow) {
	t.Helper()

	assert.NotEmpty(t, wf.Name)
	assert.NotEmpty(t, wf.Priority)
	assert.NotEmpty(t, wf.Pool)
	assert.GreaterOrEqual(t, len(wf.Groups), 1)
	assert.LessOrEqual(t, len(wf.Groups), 4)

	byName := make(map[string]models.Group, len(wf.Groups))
	for _, grp := range wf.Groups {
		byName[grp.Name] = grp
		assert.GreaterOrEqual(t, len(grp.Tasks), 1)
		assert.LessOrEqual(t, len(grp.Tasks), 4)
	}

	switch {
	case wf.Status == models.CompletedWorkflowStatus:
		for _, grp := range wf.Groups {
			assert.Equal(t, models.CompletedGroupStatus, grp.Status)
			for _, task := range grp.Tasks {
				assert.Equal(t, models.CompletedTaskStatus, task.Status)
			}
		}

	case wf.Status == models.PendingWorkflowStatus || wf.Status == models.WaitingWorkflowStatus:
		for _, grp := range wf.Groups {
			assert.Equal(t, models.WaitingGroupStatus, grp.Status)
			for _, task := range grp.Tasks {
				assert.Equal(t, models.WaitingTaskStatus, task.Status)
			}
		}

	case wf.Status == models.RunningWorkflowStatus:
		running := 0
		for _, grp := range wf.Groups {
			if grp.Status != models.RunningGroupStatus {
				continue
			}
			running++
			assert.Equal(t, models.RunningTaskStatus, grp.Tasks[0].Status)
			for _, up := range grp.Upstream {
				assert.Equal(t, models.CompletedGroupStatus, byName[up].Status)
			}
		}
		assert.Equal(t, 1, running, "a running workflow has exactly one running group")

	case wf.Status.IsFailure():
		failed := make(map[string]bool)
		origins := 0
		for _, grp := range wf.Groups {
			if grp.Status.IsFailure() {
				failed[grp.Name] = true
			}
			if grp.Status.IsFailure() && grp.Status != models.FailedUpstreamGroupStatus {
				origins++
				assert.Equal(t, failureStatusFor(wf.Status), grp.Status)

				// Exactly one task carries the failure.
				failedTasks := 0
				for _, task := range grp.Tasks {
					if task.Status.IsFailure() {
						failedTasks++
						assert.NotNil(t, task.ExitCode)
						assert.NotEmpty(t, task.FailureMessage)
					}
				}
				assert.Equal(t, 1, failedTasks)
			}
		}
		assert.Equal(t, 1, origins, "a failed workflow has exactly one failure origin")

		// Poisoning is exact: downstream of a failed group iff FAILED_UPSTREAM.
		for _, grp := range wf.Groups {
			poisoned := false
			for _, up := range grp.Upstream {
				if failed[up] {
					poisoned = true
				}
			}
			if poisoned {
				assert.Equal(t, models.FailedUpstreamGroupStatus, grp.Status)
			}
			if grp.Status == models.FailedUpstreamGroupStatus {
				assert.True(t, poisoned)
				for _, task := range grp.Tasks {
					assert.Equal(t, models.WaitingTaskStatus, task.Status)
				}
			}
		}
	}

	checkWorkflowTimestamps(t, wf)
}

// failureStatusFor mirrors the workflow-to-group failure translation: two
// subtypes collapse, the rest carry over verbatim.
func failureStatusFor(ws models.WorkflowStatus) models.GroupStatus {
	switch ws {
	case models.FailedNodeLostWorkflowStatus:
		return models.FailedEvictedGroupStatus
	case models.FailedTimeoutWorkflowStatus:
		return models.FailedGroupStatus
	default:
		return models.GroupStatus(ws)
	}
}

func checkWorkflowTimestamps(t *testing.T, wf models.Workflow) {
	t.Helper()

	switch {
	case wf.Status == models.PendingWorkflowStatus || wf.Status == models.WaitingWorkflowStatus:
		assert.Nil(t, wf.StartTime)
		assert.Nil(t, wf.EndTime)
	case wf.Status.IsTerminal():
		if assert.NotNil(t, wf.StartTime) && assert.NotNil(t, wf.EndTime) {
			assert.False(t, wf.StartTime.Before(wf.SubmitTime))
			assert.False(t, wf.EndTime.Before(*wf.StartTime))
		}
	default:
		if assert.NotNil(t, wf.StartTime) {
			assert.False(t, wf.StartTime.Before(wf.SubmitTime))
		}
		assert.Nil(t, wf.EndTime)
	}

	for _, grp := range wf.Groups {
		for _, task := range grp.Tasks {
			checkTaskTimestamps(t, task)
		}
	}
}

func checkTaskTimestamps(t *testing.T, task models.Task) {
	t.Helper()

	switch {
	case task.Status == models.WaitingTaskStatus || task.Status == models.SubmittingTaskStatus ||
		task.Status == models.SchedulingTaskStatus:
		assert.Nil(t, task.StartTime)
		assert.Nil(t, task.EndTime)
		assert.Nil(t, task.OutputUploadStartTime)
		assert.Nil(t, task.OutputUploadEndTime)
	case task.Status.IsTerminal():
		if assert.NotNil(t, task.StartTime) && assert.NotNil(t, task.EndTime) {
			assert.False(t, task.StartTime.Before(task.SubmitTime))
			assert.False(t, task.EndTime.Before(*task.StartTime))
		}
		if assert.NotNil(t, task.OutputUploadStartTime) && assert.NotNil(t, task.OutputUploadEndTime) {
			assert.False(t, task.OutputUploadEndTime.Before(*task.OutputUploadStartTime))
		}
	default:
		assert.NotNil(t, task.StartTime)
		assert.Nil(t, task.EndTime)
		assert.Nil(t, task.OutputUploadStartTime)
	}

	if !task.Status.IsFailure() {
		assert.Nil(t, task.ExitCode)
		assert.Empty(t, task.FailureMessage)
		assert.Zero(t, task.RetryID)
	} else {
		assert.GreaterOrEqual(t, task.RetryID, 0)
		assert.Less(t, task.RetryID, 3)
	}

	assert.NotEmpty(t, task.UUID)
	assert.NotEmpty(t, task.PodName)
	assert.NotEmpty(t, task.NodeName)
	assert.Greater(t, task.Resources.CPU, 0)
	assert.Greater(t, task.Resources.MemoryGB, 0)
}

func TestWorkflowDeterminism(t *testing.T) {
	t.Run("IndependentGeneratorsAgree", func(t *testing.T) {
		a := gen.New(cfgWithSeed(12345))
		b := gen.New(cfgWithSeed(12345))
		for i := 0; i < 50; i++ {
			assert.Equal(t, a.Workflow(i), b.Workflow(i))
		}
	})

	t.Run("RepeatCallsAgree", func(t *testing.T) {
		g := gen.New(cfgWithSeed(7))
		first, err := json.Marshal(g.Workflow(13))
		assert.NoError(t, err)
		second, err := json.Marshal(g.Workflow(13))
		assert.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	})

	t.Run("SeedChangesOutput", func(t *testing.T) {
		a := gen.New(cfgWithSeed(1))
		b := gen.New(cfgWithSeed(2))
		var sameStatuses = true
		for i := 0; i < 100; i++ {
			wa, wb := a.Workflow(i), b.Workflow(i)
			assert.Equal(t, wa.Name, wb.Name, "names depend only on the index")
			if wa.Status != wb.Status {
				sameStatuses = false
			}
		}
		assert.False(t, sameStatuses)
	})

	t.Run("NeighbouringIndicesDiffer", func(t *testing.T) {
		g := gen.New(cfgWithSeed(12345))
		assert.NotEqual(t, g.Workflow(0).SubmitTime, g.Workflow(1).SubmitTime)
	})
}

func TestWorkflowInvariants(t *testing.T) {
	for _, seed := range []int64{1, 7, 12345, 987654321} {
		g := gen.New(cfgWithSeed(seed))
		for i := 0; i < 200; i++ {
			checkWorkflow(t, g.Workflow(i))
		}
	}
}

func TestWorkflowStatusCoverage(t *testing.T) {
	// Over a few hundred indices every status in the distribution should show
	// up at least once; the rarest weight is 1%.
	g := gen.New(gen.DefaultConfig())
	seen := make(map[models.WorkflowStatus]bool)
	for i := 0; i < 2000; i++ {
		seen[g.Workflow(i).Status] = true
	}
	for _, s := range models.WorkflowStatuses() {
		assert.True(t, seen[s], "status %s never generated", s)
	}
}

func TestWorkflowPage(t *testing.T) {
	g := gen.New(gen.DefaultConfig())

	t.Run("EntriesMatchPointLookups", func(t *testing.T) {
		page := g.WorkflowPage(37, 9)
		assert.Equal(t, gen.DefaultConfig().WorkflowTotal, page.Total)
		assert.Len(t, page.Entries, 9)
		for k, entry := range page.Entries {
			assert.Equal(t, g.Workflow(37+k), entry)
		}
	})

	t.Run("ClampsNegativeOffset", func(t *testing.T) {
		page := g.WorkflowPage(-5, 3)
		assert.Len(t, page.Entries, 3)
		assert.Equal(t, g.Workflow(0), page.Entries[0])
	})

	t.Run("ClampsPastEnd", func(t *testing.T) {
		cfg := gen.DefaultConfig()
		cfg.WorkflowTotal = 10
		small := gen.New(cfg)

		page := small.WorkflowPage(8, 10)
		assert.Len(t, page.Entries, 2)
		assert.Equal(t, 10, page.Total)

		page = small.WorkflowPage(200, 10)
		assert.NotNil(t, page.Entries)
		assert.Len(t, page.Entries, 0)
	})

	t.Run("ClampsLimitToMaxPageSize", func(t *testing.T) {
		page := g.WorkflowPage(0, 100000)
		assert.Len(t, page.Entries, gen.DefaultMaxPageSize)
	})

	t.Run("ZeroLimit", func(t *testing.T) {
		page := g.WorkflowPage(0, 0)
		assert.NotNil(t, page.Entries)
		assert.Len(t, page.Entries, 0)
	})
}

func TestWorkflowGolden(t *testing.T) {
	g := gen.New(gen.DefaultConfig())
	got, err := json.MarshalIndent(g.Workflow(0), "", "  ")
	assert.NoError(t, err)

	path := filepath.Join("testdata", "workflow_00000.golden.json")
	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(t, os.WriteFile(path, got, 0o644))
		t.Logf("wrote %s; rerun to compare", path)
		return
	}
	assert.NoError(t, err)
	assert.Equal(t, string(want), string(got), "generated bytes drifted from the recorded snapshot")
}
