package service_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
	"github.com/NVIDIA/OSMO-sub000/pkg/service"
)

type logger struct{}

func (l logger) Infof(format string, args ...interface{}) {
	// no-op
}

func (l logger) Warnf(format string, args ...interface{}) {
	// no-op
}

func (l logger) Errorf(format string, args ...interface{}) {
	// no-op
}

// recordingLogger captures warnings for assertions on fallback paths.
type recordingLogger struct {
	logger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func newMockService() *service.MockService {
	return service.NewMockService(gen.DefaultConfig(), logger{})
}

func TestMockServiceConfig(t *testing.T) {
	t.Run("SettersClampNegatives", func(t *testing.T) {
		svc := newMockService()
		svc.SetWorkflowTotal(-5)
		assert.Equal(t, 0, svc.WorkflowTotal())

		page := svc.Workflows(0, 10)
		assert.Equal(t, 0, page.Total)
		assert.Len(t, page.Entries, 0)
	})

	t.Run("TotalsApplyImmediately", func(t *testing.T) {
		svc := newMockService()
		svc.SetWorkflowTotal(42)
		assert.Equal(t, 42, svc.Workflows(0, 10).Total)

		svc.SetPoolTotal(3)
		assert.Equal(t, 3, svc.Pools(0, 10).Total)
		svc.SetBucketTotal(2)
		assert.Equal(t, 2, svc.Buckets(0, 10).Total)
		svc.SetDatasetTotal(5)
		assert.Equal(t, 5, svc.Datasets(0, 10).Total)
		svc.SetResourceGlobalTotal(7)
		assert.Equal(t, 7, svc.Resources(0, 10).Total)
		svc.SetResourcePerPoolTotal(4)
		assert.Equal(t, 4, svc.PoolResources("pool-a100-00", 0, 10).Total)
	})

	t.Run("WorkflowIdentitySurvivesTotalChange", func(t *testing.T) {
		// The total bounds the id space; it does not participate in any
		// entity's bytes.
		svc := newMockService()
		before := svc.Workflow(3)
		svc.SetWorkflowTotal(100000)
		assert.Equal(t, before, svc.Workflow(3))
	})

	t.Run("SeedChangesEntities", func(t *testing.T) {
		svc := newMockService()
		before := svc.Workflow(0)
		svc.SetSeed(999)
		assert.Equal(t, int64(999), svc.Seed())
		assert.NotEqual(t, before, svc.Workflow(0))
	})

	t.Run("BaseTimeShiftsAnchors", func(t *testing.T) {
		svc := newMockService()
		anchor := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		svc.SetBaseTime(anchor)
		assert.Equal(t, anchor, svc.BaseTime())

		wf := svc.Workflow(0)
		assert.True(t, wf.SubmitTime.Before(anchor))
	})
}

func TestMockServiceWorkflows(t *testing.T) {
	svc := newMockService()

	t.Run("PageMatchesPointLookups", func(t *testing.T) {
		page := svc.Workflows(10, 5)
		assert.Len(t, page.Entries, 5)
		for k, entry := range page.Entries {
			assert.Equal(t, svc.Workflow(10+k), entry)
		}
	})

	t.Run("ByNameRoundTrip", func(t *testing.T) {
		wf := svc.Workflow(17)
		assert.Equal(t, wf, svc.WorkflowByName(wf.Name))
	})

	t.Run("AtRespectsBounds", func(t *testing.T) {
		_, ok := svc.WorkflowAt(svc.WorkflowTotal())
		assert.False(t, ok)
		got, ok := svc.WorkflowAt(0)
		assert.True(t, ok)
		assert.Equal(t, svc.Workflow(0), got)
	})
}

func TestMockServiceInventory(t *testing.T) {
	svc := newMockService()

	t.Run("PoolRoundTrip", func(t *testing.T) {
		page := svc.Pools(0, 3)
		assert.Len(t, page.Entries, 3)
		for _, p := range page.Entries {
			assert.Equal(t, p, svc.PoolByName(p.Name))
		}
	})

	t.Run("PoolResourcesInheritPoolName", func(t *testing.T) {
		page := svc.PoolResources("pool-h100-01", 0, 5)
		for _, r := range page.Entries {
			assert.Equal(t, "pool-h100-01", r.Pool)
		}
	})

	t.Run("ProfileIsStable", func(t *testing.T) {
		assert.Equal(t, svc.Profile(), svc.Profile())
		assert.NotEmpty(t, svc.Profile().Username)
	})
}

func TestMockServiceLogs(t *testing.T) {
	t.Run("UnknownScenarioFallsBackWithWarning", func(t *testing.T) {
		rec := &recordingLogger{}
		svc := service.NewMockService(gen.DefaultConfig(), rec)

		name := svc.Workflow(0).Name
		fallback := svc.WorkflowLogs(name, "definitely-not-a-scenario", nil)
		assert.Equal(t, svc.WorkflowLogs(name, "default", nil), fallback)
		assert.Len(t, rec.warns, 1)
		assert.Contains(t, rec.warns[0], "definitely-not-a-scenario")
	})

	t.Run("EmptyScenarioKeyIsSilent", func(t *testing.T) {
		rec := &recordingLogger{}
		svc := service.NewMockService(gen.DefaultConfig(), rec)
		svc.WorkflowLogs(svc.Workflow(0).Name, "", nil)
		assert.Empty(t, rec.warns)
	})

	t.Run("EmptyTaskFilterExpandsToAllTasks", func(t *testing.T) {
		svc := newMockService()
		wf := svc.Workflow(0)
		out := svc.WorkflowLogs(wf.Name, "default", nil)
		assert.NotEmpty(t, out)
		// Lines attribute to real task names of the workflow, not synthesized
		// placeholders.
		assert.NotContains(t, out, wf.Name+"-task-")
	})

	t.Run("ScenariosEnumerates", func(t *testing.T) {
		svc := newMockService()
		assert.Contains(t, svc.Scenarios(), "default")
		assert.Contains(t, svc.Scenarios(), "quiet")
	})

	t.Run("StreamMatchesGenerate", func(t *testing.T) {
		svc := newMockService()
		name := svc.Workflow(5).Name

		stream := svc.StreamLogs(name, "default", nil)
		defer stream.Close()
		var joined string
		for {
			chunk, ok := stream.Next()
			if !ok {
				break
			}
			joined += chunk
		}
		assert.Equal(t, svc.WorkflowLogs(name, "default", nil), joined)
	})
}

func TestMockServiceEvents(t *testing.T) {
	svc := newMockService()

	t.Run("WorkflowEvents", func(t *testing.T) {
		wf := svc.Workflow(0)
		evs := svc.WorkflowEvents(wf.Name)
		assert.NotEmpty(t, evs)
		for i := 1; i < len(evs); i++ {
			assert.False(t, evs[i].FirstTimestamp.Before(evs[i-1].FirstTimestamp))
		}
	})

	t.Run("TaskEventsForKnownTask", func(t *testing.T) {
		wf := svc.Workflow(0)
		task := wf.Groups[0].Tasks[0]
		evs := svc.TaskEvents(wf.Name, task.Name)
		assert.NotEmpty(t, evs)
		for _, ev := range evs {
			assert.Equal(t, task.Name, ev.InvolvedObject)
		}
	})

	t.Run("TaskEventsForUnknownTaskSynthesizes", func(t *testing.T) {
		wf := svc.Workflow(0)
		evs := svc.TaskEvents(wf.Name, "ghost-task")
		assert.NotEmpty(t, evs)
		for _, ev := range evs {
			assert.Equal(t, "ghost-task", ev.InvolvedObject)
		}
	})
}

func TestMockServiceConcurrency(t *testing.T) {
	// Reads and reconfiguration may overlap; run under -race this flushes out
	// any unguarded state.
	svc := newMockService()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				svc.Workflows(n*10, 5)
				svc.Workflow(j)
				svc.Pools(0, 3)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			svc.SetWorkflowTotal(1000 + j)
			svc.SetSeed(int64(j))
		}
	}()
	wg.Wait()
}
