package gen

import (
	"math/rand"
	"time"

	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// phase is the lifecycle stage an entity has actually reached. Timestamps are
// held here as a tagged variant and projected to the flat optional-field
// model shape at the end of generation, so a queued entity cannot carry an
// end time by construction.
type phase int

const (
	phaseQueued   phase = iota // submitted, nothing placed yet
	phaseRunning               // placed and executing
	phaseTerminal              // finished, successfully or not
)

type lifecycle struct {
	phase       phase
	submit      time.Time
	start       time.Time // valid for phaseRunning and phaseTerminal
	end         time.Time // valid for phaseTerminal
	uploadStart time.Time // valid for phaseTerminal
	uploadEnd   time.Time
}

func phaseForWorkflow(s models.WorkflowStatus) phase {
	switch {
	case s == models.PendingWorkflowStatus || s == models.WaitingWorkflowStatus:
		return phaseQueued
	case s.IsTerminal():
		return phaseTerminal
	default:
		return phaseRunning
	}
}

func phaseForTask(s models.TaskStatus) phase {
	switch {
	case s == models.WaitingTaskStatus || s == models.SubmittingTaskStatus ||
		s == models.SchedulingTaskStatus:
		return phaseQueued
	case s.IsTerminal():
		return phaseTerminal
	default:
		return phaseRunning
	}
}

// lifecycleFor lays out timestamps backwards from the anchor: terminal
// entities ended at the anchor, running entities are mid-run at it, queued
// entities are still waiting at it. Consumes two draws (queue, run) plus two
// for the upload window on terminal lifecycles.
func lifecycleFor(p phase, anchor time.Time, rng *rand.Rand) lifecycle {
	queue := drawDuration(queueBands, rng)
	run := drawDuration(runBands, rng)

	lc := lifecycle{phase: p}
	switch p {
	case phaseQueued:
		lc.submit = anchor.Add(-queue)
	case phaseRunning:
		// Mid-run: half the drawn duration has elapsed.
		elapsed := run / 2
		lc.start = anchor.Add(-elapsed)
		lc.submit = lc.start.Add(-queue)
	case phaseTerminal:
		lc.end = anchor
		lc.start = anchor.Add(-run)
		lc.submit = lc.start.Add(-queue)
		lc.uploadStart = lc.end
		lc.uploadEnd = lc.uploadStart.Add(jitterBetween(rng, 5*time.Second, 90*time.Second))
		jitterBetween(rng, 0, time.Second) // keep draw count at four for all phases
	}
	if p != phaseTerminal {
		// Burn the upload draws so every lifecycle consumes the same number.
		jitterBetween(rng, 5*time.Second, 90*time.Second)
		jitterBetween(rng, 0, time.Second)
	}
	return lc
}

// projectWorkflow copies the variant onto the flat optional fields.
func (lc lifecycle) projectWorkflow(wf *models.Workflow) {
	wf.SubmitTime = lc.submit
	if lc.phase >= phaseRunning {
		start := lc.start
		wf.StartTime = &start
	}
	if lc.phase == phaseTerminal {
		end := lc.end
		wf.EndTime = &end
	}
}

func (lc lifecycle) projectTask(t *models.Task) {
	t.SubmitTime = lc.submit
	if lc.phase >= phaseRunning {
		start := lc.start
		t.StartTime = &start
	}
	if lc.phase == phaseTerminal {
		end := lc.end
		us := lc.uploadStart
		ue := lc.uploadEnd
		t.EndTime = &end
		t.OutputUploadStartTime = &us
		t.OutputUploadEndTime = &ue
	}
}
