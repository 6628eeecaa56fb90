// Package events synthesizes kubernetes-style lifecycle event sequences for
// generated tasks and workflows. Sequences are deterministic per (seed,
// workflow, task) and time-ordered: each step advances the clock by a bounded
// random jitter, and a workflow's view merges every task's events into one
// interleaved timeline.
package events

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

const runnerImage = "nvcr.io/osmo/runner:v1.4.2"

// Generator produces event sequences. Stateless; safe for concurrent use.
type Generator struct {
	seed int64
}

// New returns an event generator for the given base seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

// builder accumulates one task's events, advancing a synthetic clock by
// 2-15s of jitter per step so timestamps are strictly increasing.
type builder struct {
	rng    *rand.Rand
	now    time.Time
	object string
	events []models.GeneratedEvent
}

func (b *builder) add(t models.EventType, reason, message, source string) {
	b.now = b.now.Add(2*time.Second + time.Duration(b.rng.Int63n(int64(13*time.Second))))
	b.events = append(b.events, models.GeneratedEvent{
		Type:           t,
		Reason:         reason,
		Message:        message,
		Source:         source,
		InvolvedObject: b.object,
		FirstTimestamp: b.now,
		LastTimestamp:  b.now,
		Count:          1,
	})
}

// addRepeated is for back-off style events that kubernetes collapses into a
// single entry with a count and a later last-seen timestamp.
func (b *builder) addRepeated(t models.EventType, reason, message, source string, count int) {
	b.add(t, reason, message, source)
	ev := &b.events[len(b.events)-1]
	ev.Count = count
	ev.LastTimestamp = ev.FirstTimestamp.Add(time.Duration(count) * (10 * time.Second))
	b.now = ev.LastTimestamp
}

// TaskEvents synthesizes the event sequence for one task of a workflow. The
// sequence always matches the task's derived status: a waiting task has only
// scheduling trouble, a running task stops after Started, a failed task ends
// in the branch for its specific failure subtype.
func (g *Generator) TaskEvents(workflowName string, task models.Task) []models.GeneratedEvent {
	b := &builder{
		rng:    gen.RNGForName(g.seed, workflowName+"/events/"+task.Name),
		now:    task.SubmitTime,
		object: task.Name,
	}

	switch task.Status {
	case models.WaitingTaskStatus, models.SubmittingTaskStatus, models.SchedulingTaskStatus:
		nodes := 8 * (1 + b.rng.Intn(5))
		b.addRepeated(models.WarningEvent, "FailedScheduling",
			fmt.Sprintf("0/%d nodes are available: %d Insufficient nvidia.com/gpu", nodes, nodes),
			"default-scheduler", 1+b.rng.Intn(6))
		return b.events
	}

	b.add(models.NormalEvent, "Scheduled",
		fmt.Sprintf("Successfully assigned osmo/%s to %s", task.PodName, task.NodeName),
		"default-scheduler")
	b.add(models.NormalEvent, "Pulling",
		fmt.Sprintf("Pulling image %q", runnerImage), "kubelet")

	// Image pull failures branch before the container ever exists.
	if models.GroupStatus(task.Status) == models.FailedImagePullGroupStatus {
		b.add(models.WarningEvent, "Failed",
			fmt.Sprintf("Failed to pull image %q: rpc error: code = Unknown desc = Error response from daemon", runnerImage),
			"kubelet")
		b.addRepeated(models.WarningEvent, "BackOff",
			fmt.Sprintf("Back-off pulling image %q", runnerImage), "kubelet", 3+b.rng.Intn(8))
		return b.events
	}

	b.add(models.NormalEvent, "Pulled",
		fmt.Sprintf("Successfully pulled image %q", runnerImage), "kubelet")
	b.add(models.NormalEvent, "Created", "Created container runner", "kubelet")

	if models.GroupStatus(task.Status) == models.FailedStartErrorGroupStatus {
		b.add(models.WarningEvent, "Failed",
			"Error: failed to start container \"runner\": OCI runtime create failed", "kubelet")
		return b.events
	}

	b.add(models.NormalEvent, "Started", "Started container runner", "kubelet")

	switch models.GroupStatus(task.Status) {
	case models.RunningGroupStatus, models.InitializingGroupStatus:
		// Still running: the timeline simply has no terminal entry yet.

	case models.CompletedGroupStatus:
		b.add(models.NormalEvent, "Completed", "Container runner completed successfully", "kubelet")

	case models.FailedOOMGroupStatus:
		b.add(models.WarningEvent, "OOMKilling",
			fmt.Sprintf("Memory cgroup out of memory: Killed process %d (runner)", 10000+b.rng.Intn(50000)),
			"kernel-monitor")

	case models.FailedEvictedGroupStatus:
		b.add(models.WarningEvent, "Evicted",
			"The node was low on resource: memory. Container runner was using more than its request.",
			"kubelet")

	case models.FailedCrashLoopGroupStatus:
		b.addRepeated(models.WarningEvent, "BackOff",
			"Back-off restarting failed container runner", "kubelet", 5+b.rng.Intn(15))

	case models.FailedPreemptedGroupStatus:
		b.add(models.WarningEvent, "Preempted",
			"Preempted by a higher priority workload", "default-scheduler")

	case models.FailedCancelledGroupStatus:
		b.add(models.NormalEvent, "Killing", "Stopping container runner", "kubelet")

	case models.FailedUploadGroupStatus:
		b.add(models.WarningEvent, "UploadFailed",
			"Failed to upload output artifacts to object storage", "osmo-controller")

	case models.FailedDownloadGroupStatus:
		b.add(models.WarningEvent, "DownloadFailed",
			"Failed to download input dataset from object storage", "osmo-controller")

	default:
		if task.Status.IsFailure() {
			exitCode := 1
			if task.ExitCode != nil {
				exitCode = *task.ExitCode
			}
			b.add(models.WarningEvent, "Failed",
				fmt.Sprintf("Container runner exited with code %d", exitCode), "kubelet")
		}
	}

	return b.events
}

// WorkflowEvents merges the event sequences of every task in the workflow,
// plus the workflow's own submission marker, into one timeline sorted by
// first timestamp. Ties break on involved object then reason so the order is
// stable.
func (g *Generator) WorkflowEvents(wf models.Workflow) []models.GeneratedEvent {
	all := []models.GeneratedEvent{{
		Type:           models.NormalEvent,
		Reason:         "Submitted",
		Message:        fmt.Sprintf("Workflow %s submitted to pool %s", wf.Name, wf.Pool),
		Source:         "osmo-controller",
		InvolvedObject: wf.Name,
		FirstTimestamp: wf.SubmitTime,
		LastTimestamp:  wf.SubmitTime,
		Count:          1,
	}}

	for _, grp := range wf.Groups {
		for _, task := range grp.Tasks {
			all = append(all, g.TaskEvents(wf.Name, task)...)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].FirstTimestamp.Equal(all[j].FirstTimestamp) {
			return all[i].FirstTimestamp.Before(all[j].FirstTimestamp)
		}
		if all[i].InvolvedObject != all[j].InvolvedObject {
			return all[i].InvolvedObject < all[j].InvolvedObject
		}
		return all[i].Reason < all[j].Reason
	})
	return all
}
