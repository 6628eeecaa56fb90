// Package service is the facade the HTTP and CLI layers talk to. It owns the
// only mutable state in the subsystem, the configuration knobs, behind a
// single lock, and hands an immutable snapshot to the stateless generators on
// every call. Generation itself is total: no operation here returns an error
// for any valid input.
package service

import (
	"sync"
	"time"

	"github.com/NVIDIA/OSMO-sub000/pkg/events"
	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
	"github.com/NVIDIA/OSMO-sub000/pkg/logs"
	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// Logger defines the logging interface for MockService
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// MockService serves synthesized entities for one configured universe.
type MockService struct {
	mu     sync.RWMutex
	cfg    gen.Config
	logger Logger
}

// NewMockService returns a service over the given starting configuration.
func NewMockService(cfg gen.Config, logger Logger) *MockService {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = gen.DefaultMaxPageSize
	}
	return &MockService{cfg: cfg, logger: logger}
}

// snapshot copies the live config under the read lock. Everything downstream
// of the copy is pure, so calls can safely overlap.
func (s *MockService) snapshot() gen.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *MockService) gen() *gen.Generator {
	return gen.New(s.snapshot())
}

// Config returns the current configuration snapshot.
func (s *MockService) Config() gen.Config {
	return s.snapshot()
}

// Total-count knobs: one paired setter/getter per entity space. Setters clamp
// negatives to zero rather than rejecting them.

func clampTotal(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (s *MockService) SetWorkflowTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.WorkflowTotal = clampTotal(n)
	s.logger.Infof("Set workflow total to %d", s.cfg.WorkflowTotal)
}

func (s *MockService) WorkflowTotal() int {
	return s.snapshot().WorkflowTotal
}

func (s *MockService) SetPoolTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.PoolTotal = clampTotal(n)
	s.logger.Infof("Set pool total to %d", s.cfg.PoolTotal)
}

func (s *MockService) PoolTotal() int {
	return s.snapshot().PoolTotal
}

func (s *MockService) SetResourcePerPoolTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.ResourcePerPoolTotal = clampTotal(n)
	s.logger.Infof("Set resource-per-pool total to %d", s.cfg.ResourcePerPoolTotal)
}

func (s *MockService) ResourcePerPoolTotal() int {
	return s.snapshot().ResourcePerPoolTotal
}

func (s *MockService) SetResourceGlobalTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.ResourceGlobalTotal = clampTotal(n)
	s.logger.Infof("Set resource-global total to %d", s.cfg.ResourceGlobalTotal)
}

func (s *MockService) ResourceGlobalTotal() int {
	return s.snapshot().ResourceGlobalTotal
}

func (s *MockService) SetBucketTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BucketTotal = clampTotal(n)
	s.logger.Infof("Set bucket total to %d", s.cfg.BucketTotal)
}

func (s *MockService) BucketTotal() int {
	return s.snapshot().BucketTotal
}

func (s *MockService) SetDatasetTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.DatasetTotal = clampTotal(n)
	s.logger.Infof("Set dataset total to %d", s.cfg.DatasetTotal)
}

func (s *MockService) DatasetTotal() int {
	return s.snapshot().DatasetTotal
}

func (s *MockService) SetSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Seed = seed
	s.logger.Infof("Set base seed to %d", seed)
}

func (s *MockService) Seed() int64 {
	return s.snapshot().Seed
}

func (s *MockService) SetBaseTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BaseTime = t
}

func (s *MockService) BaseTime() time.Time {
	return s.snapshot().BaseTime
}

// Workflow operations.

func (s *MockService) Workflow(index int) models.Workflow {
	return s.gen().Workflow(index)
}

func (s *MockService) WorkflowAt(index int) (models.Workflow, bool) {
	return s.gen().WorkflowAt(index)
}

func (s *MockService) Workflows(offset, limit int) gen.Page[models.Workflow] {
	return s.gen().WorkflowPage(offset, limit)
}

func (s *MockService) WorkflowByName(name string) models.Workflow {
	return s.gen().WorkflowByName(name)
}

// Inventory operations.

func (s *MockService) Pools(offset, limit int) gen.Page[models.Pool] {
	return s.gen().PoolPage(offset, limit)
}

func (s *MockService) PoolByName(name string) models.Pool {
	return s.gen().PoolByName(name)
}

func (s *MockService) Resources(offset, limit int) gen.Page[models.Resource] {
	return s.gen().ResourcePage(offset, limit)
}

func (s *MockService) PoolResources(pool string, offset, limit int) gen.Page[models.Resource] {
	return s.gen().PoolResourcePage(pool, offset, limit)
}

func (s *MockService) Datasets(offset, limit int) gen.Page[models.Dataset] {
	return s.gen().DatasetPage(offset, limit)
}

func (s *MockService) DatasetByName(name string) models.Dataset {
	return s.gen().DatasetByName(name)
}

func (s *MockService) Buckets(offset, limit int) gen.Page[models.Bucket] {
	return s.gen().BucketPage(offset, limit)
}

func (s *MockService) BucketByName(name string) models.Bucket {
	return s.gen().BucketByName(name)
}

func (s *MockService) Profile() models.Profile {
	return s.gen().Profile()
}

// Log and event operations.

// Scenarios enumerates the closed scenario set.
func (s *MockService) Scenarios() []string {
	return logs.Names()
}

// resolveScenario looks up the key, falling back to the default scenario for
// unknown keys with a non-fatal warning.
func (s *MockService) resolveScenario(name string) logs.Scenario {
	sc, ok := logs.Lookup(name)
	if !ok && name != "" {
		s.logger.Warnf("Unknown log scenario '%s', falling back to '%s'", name, logs.DefaultScenarioName)
	}
	return sc
}

// taskNamesOf expands a workflow into the task names log lines attribute to.
func taskNamesOf(wf models.Workflow) []string {
	var names []string
	for _, grp := range wf.Groups {
		for _, t := range grp.Tasks {
			names = append(names, t.Name)
		}
	}
	return names
}

// WorkflowLogs returns the finite joined log text for one workflow under one
// scenario. An empty task list means "all tasks of the workflow".
func (s *MockService) WorkflowLogs(workflowName, scenarioName string, tasks []string) string {
	cfg := s.snapshot()
	sc := s.resolveScenario(scenarioName)
	if len(tasks) == 0 {
		tasks = taskNamesOf(gen.New(cfg).WorkflowByName(workflowName))
	}
	return logs.New(cfg.Seed, cfg.BaseTime).Generate(workflowName, sc, tasks)
}

// StreamLogs starts a lazy log stream; the caller owns Close.
func (s *MockService) StreamLogs(workflowName, scenarioName string, tasks []string) *logs.Stream {
	cfg := s.snapshot()
	sc := s.resolveScenario(scenarioName)
	if len(tasks) == 0 {
		tasks = taskNamesOf(gen.New(cfg).WorkflowByName(workflowName))
	}
	return logs.New(cfg.Seed, cfg.BaseTime).NewStream(workflowName, sc, tasks)
}

// WorkflowEvents synthesizes the merged event timeline for a workflow.
func (s *MockService) WorkflowEvents(workflowName string) []models.GeneratedEvent {
	cfg := s.snapshot()
	wf := gen.New(cfg).WorkflowByName(workflowName)
	return events.New(cfg.Seed).WorkflowEvents(wf)
}

// TaskEvents synthesizes the event sequence for one task of a workflow. An
// unknown task name resolves to a synthesized task under the same name, in
// line with the lookup strategy used everywhere else.
func (s *MockService) TaskEvents(workflowName, taskName string) []models.GeneratedEvent {
	cfg := s.snapshot()
	wf := gen.New(cfg).WorkflowByName(workflowName)
	for _, grp := range wf.Groups {
		for _, t := range grp.Tasks {
			if t.Name == taskName {
				return events.New(cfg.Seed).TaskEvents(wf.Name, t)
			}
		}
	}
	// Unregistered task name: stay self-consistent by borrowing the first
	// generated task and overriding its name.
	task := wf.Groups[0].Tasks[0]
	task.Name = taskName
	return events.New(cfg.Seed).TaskEvents(wf.Name, task)
}
