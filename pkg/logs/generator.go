package logs

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
)

const timestampLayout = "2006/01/02 15:04:05"

// syntheticWindow is the duration log lines are spread across.
const syntheticWindow = 10 * time.Minute

// Generator synthesizes log output for a workflow. It is addressed by
// workflow name: the RNG is reseeded per (workflow, scenario) pair, so the
// same request always reproduces the same text.
type Generator struct {
	seed int64
	base time.Time
}

// New returns a log generator for the given base seed and time anchor.
func New(seed int64, base time.Time) *Generator {
	return &Generator{seed: seed, base: base}
}

// Generate returns the full joined text for one scenario run. Always finite:
// infinite scenarios are capped at their drawn volume here, only streams run
// unbounded. A zero-volume scenario yields the empty string.
func (g *Generator) Generate(workflow string, sc Scenario, tasks []string) string {
	src := g.newLineSource(workflow, sc, tasks)
	var b strings.Builder
	// Bound on the drawn volume, not on next(): an infinite scenario's source
	// never exhausts itself.
	for src.emitted < src.total {
		line, ok := src.next()
		if !ok {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// lineSource is the shared line producer behind Generate and Stream.
type lineSource struct {
	sc      Scenario
	rng     *rand.Rand
	tasks   []string
	start   time.Time
	spacing time.Duration
	total   int
	emitted int
}

func (g *Generator) newLineSource(workflow string, sc Scenario, tasks []string) *lineSource {
	rng := gen.RNGForName(g.seed, workflow+"/"+sc.Name)

	if len(tasks) == 0 {
		// Caller did not expand task names; synthesize a plausible trio.
		for i := 0; i < 3; i++ {
			tasks = append(tasks, fmt.Sprintf("%s-task-%d", workflow, i))
		}
	}

	total := sc.VolumeMin
	if sc.VolumeMax > sc.VolumeMin {
		total = sc.VolumeMin + rng.Intn(sc.VolumeMax-sc.VolumeMin+1)
	}

	spacing := time.Duration(0)
	if total > 0 {
		spacing = syntheticWindow / time.Duration(total)
	}
	if sc.Features.Infinite {
		spacing = 500 * time.Millisecond
	}

	return &lineSource{
		sc:      sc,
		rng:     rng,
		tasks:   tasks,
		start:   g.base.Add(-syntheticWindow),
		spacing: spacing,
		total:   total,
	}
}

// next produces one line. Draw order per line: timestamp jitter, task, retry,
// level, io, message fill, multiline expansion.
func (s *lineSource) next() (string, bool) {
	if !s.sc.Features.Infinite && s.emitted >= s.total {
		return "", false
	}
	i := s.emitted
	s.emitted++

	ts := s.start.Add(time.Duration(i) * s.spacing)
	ts = ts.Add(time.Duration(s.rng.Int63n(int64(time.Second)))) // jitter

	task := s.tasks[s.rng.Intn(len(s.tasks))]
	retry := 0
	if s.sc.Features.Retries && s.rng.Float64() < 0.30 {
		retry = 1 + s.rng.Intn(2)
	}

	level := gen.PickFrom(s.sc.Levels, s.rng)
	io := gen.PickFrom(s.sc.IO, s.rng)
	msg := messageFor(level, io, s.rng)

	if io == IODump {
		// Raw passthrough: no timestamp, no brackets. The exception exists
		// because dump lines represent arbitrary external tool output.
		return msg, true
	}

	if s.sc.Features.Multiline && s.rng.Float64() < 0.12 {
		msg = msg + "\n" + multilineBlock(s.rng)
	}
	if s.sc.Features.ANSI {
		msg = decorate(level, msg)
	}
	return formatLine(ts, task, retry, io == IOControl, msg), true
}

// formatLine renders the wire format downstream parsers rely on:
//
//	{YYYY/MM/DD HH:mm:ss} [{task}( retry-{n})?]([osmo])? {message}
func formatLine(ts time.Time, task string, retry int, control bool, msg string) string {
	var b strings.Builder
	b.WriteString(ts.Format(timestampLayout))
	b.WriteString(" [")
	b.WriteString(task)
	if retry > 0 {
		fmt.Fprintf(&b, " retry-%d", retry)
	}
	b.WriteByte(']')
	if control {
		b.WriteString("[osmo]")
	}
	b.WriteByte(' ')
	b.WriteString(msg)
	return b.String()
}

// Colors are force-enabled: output goes to HTTP responses and files, where
// fatih/color's TTY detection would otherwise strip the codes and break
// determinism between piped and interactive runs.
var (
	colorError = color.New(color.FgRed)
	colorWarn  = color.New(color.FgYellow)
	colorInfo  = color.New(color.FgCyan)
)

func init() {
	colorError.EnableColor()
	colorWarn.EnableColor()
	colorInfo.EnableColor()
}

func decorate(level Level, msg string) string {
	switch level {
	case ErrorLevel:
		return colorError.Sprint(msg)
	case WarnLevel:
		return colorWarn.Sprint(msg)
	default:
		return colorInfo.Sprint(msg)
	}
}
