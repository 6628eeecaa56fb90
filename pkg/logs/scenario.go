package logs

import (
	"time"

	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
)

// Level is a synthetic log severity.
type Level string

const (
	DebugLevel Level = "DEBUG"
	InfoLevel  Level = "INFO"
	WarnLevel  Level = "WARN"
	ErrorLevel Level = "ERROR"
)

// IOType classifies where a line pretends to come from. Control lines carry
// the [osmo] tag; dump lines are raw passthrough of external tool output and
// bypass framing entirely.
type IOType string

const (
	IOStdout  IOType = "stdout"
	IOStderr  IOType = "stderr"
	IOControl IOType = "control"
	IODump    IOType = "dump"
)

// Features toggles the optional behaviours of a scenario.
type Features struct {
	Retries     bool          // annotate some lines with retry attempts
	Multiline   bool          // occasionally expand a line into a stack trace / JSON block
	ANSI        bool          // decorate messages with terminal colors
	Infinite    bool          // stream never ends on its own
	StreamDelay time.Duration // per-line pacing for streamed output
}

// Scenario is an immutable bundle of log-generation parameters. It is
// configuration, not an entity: scenarios are compiled in, enumerable, and
// never generated.
type Scenario struct {
	Name      string
	VolumeMin int
	VolumeMax int
	Levels    gen.Dist[Level]
	IO        gen.Dist[IOType]
	Features  Features
}

// DefaultScenarioName is the fallback for unknown scenario keys.
const DefaultScenarioName = "default"

// The closed scenario set. Order is the enumeration order reported to
// clients; the map below indexes the same values by name.
var scenarioList = []Scenario{
	{
		Name:      "default",
		VolumeMin: 30,
		VolumeMax: 80,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.70}, {Value: DebugLevel, Weight: 0.10}, {Value: WarnLevel, Weight: 0.15}, {Value: ErrorLevel, Weight: 0.05},
		},
		IO: gen.Dist[IOType]{{Value: IOStdout, Weight: 0.85}, {Value: IOControl, Weight: 0.15}},
	},
	{
		Name:      "quiet",
		VolumeMin: 0,
		VolumeMax: 0,
		Levels:    gen.Dist[Level]{{Value: InfoLevel, Weight: 1.0}},
		IO:        gen.Dist[IOType]{{Value: IOStdout, Weight: 1.0}},
	},
	{
		Name:      "chatty",
		VolumeMin: 150,
		VolumeMax: 400,
		Levels: gen.Dist[Level]{
			{Value: DebugLevel, Weight: 0.45}, {Value: InfoLevel, Weight: 0.40}, {Value: WarnLevel, Weight: 0.10}, {Value: ErrorLevel, Weight: 0.05},
		},
		IO: gen.Dist[IOType]{{Value: IOStdout, Weight: 0.70}, {Value: IOStderr, Weight: 0.10}, {Value: IOControl, Weight: 0.10}, {Value: IODump, Weight: 0.10}},
	},
	{
		Name:      "error-heavy",
		VolumeMin: 40,
		VolumeMax: 120,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.25}, {Value: WarnLevel, Weight: 0.30}, {Value: ErrorLevel, Weight: 0.35}, {Value: DebugLevel, Weight: 0.10},
		},
		IO: gen.Dist[IOType]{{Value: IOStderr, Weight: 0.60}, {Value: IOStdout, Weight: 0.30}, {Value: IOControl, Weight: 0.10}},
	},
	{
		Name:      "retry-storm",
		VolumeMin: 60,
		VolumeMax: 150,
		Levels: gen.Dist[Level]{
			{Value: WarnLevel, Weight: 0.40}, {Value: ErrorLevel, Weight: 0.25}, {Value: InfoLevel, Weight: 0.35},
		},
		IO:       gen.Dist[IOType]{{Value: IOStdout, Weight: 0.60}, {Value: IOStderr, Weight: 0.40}},
		Features: Features{Retries: true},
	},
	{
		Name:      "multiline",
		VolumeMin: 30,
		VolumeMax: 70,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.50}, {Value: ErrorLevel, Weight: 0.30}, {Value: WarnLevel, Weight: 0.20},
		},
		IO:       gen.Dist[IOType]{{Value: IOStdout, Weight: 0.70}, {Value: IOStderr, Weight: 0.30}},
		Features: Features{Multiline: true},
	},
	{
		Name:      "ansi",
		VolumeMin: 30,
		VolumeMax: 80,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.55}, {Value: WarnLevel, Weight: 0.20}, {Value: ErrorLevel, Weight: 0.15}, {Value: DebugLevel, Weight: 0.10},
		},
		IO:       gen.Dist[IOType]{{Value: IOStdout, Weight: 0.90}, {Value: IOControl, Weight: 0.10}},
		Features: Features{ANSI: true},
	},
	{
		Name:      "stream",
		VolumeMin: 50,
		VolumeMax: 120,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.70}, {Value: DebugLevel, Weight: 0.15}, {Value: WarnLevel, Weight: 0.10}, {Value: ErrorLevel, Weight: 0.05},
		},
		IO:       gen.Dist[IOType]{{Value: IOStdout, Weight: 0.85}, {Value: IOControl, Weight: 0.15}},
		Features: Features{StreamDelay: 200 * time.Millisecond},
	},
	{
		Name:      "firehose",
		VolumeMin: 100,
		VolumeMax: 200,
		Levels: gen.Dist[Level]{
			{Value: InfoLevel, Weight: 0.50}, {Value: DebugLevel, Weight: 0.30}, {Value: WarnLevel, Weight: 0.15}, {Value: ErrorLevel, Weight: 0.05},
		},
		IO:       gen.Dist[IOType]{{Value: IOStdout, Weight: 0.60}, {Value: IOStderr, Weight: 0.10}, {Value: IOControl, Weight: 0.10}, {Value: IODump, Weight: 0.20}},
		Features: Features{Infinite: true, StreamDelay: 100 * time.Millisecond},
	},
}

var scenarioByName = func() map[string]Scenario {
	m := make(map[string]Scenario, len(scenarioList))
	for _, sc := range scenarioList {
		m[sc.Name] = sc
	}
	return m
}()

// Lookup resolves a scenario key. Unknown keys fall back to the default
// scenario with ok=false so the caller can log the miss; lookup itself never
// fails.
func Lookup(name string) (Scenario, bool) {
	if sc, ok := scenarioByName[name]; ok {
		return sc, true
	}
	return scenarioByName[DefaultScenarioName], false
}

// Names enumerates the closed scenario set in registration order.
func Names() []string {
	names := make([]string, len(scenarioList))
	for i, sc := range scenarioList {
		names[i] = sc.Name
	}
	return names
}
