package logs

import (
	"fmt"
	"math/rand"
	"strings"
)

// Message templates per level. Placeholders are filled from the scenario's
// RNG stream, one draw per %-verb, left to right.

var infoTemplates = []string{
	"step %d/%d complete, loss=%.4f",
	"checkpoint saved to /mnt/output/ckpt-%05d",
	"loaded %d samples from shard %d",
	"epoch %d finished in %.1fs",
	"validation accuracy %.2f%%",
	"worker %d joined collective, world_size=%d",
	"dataset cache hit ratio %.2f",
	"flushed %d records to sink",
}

var debugTemplates = []string{
	"grad_norm=%.4f lr=%.6f",
	"fetching batch %d (prefetch depth %d)",
	"rpc roundtrip %dms to peer %d",
	"allocator reserved %dMiB, in use %dMiB",
	"watermark advanced to offset %d",
}

var warnTemplates = []string{
	"retrying fetch of shard %d (attempt %d)",
	"step time %.1fs exceeds budget %.1fs",
	"gpu %d memory pressure: %dMiB free",
	"slow heartbeat from worker %d (%dms)",
	"clock skew %dms detected against coordinator",
}

var errorTemplates = []string{
	"failed to read shard %d: connection reset by peer",
	"CUDA error %d: out of memory",
	"worker %d lost, rescheduling partition %d",
	"checkpoint upload failed after %d attempts",
	"NCCL timeout after %dms waiting for rank %d",
}

// Control-plane lines, emitted under the [osmo] tag.
var controlTemplates = []string{
	"uploading artifact bundle (%d files)",
	"heartbeat ok, lease renewed for %ds",
	"staging input dataset shard %d",
	"container image layer %d/%d pulled",
	"credentials rotated for task scope",
}

// Dump lines imitate raw passthrough of external tool output (progress bars
// and friends). They are emitted with no timestamp and no framing.
var dumpTemplates = []string{
	"Downloading: %3d%%|##########| %d/%dMB",
	"Extracting archive: %d/%d entries",
	"#%d [internal] load build context",
	"\rTraining: %3d%% %d/%d [00:0%d<00:00]",
}

func fillTemplate(tpl string, rng *rand.Rand) string {
	args := make([]interface{}, 0, 4)
	for _, verb := range templateVerbs(tpl) {
		switch verb {
		case 'd':
			args = append(args, rng.Intn(1000))
		case 'f':
			args = append(args, rng.Float64()*100)
		case 's':
			args = append(args, "osmo")
		}
	}
	return fmt.Sprintf(tpl, args...)
}

// templateVerbs extracts the terminal verb letters of a format string, in
// order. Only d, f and s occur in the pools above.
func templateVerbs(tpl string) []byte {
	var verbs []byte
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '%' {
			continue
		}
		for j := i + 1; j < len(tpl); j++ {
			c := tpl[j]
			if c == 'd' || c == 'f' || c == 's' {
				verbs = append(verbs, c)
				i = j
				break
			}
			if c == '%' { // literal %%
				i = j
				break
			}
		}
	}
	return verbs
}

// messageFor picks and fills a template: IO class wins over level, because
// control and dump lines have their own vocabulary.
func messageFor(level Level, io IOType, rng *rand.Rand) string {
	var pool []string
	switch {
	case io == IOControl:
		pool = controlTemplates
	case io == IODump:
		pool = dumpTemplates
	case level == DebugLevel:
		pool = debugTemplates
	case level == WarnLevel:
		pool = warnTemplates
	case level == ErrorLevel:
		pool = errorTemplates
	default:
		pool = infoTemplates
	}
	return fillTemplate(pool[rng.Intn(len(pool))], rng)
}

// multilineBlock expands a line into a stack trace or a pretty-printed JSON
// fragment. The first physical line stays framed; these continuation lines
// ride along unframed.
func multilineBlock(rng *rand.Rand) string {
	if rng.Float64() < 0.5 {
		frames := []string{
			"  File \"/opt/osmo/runner/loop.py\", line %d, in step",
			"  File \"/opt/osmo/runner/data.py\", line %d, in next_batch",
			"  File \"/usr/lib/python3.10/site-packages/torch/utils/data/dataloader.py\", line %d, in __next__",
		}
		lines := []string{"Traceback (most recent call last):"}
		for _, f := range frames {
			lines = append(lines, fmt.Sprintf(f, rng.Intn(900)))
		}
		lines = append(lines, "RuntimeError: DataLoader worker exited unexpectedly")
		return strings.Join(lines, "\n")
	}
	return strings.Join([]string{
		"{",
		fmt.Sprintf("  \"step\": %d,", rng.Intn(100000)),
		fmt.Sprintf("  \"loss\": %.4f,", rng.Float64()*10),
		fmt.Sprintf("  \"throughput\": %.1f", rng.Float64()*5000),
		"}",
	}, "\n")
}
