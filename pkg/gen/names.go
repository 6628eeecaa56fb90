package gen

import (
	"fmt"
	"math/rand"
)

// Word lists for the workflow naming scheme. Appending is fine; reordering or
// removing entries changes every generated name.
var nameAdjectives = []string{
	"amber", "brisk", "calm", "dapper", "eager", "fuzzy", "gentle", "humble",
	"ivory", "jolly", "keen", "lively", "mellow", "nimble", "opal", "plucky",
	"quiet", "rustic", "sleek", "tidy", "urban", "vivid", "wistful", "zesty",
}

var nameNouns = []string{
	"falcon", "otter", "badger", "condor", "dingo", "egret", "ferret", "gecko",
	"heron", "ibis", "jackal", "kestrel", "lemur", "marmot", "newt", "osprey",
	"puffin", "quokka", "raven", "stoat", "tapir", "urchin", "vole", "wombat",
}

// Stage names for task groups, in rough pipeline order.
var stageNames = []string{
	"ingest", "preprocess", "train", "evaluate", "export", "package",
	"validate", "deploy",
}

// workflowName derives a stable name from the index alone. The numeric suffix
// keeps names unique past the word-list product and doubles as the primary
// lookup candidate (see SyntheticLookup).
func workflowName(index int) string {
	adj := nameAdjectives[index%len(nameAdjectives)]
	noun := nameNouns[(index/len(nameAdjectives))%len(nameNouns)]
	return fmt.Sprintf("%s-%s-%05d", adj, noun, index)
}

// groupName names the i-th group of a workflow. The offset rotates the stage
// vocabulary so not every pipeline reads ingest/preprocess/train.
func groupName(i, offset int) string {
	return fmt.Sprintf("%02d-%s", i, stageNames[(offset+i)%len(stageNames)])
}

func taskName(group string, j int) string {
	return fmt.Sprintf("%s-task-%d", group, j)
}

func poolName(i int) string {
	gpu := gpuTypes[i%len(gpuTypes)]
	return fmt.Sprintf("pool-%s-%02d", gpu, i)
}

var gpuTypes = []string{"a100", "h100", "l40s", "v100", "t4"}

// nodeName draws a plausible node identity. Node assignment is not modeled
// as real placement; it only has to look consistent within one entity.
func nodeName(rng *rand.Rand) string {
	return fmt.Sprintf("node-%s-%03d", gpuTypes[rng.Intn(len(gpuTypes))], rng.Intn(200))
}

var regions = []string{"us-west-2", "us-east-1", "eu-central-1", "ap-south-1"}
