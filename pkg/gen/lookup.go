package gen

import (
	"strconv"
	"strings"

	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// nameIndex extracts the trailing numeric id from a generated-style name.
// This is the "hash" that makes lookup exact for registered names; it
// says nothing about whether the rest of the name is genuine, which is why
// every candidate is verified by regenerating and comparing.
func nameIndex(name string) (int, bool) {
	cut := strings.LastIndexByte(name, '-')
	if cut < 0 || cut == len(name)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(name[cut+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SyntheticLookup is the name→entity resolution strategy used throughout the
// engine. Names are not globally invertible, so lookup works by candidates:
//
//  1. Hash the name to a candidate index (the trailing id if the name has
//     one, the FNV hash mod total otherwise), generate that candidate, and
//     if its name matches, this was a registered name and the result is
//     exact.
//  2. Otherwise regenerate using the hash itself as a substitute index and
//     override the name field with the requested name.
//
// Step 2 guarantees a response for any string, and the response still
// satisfies every status invariant, but it is self-consistency, not
// identity preservation. Asking for the same unregistered name twice returns
// the same entity; asking for an unregistered name never returns "not found".
// This is the documented, intentional approximation, not a bug.
func (g *Generator) WorkflowByName(name string) models.Workflow {
	if idx, ok := nameIndex(name); ok {
		wf := g.Workflow(idx)
		if wf.Name == name {
			return wf
		}
	}

	h := hashName(name)
	total := maxInt(1, g.cfg.WorkflowTotal)
	wf := g.Workflow(int(h % uint64(total)))
	if wf.Name == name {
		return wf
	}

	wf = g.Workflow(int(h & 0x7fffffff))
	wf.Name = name
	return wf
}

// WorkflowAt is the page-scoped index lookup: unlike WorkflowByName it does
// signal not-found, because an index past the declared total is a paging bug
// on the caller's side rather than an unregistered name.
func (g *Generator) WorkflowAt(index int) (models.Workflow, bool) {
	if index < 0 || index >= g.cfg.WorkflowTotal {
		return models.Workflow{}, false
	}
	return g.Workflow(index), true
}

// PoolByName, DatasetByName and BucketByName follow the same strategy over
// their own id spaces. Dataset names carry no trailing id, so only the hash
// candidate applies there.
func (g *Generator) PoolByName(name string) models.Pool {
	if idx, ok := nameIndex(name); ok {
		p := g.Pool(idx)
		if p.Name == name {
			return p
		}
	}
	h := hashName(name)
	total := maxInt(1, g.cfg.PoolTotal)
	p := g.Pool(int(h % uint64(total)))
	if p.Name == name {
		return p
	}
	p = g.Pool(int(h & 0x7fffffff))
	p.Name = name
	return p
}

func (g *Generator) DatasetByName(name string) models.Dataset {
	h := hashName(name)
	total := maxInt(1, g.cfg.DatasetTotal)
	d := g.Dataset(int(h % uint64(total)))
	if d.Name == name {
		return d
	}
	d = g.Dataset(int(h & 0x7fffffff))
	d.Name = name
	return d
}

func (g *Generator) BucketByName(name string) models.Bucket {
	if idx, ok := nameIndex(name); ok {
		b := g.Bucket(idx)
		if b.Name == name {
			return b
		}
	}
	h := hashName(name)
	total := maxInt(1, g.cfg.BucketTotal)
	b := g.Bucket(int(h % uint64(total)))
	if b.Name == name {
		return b
	}
	b = g.Bucket(int(h & 0x7fffffff))
	b.Name = name
	return b
}
