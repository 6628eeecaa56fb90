package gen

import (
	"fmt"
	"time"

	"github.com/NVIDIA/OSMO-sub000/pkg/models"
)

// Inventory generators: pools, resources, datasets, buckets, and the user
// profile. Same scheme as workflows (reseed per index, fixed draw order),
// just with much less to derive.

func (g *Generator) Pool(index int) models.Pool {
	rng := rngFor(g.cfg.Seed^0x706f6f6c, index) // "pool" namespace
	total := 8 * (1 + rng.Intn(12))
	return models.Pool{
		Name:       poolName(index),
		GPUType:    gpuTypes[index%len(gpuTypes)],
		Region:     regions[rng.Intn(len(regions))],
		TotalNodes: total,
		UsedNodes:  rng.Intn(total + 1),
	}
}

func (g *Generator) PoolPage(offset, limit int) Page[models.Pool] {
	return pageOf(g.cfg.PoolTotal, offset, limit, g.cfg.MaxPageSize, g.Pool)
}

// Resource generates node index within the global resource space; nodes are
// striped across pools round-robin.
func (g *Generator) Resource(index int) models.Resource {
	rng := rngFor(g.cfg.Seed^0x6e6f6465, index) // "node" namespace
	poolIdx := 0
	if g.cfg.PoolTotal > 0 {
		poolIdx = index % g.cfg.PoolTotal
	}
	gpu := gpuTypes[poolIdx%len(gpuTypes)]
	return models.Resource{
		Name:     fmt.Sprintf("node-%s-%03d", gpu, index),
		Pool:     poolName(poolIdx),
		GPUs:     8,
		CPUs:     32 * (1 + rng.Intn(4)),
		MemoryGB: 256 * (1 + rng.Intn(4)),
		Healthy:  rng.Float64() < 0.97,
	}
}

func (g *Generator) ResourcePage(offset, limit int) Page[models.Resource] {
	return pageOf(g.cfg.ResourceGlobalTotal, offset, limit, g.cfg.MaxPageSize, g.Resource)
}

// PoolResourcePage pages the nodes of one pool.
func (g *Generator) PoolResourcePage(pool string, offset, limit int) Page[models.Resource] {
	return pageOf(g.cfg.ResourcePerPoolTotal, offset, limit, g.cfg.MaxPageSize, func(i int) models.Resource {
		r := g.Resource(i)
		r.Pool = pool
		return r
	})
}

var datasetKinds = []string{"frames", "lidar", "telemetry", "annotations", "episodes", "checkpoints"}

func (g *Generator) Dataset(index int) models.Dataset {
	rng := rngFor(g.cfg.Seed^0x64617461, index) // "data" namespace
	kind := datasetKinds[rng.Intn(len(datasetKinds))]
	files := 100 * (1 + rng.Intn(5000))
	return models.Dataset{
		Name:      fmt.Sprintf("%s-%s-v%d", nameNouns[index%len(nameNouns)], kind, 1+rng.Intn(9)),
		SizeBytes: int64(files) * int64(1+rng.Intn(64*1024*1024)),
		Files:     files,
		CreatedAt: g.cfg.BaseTime.Add(-time.Duration(1+rng.Intn(365*24)) * time.Hour),
	}
}

func (g *Generator) DatasetPage(offset, limit int) Page[models.Dataset] {
	return pageOf(g.cfg.DatasetTotal, offset, limit, g.cfg.MaxPageSize, g.Dataset)
}

func (g *Generator) Bucket(index int) models.Bucket {
	rng := rngFor(g.cfg.Seed^0x62756b74, index) // "bukt" namespace
	objects := 1000 * (1 + rng.Intn(900))
	return models.Bucket{
		Name:      fmt.Sprintf("osmo-%s-%02d", nameAdjectives[index%len(nameAdjectives)], index),
		Region:    regions[rng.Intn(len(regions))],
		Objects:   objects,
		SizeBytes: int64(objects) * int64(1+rng.Intn(8*1024*1024)),
	}
}

func (g *Generator) BucketPage(offset, limit int) Page[models.Bucket] {
	return pageOf(g.cfg.BucketTotal, offset, limit, g.cfg.MaxPageSize, g.Bucket)
}

// Profile generates the single mock user. Index-free; it still reseeds so the
// profile varies with the base seed.
func (g *Generator) Profile() models.Profile {
	rng := rngFor(g.cfg.Seed^0x75736572, 0) // "user" namespace
	noun := nameNouns[rng.Intn(len(nameNouns))]
	return models.Profile{
		Username:      "dev-" + noun,
		Email:         "dev-" + noun + "@example.com",
		Org:           "osmo-dev",
		DefaultPool:   poolName(0),
		WorkflowQuota: 100 * (1 + rng.Intn(10)),
		GPUQuota:      64 * (1 + rng.Intn(8)),
	}
}
