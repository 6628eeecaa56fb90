package models

import "time"

// Pool is a named partition of compute capacity that workflows schedule into.
type Pool struct {
	Name       string `json:"name"`
	GPUType    string `json:"gpu_type"`
	Region     string `json:"region"`
	TotalNodes int    `json:"total_nodes"`
	UsedNodes  int    `json:"used_nodes"`
}

// Resource is a single node inside a pool.
type Resource struct {
	Name     string `json:"name"`
	Pool     string `json:"pool"`
	GPUs     int    `json:"gpus"`
	CPUs     int    `json:"cpus"`
	MemoryGB int    `json:"memory_gb"`
	Healthy  bool   `json:"healthy"`
}

// Dataset is a named input artifact collection.
type Dataset struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	Files     int       `json:"files"`
	CreatedAt time.Time `json:"created_at"`
}

// Bucket is an object-storage location workflows read from and write to.
type Bucket struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Objects   int    `json:"objects"`
	SizeBytes int64  `json:"size_bytes"`
}

// Profile is the calling user's identity and quota view.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Org           string `json:"org"`
	DefaultPool   string `json:"default_pool"`
	WorkflowQuota int    `json:"workflow_quota"`
	GPUQuota      int    `json:"gpu_quota"`
}
