package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/NVIDIA/OSMO-sub000/internal/log"
	"github.com/NVIDIA/OSMO-sub000/pkg/service"
)

// StartServer runs the mock API on the given port.
func StartServer(port string, svc *service.MockService) error {
	log.GetLogger().Infof("Starting osmomock server on :%s", port)
	if err := http.ListenAndServe(":"+port, NewRouter(svc)); err != nil {
		return errors.Wrap(err, "serving mock API")
	}
	return nil
}

// NewRouter wires every mock endpoint. All handlers follow the same error
// policy as the engine: bad numbers clamp, unknown scenario keys fall back,
// unknown names synthesize. Only HTTP-level problems (malformed bodies)
// surface as errors.
func NewRouter(svc *service.MockService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/workflows", listWorkflows(svc)).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{name}", getWorkflow(svc)).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{name}/logs", getWorkflowLogs(svc)).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{name}/logs/stream", streamWorkflowLogs(svc)).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{name}/events", getWorkflowEvents(svc)).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{name}/tasks/{task}/events", getTaskEvents(svc)).Methods(http.MethodGet)

	api.HandleFunc("/pools", listPools(svc)).Methods(http.MethodGet)
	api.HandleFunc("/pools/{name}", getPool(svc)).Methods(http.MethodGet)
	api.HandleFunc("/pools/{name}/resources", listPoolResources(svc)).Methods(http.MethodGet)
	api.HandleFunc("/resources", listResources(svc)).Methods(http.MethodGet)
	api.HandleFunc("/datasets", listDatasets(svc)).Methods(http.MethodGet)
	api.HandleFunc("/datasets/{name}", getDataset(svc)).Methods(http.MethodGet)
	api.HandleFunc("/buckets", listBuckets(svc)).Methods(http.MethodGet)
	api.HandleFunc("/buckets/{name}", getBucket(svc)).Methods(http.MethodGet)
	api.HandleFunc("/profile", getProfile(svc)).Methods(http.MethodGet)

	api.HandleFunc("/scenarios", listScenarios(svc)).Methods(http.MethodGet)
	api.HandleFunc("/config", getConfig(svc)).Methods(http.MethodGet)
	api.HandleFunc("/config", putConfig(svc)).Methods(http.MethodPut)
	return r
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.GetLogger().Errorf("Failed to encode response: %v", err)
	}
}

// queryInt reads an integer query parameter, treating anything unparseable as
// the fallback. Range clamping happens downstream in the engine.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func pageParams(r *http.Request) (offset, limit int) {
	return queryInt(r, "offset", 0), queryInt(r, "limit", 50)
}

func listWorkflows(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.Workflows(offset, limit))
	}
}

func getWorkflow(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.WorkflowByName(mux.Vars(r)["name"]))
	}
}

func getWorkflowLogs(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		scenario := r.URL.Query().Get("scenario")
		tasks := r.URL.Query()["task"]
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(svc.WorkflowLogs(name, scenario, tasks)))
	}
}

func streamWorkflowLogs(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		scenario := r.URL.Query().Get("scenario")
		tasks := r.URL.Query()["task"]

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		stream := svc.StreamLogs(name, scenario, tasks)
		defer stream.Close()

		// Client disconnect cancels the stream; for infinite scenarios this
		// is the only way it ends.
		go func() {
			<-r.Context().Done()
			stream.Close()
		}()

		for {
			chunk, ok := stream.Next()
			if !ok {
				return
			}
			if _, err := w.Write([]byte(chunk)); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func getWorkflowEvents(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.WorkflowEvents(mux.Vars(r)["name"]))
	}
}

func getTaskEvents(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		writeJSON(w, svc.TaskEvents(vars["name"], vars["task"]))
	}
}

func listPools(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.Pools(offset, limit))
	}
}

func getPool(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.PoolByName(mux.Vars(r)["name"]))
	}
}

func listPoolResources(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.PoolResources(mux.Vars(r)["name"], offset, limit))
	}
}

func listResources(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.Resources(offset, limit))
	}
}

func listDatasets(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.Datasets(offset, limit))
	}
}

func getDataset(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.DatasetByName(mux.Vars(r)["name"]))
	}
}

func listBuckets(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)
		writeJSON(w, svc.Buckets(offset, limit))
	}
}

func getBucket(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.BucketByName(mux.Vars(r)["name"]))
	}
}

func getProfile(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Profile())
	}
}

func listScenarios(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string][]string{"scenarios": svc.Scenarios()})
	}
}

// configDTO is the wire shape of the runtime knobs. Pointer fields so a PUT
// can update a subset.
type configDTO struct {
	Seed                 *int64 `json:"seed,omitempty"`
	WorkflowTotal        *int   `json:"workflow_total,omitempty"`
	PoolTotal            *int   `json:"pool_total,omitempty"`
	ResourcePerPoolTotal *int   `json:"resource_per_pool_total,omitempty"`
	ResourceGlobalTotal  *int   `json:"resource_global_total,omitempty"`
	BucketTotal          *int   `json:"bucket_total,omitempty"`
	DatasetTotal         *int   `json:"dataset_total,omitempty"`
}

func getConfig(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := svc.Config()
		writeJSON(w, configDTO{
			Seed:                 &cfg.Seed,
			WorkflowTotal:        &cfg.WorkflowTotal,
			PoolTotal:            &cfg.PoolTotal,
			ResourcePerPoolTotal: &cfg.ResourcePerPoolTotal,
			ResourceGlobalTotal:  &cfg.ResourceGlobalTotal,
			BucketTotal:          &cfg.BucketTotal,
			DatasetTotal:         &cfg.DatasetTotal,
		})
	}
}

func putConfig(svc *service.MockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dto configDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			log.GetLogger().Errorf("Failed to decode config update: %v", err)
			http.Error(w, "invalid config body", http.StatusBadRequest)
			return
		}
		if dto.Seed != nil {
			svc.SetSeed(*dto.Seed)
		}
		if dto.WorkflowTotal != nil {
			svc.SetWorkflowTotal(*dto.WorkflowTotal)
		}
		if dto.PoolTotal != nil {
			svc.SetPoolTotal(*dto.PoolTotal)
		}
		if dto.ResourcePerPoolTotal != nil {
			svc.SetResourcePerPoolTotal(*dto.ResourcePerPoolTotal)
		}
		if dto.ResourceGlobalTotal != nil {
			svc.SetResourceGlobalTotal(*dto.ResourceGlobalTotal)
		}
		if dto.BucketTotal != nil {
			svc.SetBucketTotal(*dto.BucketTotal)
		}
		if dto.DatasetTotal != nil {
			svc.SetDatasetTotal(*dto.DatasetTotal)
		}
		getConfig(svc)(w, r)
	}
}
