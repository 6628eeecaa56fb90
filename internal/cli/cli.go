package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	internal_http "github.com/NVIDIA/OSMO-sub000/internal/http"
	"github.com/NVIDIA/OSMO-sub000/internal/log"
	"github.com/NVIDIA/OSMO-sub000/pkg/gen"
	"github.com/NVIDIA/OSMO-sub000/pkg/service"
)

// SetupCLI attaches every osmomock subcommand to the root command.
func SetupCLI(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock API server",
		Run: func(cmd *cobra.Command, args []string) {
			svc := newService()
			port := viper.GetString("port")
			if flagPort, err := cmd.Flags().GetString("port"); err == nil && flagPort != "" {
				port = flagPort
			}
			if err := internal_http.StartServer(port, svc); err != nil {
				log.GetLogger().Errorf("Server failed: %v", err)
				os.Exit(1)
			}
		},
	}
	serveCmd.Flags().String("port", "", "port to listen on (default from config)")

	generateCmd := &cobra.Command{
		Use:   "generate [index|name]",
		Short: "Generate one workflow and print it as JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc := newService()
			var out interface{}
			if index, err := strconv.Atoi(args[0]); err == nil {
				out = svc.Workflow(index)
			} else {
				out = svc.WorkflowByName(args[0])
			}
			printJSON(out)
		},
	}

	logsCmd := &cobra.Command{
		Use:   "logs [workflow]",
		Short: "Generate logs for a workflow",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc := newService()
			scenario, _ := cmd.Flags().GetString("scenario")
			follow, _ := cmd.Flags().GetBool("follow")
			if !follow {
				fmt.Print(svc.WorkflowLogs(args[0], scenario, nil))
				return
			}
			stream := svc.StreamLogs(args[0], scenario, nil)
			defer stream.Close()
			for {
				chunk, ok := stream.Next()
				if !ok {
					return
				}
				fmt.Print(chunk)
			}
		},
	}
	logsCmd.Flags().String("scenario", "", "log scenario key (see 'scenarios')")
	logsCmd.Flags().Bool("follow", false, "stream logs with scenario pacing")

	eventsCmd := &cobra.Command{
		Use:   "events [workflow]",
		Short: "Generate the event timeline for a workflow",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc := newService()
			printJSON(svc.WorkflowEvents(args[0]))
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the available log scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			svc := newService()
			for _, name := range svc.Scenarios() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(serveCmd, generateCmd, logsCmd, eventsCmd, scenariosCmd)
}

// newService builds a MockService from the layered config: .env file, then
// OSMOMOCK_* environment, then defaults.
func newService() *service.MockService {
	loadConfig()
	cfg := gen.DefaultConfig()
	cfg.Seed = viper.GetInt64("seed")
	cfg.WorkflowTotal = viper.GetInt("workflow_total")
	cfg.PoolTotal = viper.GetInt("pool_total")
	cfg.ResourcePerPoolTotal = viper.GetInt("resource_per_pool_total")
	cfg.ResourceGlobalTotal = viper.GetInt("resource_global_total")
	cfg.BucketTotal = viper.GetInt("bucket_total")
	cfg.DatasetTotal = viper.GetInt("dataset_total")
	if base := viper.GetString("base_time"); base != "" {
		t, err := time.Parse(time.RFC3339, base)
		if err != nil {
			log.GetLogger().Warnf("Ignoring unparseable base_time '%s': %v", base, err)
		} else {
			cfg.BaseTime = t
		}
	}
	return service.NewMockService(cfg, log.GetLogger())
}

func loadConfig() {
	if err := godotenv.Load(); err != nil {
		log.GetLogger().Debugf("No .env file loaded: %v", err)
	}
	viper.SetEnvPrefix("OSMOMOCK")
	viper.AutomaticEnv()

	defaults := gen.DefaultConfig()
	viper.SetDefault("port", "8085")
	viper.SetDefault("seed", defaults.Seed)
	viper.SetDefault("workflow_total", defaults.WorkflowTotal)
	viper.SetDefault("pool_total", defaults.PoolTotal)
	viper.SetDefault("resource_per_pool_total", defaults.ResourcePerPoolTotal)
	viper.SetDefault("resource_global_total", defaults.ResourceGlobalTotal)
	viper.SetDefault("bucket_total", defaults.BucketTotal)
	viper.SetDefault("dataset_total", defaults.DatasetTotal)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.GetLogger().Errorf("Failed to encode output: %v", err)
		os.Exit(1)
	}
}
