package main

import (
	"strings"

	"github.com/spf13/cobra"

	"textgate/internal/config"
)

// splitCSV splits a comma-separated list, trimming spaces and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// serveFlags mirrors config.Config for the serve command.
type serveFlags struct {
	configPath   string
	host         string
	port         int
	modelPath    string
	maxTokens    int
	temperature  float64
	contextSize  int
	threads      int
	lockWait     string
	maxBodyBytes int64
	cors         bool
	corsOrigins  string
	corsMethods  string
	corsHeaders  string
}

func (f *serveFlags) register(cmd *cobra.Command) {
	d := config.Defaults()
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML, JSON or TOML config file")
	fs.StringVar(&f.host, "host", d.Host, "Listen host (env HOST)")
	fs.IntVar(&f.port, "port", d.Port, "Listen port (env PORT)")
	fs.StringVar(&f.modelPath, "model-path", d.ModelPath, "Path to the model asset (env MODEL_PATH)")
	fs.IntVar(&f.maxTokens, "max-tokens", d.MaxTokens, "Maximum tokens generated per request")
	fs.Float64Var(&f.temperature, "temperature", d.Temperature, "Sampling temperature, in (0,2]")
	fs.IntVar(&f.contextSize, "context-size", d.ContextSize, "Model context window in tokens")
	fs.IntVar(&f.threads, "threads", d.Threads, "CPU threads used by the runtime")
	fs.StringVar(&f.lockWait, "lock-wait-timeout", d.LockWaitTimeout, "Max wait for the model lock before 429, e.g. 30s (0 = unbounded)")
	fs.Int64Var(&f.maxBodyBytes, "max-body-bytes", d.MaxBodyBytes, "Maximum request body size in bytes")
	fs.BoolVar(&f.cors, "cors", false, "Enable CORS")
	fs.StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed origins (default *)")
	fs.StringVar(&f.corsMethods, "cors-methods", "", "Comma-separated allowed methods")
	fs.StringVar(&f.corsHeaders, "cors-headers", "", "Comma-separated allowed headers")
}

// apply overlays the flags the user actually set onto cfg.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("model-path") {
		cfg.ModelPath = f.modelPath
	}
	if changed("max-tokens") {
		cfg.MaxTokens = f.maxTokens
	}
	if changed("temperature") {
		cfg.Temperature = f.temperature
	}
	if changed("context-size") {
		cfg.ContextSize = f.contextSize
	}
	if changed("threads") {
		cfg.Threads = f.threads
	}
	if changed("lock-wait-timeout") {
		cfg.LockWaitTimeout = f.lockWait
	}
	if changed("max-body-bytes") {
		cfg.MaxBodyBytes = f.maxBodyBytes
	}
	if changed("cors") {
		cfg.CORS.Enabled = f.cors
	}
	if changed("cors-origins") {
		cfg.CORS.Origins = splitCSV(f.corsOrigins)
	}
	if changed("cors-methods") {
		cfg.CORS.Methods = splitCSV(f.corsMethods)
	}
	if changed("cors-headers") {
		cfg.CORS.Headers = splitCSV(f.corsHeaders)
	}
}

// apply overlays the persistent log flags when set.
func (o *rootOptions) apply(cfg *config.Config) {
	if o.logLevel != "" {
		cfg.LogLevel = strings.ToLower(o.logLevel)
	}
	if o.logFormat != "" {
		cfg.LogFormat = strings.ToLower(o.logFormat)
	}
}
