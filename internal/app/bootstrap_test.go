package app

import (
	"testing"

	"github.com/bgsport/backoffice/internal/config"

	"github.com/gin-gonic/gin"
)

func newBootstrapConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		Reminder: config.ReminderConfig{Enabled: true, IntervalSeconds: 60, BatchSize: 10},
		Metrics:  config.MetricsConfig{Enabled: false, Path: "/metrics"},
	}
}

func serviceNames(r *Runner) []string {
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, svc.Name())
	}
	return names
}

func TestBuildRunnerModes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		mode string
		want []string
	}{
		{name: "api only", mode: ModeAPI, want: []string{"http"}},
		{name: "all without queue runs reminder inline", mode: ModeAll, want: []string{"http", "reminder"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner, err := BuildRunner(newBootstrapConfig(), tc.mode)
			if err != nil {
				t.Fatalf("build runner failed: %v", err)
			}
			got := serviceNames(runner)
			if len(got) != len(tc.want) {
				t.Fatalf("services want %v got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("services want %v got %v", tc.want, got)
				}
			}
		})
	}
}

func TestBuildRunnerWorkerRequiresQueue(t *testing.T) {
	if _, err := BuildRunner(newBootstrapConfig(), ModeWorker); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
}

func TestBuildRunnerNilConfig(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
}
