package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// testContext builds a parsed Kong context bound to a config path in a
// temp directory.
func testContext(t *testing.T, confPath string) *kong.Context {
	t.Helper()

	var flags struct {
		LogLevel  string `name:"log-level" default:"warn"`
		LogPretty bool   `name:"log-pretty" default:"true" negatable:""`
		Verbose   bool   `name:"verbose"`
	}

	parser, err := kong.New(&flags, kong.Vars{
		ConfigIdentifier: confPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return ktx
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create new config",
		},
		{
			name:  "overwrite existing with force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("old: stale\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail without force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("old: stale\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			ktx := testContext(t, confPath)

			cmd := &Init{Force: tt.force}

			err := cmd.Run(context.Background(), ktx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			// Generated file must parse as YAML and nest grouped flags.
			var doc map[string]any

			if err := yaml.Unmarshal(data, &doc); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			group, ok := doc["log"].(map[string]any)
			if !ok {
				t.Fatalf("log group missing or not a mapping: %v", doc)
			}

			if group["level"] != "warn" {
				t.Errorf("log.level = %v, want warn", group["level"])
			}

			if group["pretty"] != true {
				t.Errorf("log.pretty = %v, want true", group["pretty"])
			}
		})
	}
}

func TestInitBuildConfig_SkipsIgnoredFlags(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "config.yaml")
	ktx := testContext(t, confPath)

	doc := (&Init{}).buildConfig(ktx)

	for _, name := range []string{"help", "version", "force", "var"} {
		if _, ok := doc[name]; ok {
			t.Errorf("ignored flag %q present in generated config", name)
		}
	}

	// Unset booleans still serialize; unset strings do not.
	if doc["verbose"] != false {
		t.Errorf("verbose = %v, want false", doc["verbose"])
	}
}
