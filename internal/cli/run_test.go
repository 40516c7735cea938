package cli

import (
	"strings"
	"testing"
)

func TestRunOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    RunOptions
		wantErr string
	}{
		{
			name: "prompt only",
			opts: RunOptions{Prompt: "write a haiku"},
		},
		{
			name: "file only",
			opts: RunOptions{File: "conv.yaml"},
		},
		{
			name:    "neither prompt nor file",
			opts:    RunOptions{},
			wantErr: "required",
		},
		{
			name:    "both prompt and file",
			opts:    RunOptions{Prompt: "write a haiku", File: "conv.yaml"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "negative max attempts",
			opts:    RunOptions{Prompt: "write a haiku", MaxAttempts: -1},
			wantErr: "must not be negative",
		},
		{
			name: "zero max attempts defers to config",
			opts: RunOptions{Prompt: "write a haiku", MaxAttempts: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyRunOverrides(t *testing.T) {
	cfg := testConfig()
	applyRunOverrides(cfg, RunOptions{
		MaxAttempts: 5,
		Generator:   "codex",
		Evaluator:   "heuristic",
	})

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if string(cfg.Generator.Type) != "codex" {
		t.Errorf("Generator.Type = %s, want codex", cfg.Generator.Type)
	}
	if string(cfg.Evaluator.Type) != "heuristic" {
		t.Errorf("Evaluator.Type = %s, want heuristic", cfg.Evaluator.Type)
	}
}

func TestApplyRunOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := testConfig()
	before := *cfg

	applyRunOverrides(cfg, RunOptions{})

	if cfg.MaxAttempts != before.MaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, before.MaxAttempts)
	}
	if cfg.Generator.Type != before.Generator.Type {
		t.Errorf("Generator.Type changed to %s", cfg.Generator.Type)
	}
}

func TestBuildConversation_FromPrompt(t *testing.T) {
	conv, err := buildConversation(RunOptions{Prompt: "summarize the report"})
	if err != nil {
		t.Fatalf("buildConversation() error = %v", err)
	}
	if conv.Request() != "summarize the report" {
		t.Errorf("Request() = %q", conv.Request())
	}
	if conv.Len() != 1 {
		t.Errorf("Len() = %d, want 1", conv.Len())
	}
}

func TestBuildRoles_Heuristic(t *testing.T) {
	cfg := testConfig()
	cfg.Evaluator.Type = "heuristic"

	gen, eval, err := buildRoles(cfg, "run-1", nil)
	if err != nil {
		t.Fatalf("buildRoles() error = %v", err)
	}
	if gen == nil || eval == nil {
		t.Fatal("expected both roles to be constructed")
	}
}

func TestBuildRoles_UnknownGenerator(t *testing.T) {
	cfg := testConfig()
	cfg.Generator.Type = "oracle"

	if _, _, err := buildRoles(cfg, "run-1", nil); err == nil {
		t.Fatal("expected error for unknown generator type")
	}
}
