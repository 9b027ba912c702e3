package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name: "ok",
			opts: Options{OnUnknownBase: "mismatch"},
		},
		{
			name:    "summary conflicts count-only",
			opts:    Options{Summary: true, CountOnly: true, OnUnknownBase: "mismatch"},
			wantErr: "conflicts",
		},
		{
			name:    "negative mismatches",
			opts:    Options{MaxMismatches: -1, OnUnknownBase: "mismatch"},
			wantErr: "max-mismatches",
		},
		{
			name:    "bad policy",
			opts:    Options{OnUnknownBase: "lenient"},
			wantErr: "unknown-base",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestRootCommandParsesFlags(t *testing.T) {
	var got *Options
	cmd := NewRootCommand(func(_ *cobra.Command, o *Options) error {
		got = o
		return nil
	})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"-p", "panel.tsv",
		"-r", "a.fa", "-r", "b.fa.gz",
		"-k", "2",
		"--no-revcomp",
		"--summary",
		"--threads", "7",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got == nil {
		t.Fatal("run was not called")
	}
	if got.PrimerFile != "panel.tsv" || len(got.RefFiles) != 2 || got.RefFiles[1] != "b.fa.gz" {
		t.Errorf("input flags = %+v", got)
	}
	if got.MaxMismatches != 2 || !got.NoRevcomp || !got.Summary || got.Threads != 7 {
		t.Errorf("scan flags = %+v", got)
	}
	if got.OnUnknownBase != "mismatch" || got.LogLevel != "warn" {
		t.Errorf("defaults = %+v", got)
	}
}

func TestRootCommandRequiresInputs(t *testing.T) {
	cmd := NewRootCommand(func(_ *cobra.Command, _ *Options) error { return nil })
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-p", "panel.tsv"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected required-flag error without --reference")
	}
}
