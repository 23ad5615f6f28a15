package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"qbank/internal/config"
	"qbank/internal/question"
	"qbank/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	imageDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		imageDir:   filepath.Join(base, "incoming"),
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun runs args and fails the test on error.
func (e *cliTestEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, e.configPath)
	if err != nil {
		t.Fatalf("qbank %s: %v\nstdout: %s\nstderr: %s", strings.Join(args, " "), err, out, stderr)
	}
	return out
}

// image writes a distinct PNG into the incoming directory.
func (e *cliTestEnv) image(t *testing.T, name string) string {
	t.Helper()
	return testsupport.WritePNG(t, e.imageDir, name, name)
}

// addPaperOne adds a Paper 1 question with the given keywords and returns
// its ID.
func (e *cliTestEnv) addPaperOne(t *testing.T, name string, keywords ...string) string {
	t.Helper()
	args := []string{"add", "--paper", "1", "--question-image", e.image(t, name+".png"), "--answer-choice", "B"}
	for _, kw := range keywords {
		args = append(args, "-k", kw)
	}
	return addedID(t, e.mustRun(t, args...))
}

func addedID(t *testing.T, out string) string {
	t.Helper()
	const prefix = "Added question "
	line := strings.TrimSpace(out)
	if !strings.HasPrefix(line, prefix) {
		t.Fatalf("unexpected add output %q", out)
	}
	return strings.TrimPrefix(line, prefix)
}

func (e *cliTestEnv) listJSON(t *testing.T, args ...string) []question.Record {
	t.Helper()
	out := e.mustRun(t, append([]string{"list", "--json"}, args...)...)
	var records []question.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return records
}

func recordIDs(records []question.Record) []string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	return ids
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}
