package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/datapipeline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shaiso/dpctl/internal/config"
	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/manager"
	"github.com/shaiso/dpctl/internal/repo"
	"github.com/shaiso/dpctl/internal/telemetry"
)

const nightlyLoadCache = `{
    "pipelines": [
        {
            "pipeline_id": "p-001",
            "pipeline_name": "NightlyLoad",
            "parameterValues": [
                {"id": "startDate", "stringValue": ""}
            ]
        }
    ]
}`

// fakeDataPipeline — in-memory AWS Data Pipeline.
type fakeDataPipeline struct {
	pipelines   []*datapipeline.PipelineIdName
	listCalls   int
	activations []*datapipeline.ActivatePipelineInput
	activateErr error
}

func (f *fakeDataPipeline) ListPipelinesPagesWithContext(_ aws.Context, _ *datapipeline.ListPipelinesInput, fn func(*datapipeline.ListPipelinesOutput, bool) bool, _ ...request.Option) error {
	f.listCalls++
	fn(&datapipeline.ListPipelinesOutput{PipelineIdList: f.pipelines}, true)
	return nil
}

func (f *fakeDataPipeline) GetPipelineDefinitionWithContext(_ aws.Context, _ *datapipeline.GetPipelineDefinitionInput, _ ...request.Option) (*datapipeline.GetPipelineDefinitionOutput, error) {
	return &datapipeline.GetPipelineDefinitionOutput{}, nil
}

func (f *fakeDataPipeline) ActivatePipelineWithContext(_ aws.Context, in *datapipeline.ActivatePipelineInput, _ ...request.Option) (*datapipeline.ActivatePipelineOutput, error) {
	f.activations = append(f.activations, in)
	if f.activateErr != nil {
		return nil, f.activateErr
	}
	return &datapipeline.ActivatePipelineOutput{}, nil
}

type testEnv struct {
	env    *Env
	api    *fakeDataPipeline
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestEnv(t *testing.T, cacheContent string) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	if cacheContent != "" {
		if err := os.WriteFile(path, []byte(cacheContent), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	te := &testEnv{api: &fakeDataPipeline{}}
	te.env = NewEnv(&config.Config{CacheFile: path}, telemetry.Discard(), telemetry.NewMetrics())
	te.env.DataPipeline = te.api
	te.env.In = strings.NewReader("")
	return te
}

func (te *testEnv) run(t *testing.T, factory func(func() *Env, func() *Output) *cobra.Command, jsonMode bool, args ...string) error {
	t.Helper()
	cmd := factory(
		func() *Env { return te.env },
		func() *Output { return NewOutputTo(jsonMode, &te.stdout, &te.stderr) },
	)
	cmd.SetArgs(args)
	cmd.SetOut(&te.stdout)
	cmd.SetErr(&te.stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(context.Background())
}

// --- activate Tests ---

func TestActivate_ByNameIgnoringParameters(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)

	err := te.run(t, NewActivateCmd, false, "--pipeline-name", "nightlyload", "--ignore-parameters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(te.api.activations) != 1 {
		t.Fatalf("expected 1 activation, got %d", len(te.api.activations))
	}
	in := te.api.activations[0]
	if aws.StringValue(in.PipelineId) != "p-001" {
		t.Errorf("expected p-001, got %s", aws.StringValue(in.PipelineId))
	}
	if in.ParameterValues != nil {
		t.Errorf("expected no parameter list, got %v", in.ParameterValues)
	}
	if te.api.listCalls != 0 {
		t.Error("registry must not be queried when cache exists")
	}
	if !strings.Contains(te.stderr.String(), "Pipeline p-001 activated without parameters.") {
		t.Errorf("unexpected stderr: %s", te.stderr.String())
	}
	if !strings.Contains(te.stdout.String(), "SUCCEEDED") {
		t.Errorf("expected activation row in stdout: %s", te.stdout.String())
	}
}

func TestActivate_ByIDWithParameters(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)

	if err := te.run(t, NewActivateCmd, false, "--pipeline-id", "P-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := te.api.activations[0]
	if len(in.ParameterValues) != 1 || aws.StringValue(in.ParameterValues[0].Id) != "startDate" {
		t.Errorf("expected startDate override, got %v", in.ParameterValues)
	}
	if !strings.Contains(te.stderr.String(), "activated with parameters.") {
		t.Errorf("unexpected stderr: %s", te.stderr.String())
	}
}

func TestActivate_InteractiveFallback(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)
	te.env.In = strings.NewReader("1\n")

	if err := te.run(t, NewActivateCmd, false, "--pipeline-name", "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(te.api.activations) != 1 {
		t.Fatalf("expected activation after interactive selection, got %d", len(te.api.activations))
	}
	if !strings.Contains(te.stdout.String(), "1. NightlyLoad (ID: p-001)") {
		t.Errorf("expected numbered list, got: %s", te.stdout.String())
	}
}

func TestActivate_NoValidSelection(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)
	te.env.In = strings.NewReader("abc\n")

	err := te.run(t, NewActivateCmd, false)

	if !errors.Is(err, manager.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if len(te.api.activations) != 0 {
		t.Error("nothing should be activated")
	}
}

func TestActivate_RemoteFailure(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)
	te.api.activateErr = errors.New("PipelineDeletedException")

	err := te.run(t, NewActivateCmd, false, "--pipeline-name", "NightlyLoad")

	if err == nil || !strings.Contains(err.Error(), "PipelineDeletedException") {
		t.Fatalf("expected activation error, got %v", err)
	}
	if len(te.api.activations) != 1 {
		t.Errorf("activation must not be retried, got %d calls", len(te.api.activations))
	}
}

func TestActivate_InteractiveJSONKeepsStdoutParsable(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)
	te.env.In = strings.NewReader("1\n")

	if err := te.run(t, NewActivateCmd, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result domain.Activation
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, te.stdout.String())
	}
	if result.PipelineID != "p-001" || result.Status != domain.ActivationStatusSucceeded {
		t.Errorf("unexpected activation %+v", result)
	}
	if !strings.Contains(te.stderr.String(), "1. NightlyLoad (ID: p-001)") {
		t.Errorf("expected selection list on stderr, got %q", te.stderr.String())
	}
}

func TestActivate_CorruptCache(t *testing.T) {
	te := newTestEnv(t, `{"items": []}`)

	err := te.run(t, NewActivateCmd, false, "--pipeline-name", "NightlyLoad")

	if err == nil {
		t.Fatal("expected format error")
	}
	if te.api.listCalls != 0 || len(te.api.activations) != 0 {
		t.Error("corrupt cache must stop the command before any remote call")
	}
}

// --- list / refresh Tests ---

func TestList_BuildsMissingCache(t *testing.T) {
	te := newTestEnv(t, "")
	te.api.pipelines = []*datapipeline.PipelineIdName{
		{Id: aws.String("df-1"), Name: aws.String("One")},
		{Id: aws.String("df-2"), Name: aws.String("Two")},
	}

	if err := te.run(t, NewListCmd, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if te.api.listCalls != 1 {
		t.Errorf("expected registry listing, got %d calls", te.api.listCalls)
	}
	if _, err := os.Stat(te.env.Config.CacheFile); err != nil {
		t.Errorf("expected cache file: %v", err)
	}

	var listed []domain.Descriptor
	if err := json.Unmarshal(te.stdout.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, te.stdout.String())
	}
	if len(listed) != 2 || listed[0].ID != "df-1" || listed[1].ID != "df-2" {
		t.Errorf("unexpected listing %+v", listed)
	}
}

func TestRefresh_RebuildsExistingCache(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)
	te.api.pipelines = []*datapipeline.PipelineIdName{
		{Id: aws.String("df-9"), Name: aws.String("Fresh")},
	}

	if err := te.run(t, NewRefreshCmd, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(te.env.Config.CacheFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "df-9") || strings.Contains(string(data), "p-001") {
		t.Errorf("expected cache overwritten as a unit:\n%s", data)
	}
	if !strings.Contains(te.stderr.String(), "1 pipelines") {
		t.Errorf("unexpected stderr: %s", te.stderr.String())
	}
}

// --- history Tests ---

func TestHistory_RequiresDatabase(t *testing.T) {
	te := newTestEnv(t, nightlyLoadCache)

	err := te.run(t, NewHistoryCmd, false)

	if !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}
}

type fakeFinder struct {
	activations map[uuid.UUID]*domain.Activation
}

func (f *fakeFinder) GetByID(_ context.Context, id uuid.UUID) (*domain.Activation, error) {
	if a, ok := f.activations[id]; ok {
		return a, nil
	}
	return nil, repo.ErrNotFound
}

func TestShowActivation(t *testing.T) {
	stored := domain.NewActivation("p-001")
	stored.PipelineName = "NightlyLoad"
	stored.MarkSucceeded()
	finder := &fakeFinder{activations: map[uuid.UUID]*domain.Activation{stored.ID: stored}}

	t.Run("found", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		out := NewOutputTo(false, &stdout, &stderr)

		if err := showActivation(context.Background(), finder, out, stored.ID.String()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout.String(), stored.ID.String()) || !strings.Contains(stdout.String(), "NightlyLoad") {
			t.Errorf("unexpected output:\n%s", stdout.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		missing := uuid.New()

		err := showActivation(context.Background(), finder, NewOutputTo(false, &stdout, &stderr), missing.String())
		if err == nil || !strings.Contains(err.Error(), "activation "+missing.String()+" not found") {
			t.Errorf("expected not found message, got %v", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("nothing should be printed, got %q", stdout.String())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := showActivation(context.Background(), finder, NewOutputTo(false, &stdout, &stderr), "not-a-uuid")
		if err == nil || !strings.Contains(err.Error(), "invalid activation id") {
			t.Errorf("expected invalid id error, got %v", err)
		}
	})
}
