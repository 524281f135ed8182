package registry

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/datapipeline"

	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/telemetry"
)

// fakeAPI — in-memory реализация API.
type fakeAPI struct {
	pages   [][]*datapipeline.PipelineIdName
	listErr error

	definitions map[string]*datapipeline.GetPipelineDefinitionOutput
	defErrs     map[string]error
	defCalls    []string
}

func (f *fakeAPI) ListPipelinesPagesWithContext(_ aws.Context, _ *datapipeline.ListPipelinesInput, fn func(*datapipeline.ListPipelinesOutput, bool) bool, _ ...request.Option) error {
	if f.listErr != nil {
		return f.listErr
	}
	for i, page := range f.pages {
		if !fn(&datapipeline.ListPipelinesOutput{PipelineIdList: page}, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

func (f *fakeAPI) GetPipelineDefinitionWithContext(_ aws.Context, in *datapipeline.GetPipelineDefinitionInput, _ ...request.Option) (*datapipeline.GetPipelineDefinitionOutput, error) {
	id := aws.StringValue(in.PipelineId)
	f.defCalls = append(f.defCalls, id)
	if err := f.defErrs[id]; err != nil {
		return nil, err
	}
	if out, ok := f.definitions[id]; ok {
		return out, nil
	}
	return &datapipeline.GetPipelineDefinitionOutput{}, nil
}

func ref(id, name string) *datapipeline.PipelineIdName {
	return &datapipeline.PipelineIdName{Id: aws.String(id), Name: aws.String(name)}
}

func newTestClient(api API) *Client {
	return NewClient(Config{API: api, Logger: telemetry.Discard(), Metrics: telemetry.NewMetrics()})
}

// --- ListPipelines Tests ---

func TestClient_ListPipelines_AllPages(t *testing.T) {
	api := &fakeAPI{
		pages: [][]*datapipeline.PipelineIdName{
			{ref("df-1", "One"), ref("df-2", "Two")},
			{ref("df-3", "Three")},
		},
	}

	got := newTestClient(api).ListPipelines(context.Background())

	want := []domain.PipelineRef{
		{ID: "df-1", Name: "One"},
		{ID: "df-2", Name: "Two"},
		{ID: "df-3", Name: "Three"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClient_ListPipelines_Empty(t *testing.T) {
	got := newTestClient(&fakeAPI{}).ListPipelines(context.Background())

	if got == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 pipelines, got %d", len(got))
	}
}

func TestClient_ListPipelines_ErrorReturnsEmpty(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("AccessDeniedException")}

	got := newTestClient(api).ListPipelines(context.Background())

	if got == nil || len(got) != 0 {
		t.Errorf("expected empty result on error, got %#v", got)
	}
}

// --- GetParameters Tests ---

func TestClient_GetParameters_FirstStringValue(t *testing.T) {
	api := &fakeAPI{
		definitions: map[string]*datapipeline.GetPipelineDefinitionOutput{
			"df-1": {
				ParameterObjects: []*datapipeline.ParameterObject{
					{
						Id: aws.String("myStartDate"),
						Attributes: []*datapipeline.ParameterAttribute{
							{Key: aws.String("type"), StringValue: aws.String("String")},
							{Key: aws.String("default"), StringValue: aws.String("2024-01-01")},
						},
					},
					{
						Id: aws.String("myBucket"),
						Attributes: []*datapipeline.ParameterAttribute{
							{Key: aws.String("description")},
							{Key: aws.String("default"), StringValue: aws.String("s3://bucket")},
						},
					},
					{
						Id: aws.String("noAttrs"),
					},
				},
			},
		},
	}

	got := newTestClient(api).GetParameters(context.Background(), "df-1")

	want := []domain.Parameter{
		{ID: "myStartDate", StringValue: "String"},
		{ID: "myBucket", StringValue: "s3://bucket"},
		{ID: "noAttrs", StringValue: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClient_GetParameters_ErrorReturnsEmpty(t *testing.T) {
	api := &fakeAPI{defErrs: map[string]error{"df-1": errors.New("PipelineNotFoundException")}}
	metrics := telemetry.NewMetrics()
	client := NewClient(Config{API: api, Logger: telemetry.Discard(), Metrics: metrics})

	got := client.GetParameters(context.Background(), "df-1")

	if got == nil || len(got) != 0 {
		t.Errorf("expected empty result on error, got %#v", got)
	}
	if len(api.defCalls) != 1 || api.defCalls[0] != "df-1" {
		t.Errorf("expected single call for df-1, got %v", api.defCalls)
	}
}

func TestClient_GetParameters_NoParameters(t *testing.T) {
	got := newTestClient(&fakeAPI{}).GetParameters(context.Background(), "df-1")

	if got == nil || len(got) != 0 {
		t.Errorf("expected empty parameters, got %#v", got)
	}
}
