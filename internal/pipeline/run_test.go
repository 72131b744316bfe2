package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuru2388/django-autoapi/internal/config"
	"github.com/kuru2388/django-autoapi/internal/llm"
	"github.com/kuru2388/django-autoapi/internal/registry"
)

type stubRegistry struct {
	apps []registry.App
	err  error
}

func (s *stubRegistry) Apps() ([]registry.App, error) {
	return s.apps, s.err
}

func newRunner(apps []registry.App, client llm.LLMClient, out *bytes.Buffer) *Runner {
	return &Runner{
		Registry: &stubRegistry{apps: apps},
		Config:   config.Default(),
		NewClient: func(ctx context.Context) (llm.LLMClient, error) {
			return client, nil
		},
		Confirm: func(string) bool { return true },
		Out:     out,
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	apps := []registry.App{{
		Name:  "blog",
		Label: "blog",
		Path:  dir,
		Models: []registry.Model{{
			Name: "Post",
			Fields: []registry.Field{
				{Name: "title", Type: "CharField", Concrete: true},
				{Name: "id", Type: "AutoField", AutoCreated: true, Concrete: true},
			},
		}},
	}}
	mock := &MockLLMClient{Replies: []MockReply{{Text: "class PostSerializer: ..."}}}

	var out bytes.Buffer
	err := newRunner(apps, mock, &out).Run(context.Background(), Options{SkipConfirm: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "App: blog")
	assert.Contains(t, out.String(), "  - Post")
	assert.Contains(t, out.String(), "Scan complete: 1 apps, 1 models.")
	assert.Contains(t, out.String(), "Serializer generation complete.")

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "- title: CharField")
	assert.Contains(t, mock.Prompts[0], "- id: AutoField")

	data, err := os.ReadFile(filepath.Join(dir, "api_serializers_ai.py"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "from rest_framework import serializers\n\n"))
	assert.Contains(t, string(data), "class PostSerializer: ...")
}

func TestRunNoMatchingApps(t *testing.T) {
	apps := []registry.App{{Name: "django.contrib.admin", Label: "admin"}}

	var out bytes.Buffer
	err := newRunner(apps, &MockLLMClient{}, &out).Run(context.Background(), Options{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No matching apps found to scan.")
}

func TestRunNoAppsWithModels(t *testing.T) {
	apps := []registry.App{{Name: "blog", Label: "blog"}}

	var out bytes.Buffer
	err := newRunner(apps, &MockLLMClient{}, &out).Run(context.Background(), Options{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No apps with models found.")
}

func TestRunBudgetOnlyNeverBuildsClient(t *testing.T) {
	apps := []registry.App{{
		Name: "blog", Label: "blog", Path: t.TempDir(),
		Models: []registry.Model{{Name: "Post"}, {Name: "Comment"}},
	}}

	var out bytes.Buffer
	runner := newRunner(apps, nil, &out)
	runner.NewClient = func(ctx context.Context) (llm.LLMClient, error) {
		t.Fatal("budget-only run must not construct an LLM client")
		return nil, nil
	}

	err := runner.Run(context.Background(), Options{BudgetOnly: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Budget estimation (rough):")
	assert.Contains(t, out.String(), "Models to generate: 2")
	assert.Contains(t, out.String(), "~2000 tokens")
	assert.Contains(t, out.String(), "$0.0018")
	assert.Contains(t, out.String(), "This is a rough estimate.")
}

func TestRunConfirmDeclined(t *testing.T) {
	apps := []registry.App{{
		Name: "blog", Label: "blog", Path: t.TempDir(),
		Models: []registry.Model{{Name: "Post"}},
	}}
	mock := &MockLLMClient{}

	var out bytes.Buffer
	runner := newRunner(apps, mock, &out)
	var question string
	runner.Confirm = func(q string) bool {
		question = q
		return false
	}

	err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Contains(t, question, "Generate serializers for 1 models")
	assert.Contains(t, out.String(), "Aborted before generation.")
	assert.Empty(t, mock.Prompts)
}

func TestRunClientConfigErrorAfterReport(t *testing.T) {
	apps := []registry.App{{
		Name: "blog", Label: "blog", Path: t.TempDir(),
		Models: []registry.Model{{Name: "Post"}},
	}}

	var out bytes.Buffer
	runner := newRunner(apps, nil, &out)
	runner.NewClient = func(ctx context.Context) (llm.LLMClient, error) {
		return nil, &llm.ConfigError{Reason: "No API key configured."}
	}

	err := runner.Run(context.Background(), Options{SkipConfirm: true})
	require.NoError(t, err)

	// The operator saw the full scan report before the failure surfaced.
	text := out.String()
	assert.Contains(t, text, "App: blog")
	assert.Contains(t, text, "No API key configured.")
	assert.Less(t, strings.Index(text, "App: blog"), strings.Index(text, "No API key configured."))
	assert.NotContains(t, text, "Serializer generation complete.")
}

func TestRunConfigErrorStopsRemainingApps(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	apps := []registry.App{
		{Name: "blog", Label: "blog", Path: dirA, Models: []registry.Model{{Name: "Post"}}},
		{Name: "shop", Label: "shop", Path: dirB, Models: []registry.Model{{Name: "Order"}}},
	}
	mock := &MockLLMClient{Replies: []MockReply{
		{Err: &llm.ConfigError{Reason: "No API key configured."}},
	}}

	var out bytes.Buffer
	err := newRunner(apps, mock, &out).Run(context.Background(), Options{SkipConfirm: true})
	require.NoError(t, err)

	// One attempt only; the second app was never reached.
	assert.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Model name: Post")
	assert.NotContains(t, out.String(), "Generating serializer for shop.Order")
}
