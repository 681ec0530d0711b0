package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rovr/internal/component"
	"git.home.luguber.info/inful/rovr/internal/content"
	"git.home.luguber.info/inful/rovr/internal/layout"
	"git.home.luguber.info/inful/rovr/internal/limits"
	"git.home.luguber.info/inful/rovr/internal/metrics"
)

func newRenderer(t *testing.T, layouts []layout.Layout, defs []component.Definition, opts Options, rec metrics.Recorder) *Renderer {
	t.Helper()
	reg := layout.NewRegistry(nil)
	for _, l := range layouts {
		reg.Register(l)
	}
	site := map[string]any{"title": "Docs"}
	engine, err := component.Compile(defs, component.Context{Site: site}, component.Options{})
	require.NoError(t, err)
	return New(Deps{
		Site:       site,
		Layouts:    reg,
		Components: engine,
		Options:    opts,
		Recorder:   rec,
	})
}

func parsed(path, body string, meta map[string]any) *content.Item {
	return &content.Item{
		Path:        path,
		SourcePath:  path,
		Metadata:    meta,
		Body:        body,
		ShouldParse: true,
		IsValidText: true,
	}
}

func TestRender_MarkdownWithLayout(t *testing.T) {
	rec := metrics.NewMemoryRecorder()
	r := newRenderer(t, []layout.Layout{{Name: "base", Body: "<body>{{content}}</body>"}}, nil, Options{}, rec)
	item := parsed("index.md", "# Hi {{content.name}}\n", map[string]any{"layout": "base", "name": "Sam"})

	require.NoError(t, r.Render(context.Background(), item))

	assert.Equal(t, "<body><h1>Hi Sam</h1>\n</body>", item.Body)
	assert.Equal(t, "index.html", item.Path)
	assert.Equal(t, "index.md", item.SourcePath)
	for _, stage := range []string{StageMarkdown, StageLayout, StageInterpolate, StageComponents, StageUnwrap, StagePostProcess} {
		assert.Equal(t, 1, rec.StageResults(stage, metrics.ResultSuccess), stage)
	}
	assert.Equal(t, []int{0}, rec.ExpansionPasses())
}

func TestRender_TokensInMarkdownDestinations(t *testing.T) {
	r := newRenderer(t, nil, nil, Options{}, nil)
	item := parsed("index.md", "[home]({{content.url}}) ![logo]({{ site.title }}/a.png)\n", map[string]any{"url": "/about"})

	require.NoError(t, r.Render(context.Background(), item))

	assert.Contains(t, item.Body, `<a href="/about">home</a>`)
	assert.Contains(t, item.Body, `<img src="Docs/a.png" alt="logo">`)
	assert.NotContains(t, item.Body, "%7B")
}

func TestRender_ComponentsAndWrappers(t *testing.T) {
	defs := []component.Definition{
		{Name: "Greeting", Source: `<p>Hi {{.Props.name}}</p>`},
		{Name: "Card", Source: `<div data-rovr-remove-wrapper="true"><section>{{.Children}}</section></div>`},
	}
	r := newRenderer(t, nil, defs, Options{}, nil)
	item := parsed("page.html", `<Card><Greeting name="{{ content.who }}"/></Card>`, map[string]any{"who": "Sam"})

	require.NoError(t, r.Render(context.Background(), item))
	assert.Equal(t, `<section><p>Hi Sam</p></section>`, item.Body)
	assert.Equal(t, "page.html", item.Path)
}

func TestRender_SiteScopeBeforeContentScope(t *testing.T) {
	r := newRenderer(t, nil, nil, Options{}, nil)
	item := parsed("feed.xml", "<title>{{ site.title }}: {{ content.title }}</title>", map[string]any{"title": "News"})

	require.NoError(t, r.Render(context.Background(), item))
	assert.Equal(t, "<title>Docs: News</title>", item.Body)
}

func TestRender_NonMarkupSkipsComponents(t *testing.T) {
	r := newRenderer(t, nil, nil, Options{}, nil)
	item := parsed("notes.txt", "<Unknown/> stays", nil)

	require.NoError(t, r.Render(context.Background(), item))
	assert.Equal(t, "<Unknown/> stays", item.Body)
}

func TestRender_UnparsedItemUntouched(t *testing.T) {
	r := newRenderer(t, nil, nil, Options{}, nil)
	item := &content.Item{Path: "a.md", SourcePath: "a.md", Body: "# raw"}

	require.NoError(t, r.Render(context.Background(), item))
	assert.Equal(t, "# raw", item.Body)
	assert.Equal(t, "a.md", item.Path)
}

func TestRender_HighlightMarksCodeBlocks(t *testing.T) {
	r := newRenderer(t, nil, nil, Options{Highlight: true}, nil)
	item := parsed("code.md", "```go\nx := 1\n```\n", nil)

	require.NoError(t, r.Render(context.Background(), item))
	assert.Contains(t, item.Body, `<code class="language-go hljs">`)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		item    *content.Item
		layouts []layout.Layout
		stage   string
		check   func(t *testing.T, err error)
	}{
		{
			name:  "missing layout",
			item:  parsed("index.md", "x", map[string]any{"layout": "nope"}),
			stage: StageLayout,
			check: func(t *testing.T, err error) {
				var missing *layout.MissingLayoutError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "nope", missing.Name)
			},
		},
		{
			name:  "unknown component",
			item:  parsed("docs/page.html", "<Missing/>", nil),
			stage: StageComponents,
			check: func(t *testing.T, err error) {
				var unknown *component.UnknownComponentError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, "Missing", unknown.Name)
				assert.Equal(t, "docs/page.html", unknown.Path)
			},
		},
		{
			name: "layout cycle",
			item: parsed("index.html", "x", map[string]any{"layout": "a"}),
			layouts: []layout.Layout{
				{Name: "a", Body: "{{content}}", Metadata: map[string]any{"layout": "b"}},
				{Name: "b", Body: "{{content}}", Metadata: map[string]any{"layout": "a"}},
			},
			stage: StageLayout,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, limits.ErrCompositionLimitExceeded)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := metrics.NewMemoryRecorder()
			r := newRenderer(t, tt.layouts, nil, Options{}, rec)

			err := r.Render(context.Background(), tt.item)
			require.Error(t, err)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.stage, rerr.Stage)
			assert.Equal(t, tt.item.SourcePath, rerr.Path)
			assert.Equal(t, 1, rec.StageResults(tt.stage, metrics.ResultFailed))
			tt.check(t, err)
		})
	}
}
