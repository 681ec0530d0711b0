package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemShouldWrite(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"index.html", true},
		{"blog/post.html", true},
		{"_layouts/base.html", false},
		{"_config.yml", false},
		{"blog/_drafts/x.html", false},
		{"blog/_x.html", false},
		{"blog/my_post.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Item{Path: tt.path}).ShouldWrite())
		})
	}
}

func TestOutputPathForMarkdown(t *testing.T) {
	assert.Equal(t, "index.html", OutputPathForMarkdown("index.md"))
	assert.Equal(t, "blog/a.html", OutputPathForMarkdown("blog/a.markdown"))
	assert.Equal(t, "README.html", OutputPathForMarkdown("README.MD"))
	assert.Equal(t, "style.css", OutputPathForMarkdown("style.css"))
}

func TestItemKinds(t *testing.T) {
	md := &Item{SourcePath: "a.Markdown"}
	assert.True(t, md.IsMarkdown())
	assert.True(t, md.IsMarkup())

	htm := &Item{SourcePath: "a.htm"}
	assert.False(t, htm.IsMarkdown())
	assert.True(t, htm.IsMarkup())

	css := &Item{SourcePath: "a.css"}
	assert.False(t, css.IsMarkup())
}
