package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
	"git.home.luguber.info/inful/rovr/internal/frontmatter"
	"git.home.luguber.info/inful/rovr/internal/markdown"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing files"`
	Style string `help:"Chroma style for the generated highlight stylesheet" default:"${default_style}"`
}

const scaffoldConfig = `# rovr site configuration
destination: _BUILD
highlightSyntax: true
highlightStyle: %s
excludes:
  - README.md
serve:
  port: 4000
  debounce: 300ms
`

const scaffoldMetadata = `title: My rovr site
`

const scaffoldLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ content.title }} | {{ site.title }}</title>
  <link rel="stylesheet" href="/assets/highlight.css">
</head>
<body>
{{ content }}
</body>
</html>
`

const scaffoldComponent = `<p class="greeting">Hello, {{.Props.name | default "friend"}}!</p>
`

const scaffoldIndexBody = `# {{ content.title }}

<Greeting name="{{ content.visitor }}"/>

` + "```go\npackage main\n\nfunc main() {}\n```\n"

func (i *InitCmd) Run(g *Global, root *CLI) error {
	index, err := frontmatter.Render(map[string]any{
		"layout":  "base",
		"title":   "Welcome",
		"visitor": "reader",
	}, []byte(scaffoldIndexBody))
	if err != nil {
		return foundationerrors.InternalError(err, "failed to render index page").Build()
	}

	var css bytes.Buffer
	if err := markdown.NewConverter(i.Style).WriteCSS(&css); err != nil {
		return foundationerrors.InternalError(err, "failed to render highlight stylesheet").Build()
	}

	files := []struct {
		rel  string
		data []byte
	}{
		{"_config.yml", []byte(fmt.Sprintf(scaffoldConfig, i.Style))},
		{"_metadata.yml", []byte(scaffoldMetadata)},
		{"_layouts/base.html", []byte(scaffoldLayout)},
		{"_components/Greeting.html", []byte(scaffoldComponent)},
		{"index.md", index},
		{"assets/highlight.css", css.Bytes()},
	}

	if !i.Force {
		for _, f := range files {
			p := filepath.Join(root.Src, filepath.FromSlash(f.rel))
			if _, err := os.Stat(p); err == nil {
				return foundationerrors.ValidationError("refusing to overwrite existing file (use --force)").
					WithPath(p).
					Build()
			} else if !errors.Is(err, fs.ErrNotExist) {
				return foundationerrors.FileSystemError(err, "failed to inspect file").
					WithPath(p).
					Build()
			}
		}
	}

	for _, f := range files {
		p := filepath.Join(root.Src, filepath.FromSlash(f.rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return foundationerrors.FileSystemError(err, "failed to create directory").
				WithPath(filepath.Dir(p)).
				Build()
		}
		// #nosec G306 -- scaffolded site sources are meant to be shared
		if err := os.WriteFile(p, f.data, 0o644); err != nil {
			return foundationerrors.FileSystemError(err, "failed to write file").
				WithPath(p).
				Build()
		}
		_, _ = fmt.Fprintf(g.Out, "created %s\n", p)
	}
	_, _ = fmt.Fprintln(g.Out, "initialized successfully")
	return nil
}
