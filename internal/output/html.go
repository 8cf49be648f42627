package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/garagon/attrib/internal/types"
)

// HTMLFormatter renders the Markdown report to a standalone HTML page.
type HTMLFormatter struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// The report embeds <details> blocks; every detection text is escaped
	// before it reaches the Markdown source.
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: .5rem 0; }
th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
summary { cursor: pointer; margin: .25rem 0; }
</style>
</head>
<body>
`

func (f *HTMLFormatter) Format(w io.Writer, result *types.ScanResult) error {
	var src bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(&src, result); err != nil {
		return err
	}
	title := "attrib report"
	if result.Target != "" {
		title += ": " + result.Target
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString(title)); err != nil {
		return err
	}
	if err := markdown.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
