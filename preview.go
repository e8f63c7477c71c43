package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
)

// htmlPreviewShell wraps the rendered article body in a minimal page.
const htmlPreviewShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Article Preview</title>
<style>body { max-width: 48rem; margin: 2rem auto; font-family: sans-serif; line-height: 1.6; padding: 0 1rem; } pre { background: #f5f5f5; padding: 1rem; overflow-x: auto; }</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts article markdown to an HTML document.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return fmt.Sprintf(htmlPreviewShell, buf.String()), nil
}

// WriteHTMLPreview renders the article and writes it to path.
func WriteHTMLPreview(markdown, path string) error {
	html, err := RenderHTML(markdown)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}
