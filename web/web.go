// Package web embeds the HTML pages served by the board.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
