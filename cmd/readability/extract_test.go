package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Furafrafrfr/readability/config"
)

const cliSampleHTML = `<html><head><title>Foo</title></head><body><article><p>` +
	`Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod ` +
	`tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim ` +
	`veniam quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea.` +
	`</p></article></body></html>`

func newDeps() *Dependencies {
	cfg, _ := config.LoadFile("")
	return &Dependencies{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Config: cfg}
}

func TestExtractCmdFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte(cliSampleHTML), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	deps := newDeps()
	cmd := &ExtractCmd{File: path, Format: "text"}
	if err := cmd.Run(deps); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := deps.Stdout.(*bytes.Buffer).String()
	if !strings.Contains(out, "Lorem ipsum") {
		t.Errorf("stdout = %q, want it to contain extracted text", out)
	}
}

func TestExtractCmdCSSSelector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	html := `<html><head><title>T</title></head><body>` +
		`<div id="ignore"><p>` + strings.Repeat("Ignored filler content. ", 20) + `</p></div>` +
		`<article id="keep"><p>` + strings.Repeat("Kept article content goes here. ", 20) + `</p></article>` +
		`</body></html>`
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	deps := newDeps()
	cmd := &ExtractCmd{File: path, Format: "text", CSSSelector: "#keep"}
	if err := cmd.Run(deps); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := deps.Stdout.(*bytes.Buffer).String()
	if strings.Contains(out, "Ignored filler") {
		t.Error("content outside the CSS selector should have been excluded")
	}
}

func TestExtractCmdMissingFile(t *testing.T) {
	deps := newDeps()
	cmd := &ExtractCmd{File: filepath.Join(t.TempDir(), "missing.html")}
	if err := cmd.Run(deps); err == nil {
		t.Error("expected an error for a missing file")
	}
}
