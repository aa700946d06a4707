package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writePage(t *testing.T, dir, year, name, html string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, year), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, year, name), []byte(html), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
}

func TestLoadPages(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "2025", "january.html", "<table>jan</table>")
	writePage(t, dir, "2024", "december.html", "<table>dec</table>")
	writePage(t, dir, "2024", "notes.txt", "ignored")
	writePage(t, dir, "archive", "old.html", "ignored")

	pages, err := NewFSPageSource(dir).LoadPages(context.Background())
	if err != nil {
		t.Fatalf("load pages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}

	// Ordered by (year, month); the year comes from the directory name.
	if pages[0].Year != 2024 || pages[0].Month != "december" {
		t.Fatalf("unexpected first page %+v", pages[0])
	}
	if pages[1].Year != 2025 || pages[1].Month != "january" {
		t.Fatalf("unexpected second page %+v", pages[1])
	}
	if pages[0].HTML != "<table>dec</table>" {
		t.Fatalf("unexpected html %q", pages[0].HTML)
	}
}

func TestLoadPage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "2025", "march.html", "<table>mar</table>")

	src := NewFSPageSource(dir)
	page, err := src.LoadPage(2025, "march")
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	if page.Year != 2025 || page.Month != "march" || page.HTML != "<table>mar</table>" {
		t.Fatalf("unexpected page %+v", page)
	}

	if _, err := src.LoadPage(2025, "april"); err == nil {
		t.Fatalf("expected error for missing page")
	}
}
