package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderReadsTextFiles(t *testing.T) {
	tmpDir := t.TempDir()

	txtPath := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("Plain text content."), 0644); err != nil {
		t.Fatal(err)
	}
	mdPath := filepath.Join(tmpDir, "readme.md")
	if err := os.WriteFile(mdPath, []byte("# Heading\n\nMarkdown body."), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil)
	docs := loader.Load([]FileInfo{{Path: txtPath}, {Path: mdPath}})

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Source != txtPath || docs[0].Text != "Plain text content." {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[1].Source != mdPath {
		t.Errorf("unexpected second source: %s", docs[1].Source)
	}
}

func TestLoaderSkipsBadFiles(t *testing.T) {
	tmpDir := t.TempDir()

	goodPath := filepath.Join(tmpDir, "good.txt")
	if err := os.WriteFile(goodPath, []byte("kept"), 0644); err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(tmpDir, "image.bin")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(tmpDir, "empty.txt")
	if err := os.WriteFile(emptyPath, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil)
	docs := loader.Load([]FileInfo{
		{Path: goodPath},
		{Path: binPath},
		{Path: filepath.Join(tmpDir, "missing.txt")},
		{Path: emptyPath},
	})

	if len(docs) != 1 {
		t.Fatalf("expected only the readable file, got %d documents", len(docs))
	}
	if docs[0].Text != "kept" {
		t.Errorf("unexpected text: %q", docs[0].Text)
	}
}

func TestWalkerPatterns(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"a.txt", "b.md", "c.log"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, ".webqa"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".webqa", "d.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	walker := NewWalker([]string{"**/*.txt", "**/*.md"}, []string{"**/.webqa/**"})
	files, err := walker.Walk(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}
	for _, f := range files {
		base := filepath.Base(f.Path)
		if base != "a.txt" && base != "b.md" {
			t.Errorf("unexpected file matched: %s", f.Path)
		}
	}
}
