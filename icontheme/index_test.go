package icontheme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanDirectoryIndexesRasterFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "document-save.png"), 8)
	writePNG(t, filepath.Join(dir, "edit-copy.png"), 8)
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ix := make(iconIndex)
	ix.scanDirectory(dir, 16, quietLogger())

	if len(ix) != 2 {
		t.Fatalf("expected 2 icons indexed, got %d", len(ix))
	}
	entry, ok := ix["document-save"]
	if !ok {
		t.Fatal("document-save not indexed")
	}
	location, ok := entry.Location(16)
	if !ok || location != filepath.Join(dir, "document-save.png") {
		t.Fatalf("unexpected location %q (ok=%v)", location, ok)
	}
}

func TestScanDirectoryMergesSizesAcrossDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writePNG(t, filepath.Join(root, "16", "go-home.png"), 8)
	writePNG(t, filepath.Join(root, "32", "go-home.png"), 8)

	ix := make(iconIndex)
	ix.scanDirectory(filepath.Join(root, "16"), 16, quietLogger())
	ix.scanDirectory(filepath.Join(root, "32"), 32, quietLogger())

	entry, ok := ix["go-home"]
	if !ok {
		t.Fatal("go-home not indexed")
	}
	sizes := entry.Sizes()
	if len(sizes) != 2 || sizes[0] != 16 || sizes[1] != 32 {
		t.Fatalf("expected sizes [16 32], got %v", sizes)
	}
}

func TestScanDirectorySymlinkAliasSharesEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "go-previous.png"), 8)
	if err := os.Symlink("go-previous.png", filepath.Join(dir, "back.png")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	ix := make(iconIndex)
	ix.scanDirectory(dir, 24, quietLogger())

	target, ok := ix["go-previous"]
	if !ok {
		t.Fatal("target not indexed")
	}
	alias, ok := ix["back"]
	if !ok {
		t.Fatal("alias not indexed")
	}
	if alias != target {
		t.Fatal("alias must share the target's entry, not copy it")
	}

	// A size registered through the target after aliasing stays visible
	// through the alias.
	ix.register("go-previous", 48, filepath.Join(dir, "elsewhere", "go-previous.png"))
	if _, ok := alias.Location(48); !ok {
		t.Fatal("size added to target should be visible through the alias")
	}
}

func TestScanDirectorySymlinkBeforeTarget(t *testing.T) {
	t.Parallel()

	// The alias sorts ahead of its target; the target must be indexed first
	// and then shared.
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "zz-target.png"), 8)
	if err := os.Symlink("zz-target.png", filepath.Join(dir, "aa-alias.png")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	ix := make(iconIndex)
	ix.scanDirectory(dir, 16, quietLogger())

	alias, ok := ix["aa-alias"]
	if !ok {
		t.Fatal("alias not indexed")
	}
	target, ok := ix["zz-target"]
	if !ok {
		t.Fatal("target not indexed")
	}
	if alias != target {
		t.Fatal("alias and target must share one entry")
	}
	if got := alias.Sizes(); len(got) != 1 || got[0] != 16 {
		t.Fatalf("alias size set mismatch: %v", got)
	}
}

func TestScanDirectoryDanglingSymlinkSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Symlink("missing-target.png", filepath.Join(dir, "ghost.png")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	ix := make(iconIndex)
	ix.scanDirectory(dir, 16, quietLogger())

	// The alias still registers against the (not yet scanned) target name;
	// resolution fails later at read time, not at scan time.
	if _, ok := ix["ghost"]; !ok {
		t.Fatal("symlink with unscanned target should still be indexed")
	}
}

func TestScanDirectoryMissingDirectory(t *testing.T) {
	t.Parallel()

	ix := make(iconIndex)
	ix.scanDirectory(filepath.Join(t.TempDir(), "nope"), 16, quietLogger())
	if len(ix) != 0 {
		t.Fatalf("missing directory must scan to nothing, got %d entries", len(ix))
	}
}

func TestScanDirectoryNotADirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ix := make(iconIndex)
	ix.scanDirectory(file, 16, quietLogger())
	if len(ix) != 0 {
		t.Fatalf("non-directory must abort only its own scan, got %d entries", len(ix))
	}
}

func TestIconBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "folder.png", want: "folder"},
		{in: "folder.symbolic.png", want: "folder"},
		{in: "noext", want: "noext"},
		{in: "a.b.c.png", want: "a"},
	}
	for _, tt := range tests {
		if got := iconBaseName(tt.in); got != tt.want {
			t.Fatalf("iconBaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
