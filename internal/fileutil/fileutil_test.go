package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathExistsAndNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.srt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	full := filepath.Join(dir, "full.srt")
	if err := os.WriteFile(full, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !PathExists(empty) || !PathExists(full) {
		t.Fatal("expected both files to exist")
	}
	if PathExists(filepath.Join(dir, "missing.srt")) {
		t.Fatal("missing file reported as existing")
	}
	if PathExists(dir) {
		t.Fatal("directory reported as regular file")
	}
	if NonEmptyFile(empty) {
		t.Fatal("empty file reported as non-empty")
	}
	if !NonEmptyFile(full) {
		t.Fatal("non-empty file reported as empty")
	}
}

func TestCopyAndMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.srt")
	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.srt")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "content" {
		t.Fatalf("copied content = %q, err %v", data, err)
	}

	moved := filepath.Join(dir, "moved.srt")
	if err := MoveFile(dst, moved); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if PathExists(dst) {
		t.Fatal("source still present after move")
	}
	if !NonEmptyFile(moved) {
		t.Fatal("move target missing")
	}
}
