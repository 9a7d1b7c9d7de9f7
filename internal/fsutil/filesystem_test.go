package fsutil

import (
	"errors"
	"io"
	iofs "io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Stat(t *testing.T) {
	fs := OSFileSystem{}

	if _, err := fs.Stat("filesystem.go"); err != nil {
		t.Errorf("expected filesystem.go to exist: %v", err)
	}
	if IsDir(fs, "filesystem.go") {
		t.Error("filesystem.go reported as a directory")
	}

	if _, err := fs.Stat("nonexistent_file_xyz.go"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Stat(nonexistent) error = %v, want ErrNotExist", err)
	}
}

func TestOSFileSystem_DriverFolderLifecycle(t *testing.T) {
	fs := OSFileSystem{}
	folder := filepath.Join(t.TempDir(), "Driver1_CSV")

	if IsDir(fs, folder) {
		t.Fatal("folder should not exist yet")
	}
	if err := fs.MkdirAll(folder, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if !IsDir(fs, folder) {
		t.Fatal("expected folder to be a directory")
	}

	csvPath := filepath.Join(folder, "race.csv")
	w, err := fs.Create(csvPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := io.WriteString(w, "lap,time,pos\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := fs.ReadDir(folder)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "race.csv" {
		t.Errorf("entries = %v, want [race.csv]", entries)
	}

	if err := fs.Remove(csvPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := fs.Stat(csvPath); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("expected file to be removed, Stat error = %v", err)
	}
}

func TestMemoryFileSystem_CreateAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("Driver1_race_graph.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("png bytes")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := mfs.ReadFile("Driver1_race_graph.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("expected 'png bytes', got %q", data)
	}
}

func TestMemoryFileSystem_CreateMissingParent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Create("/out/chart.png"); err == nil {
		t.Error("expected error creating a file in a missing directory")
	}
}

func TestMemoryFileSystem_Open(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/Driver1_CSV/race.csv", []byte("open me"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := mfs.Open("/Driver1_CSV/race.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "open me" {
		t.Errorf("expected 'open me', got %q", data)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "race.csv" {
		t.Errorf("expected name 'race.csv', got %q", info.Name())
	}
}

func TestMemoryFileSystem_OpenNonExistent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Open("/nonexistent.csv"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestMemoryFileSystem_WriteFileCreatesParents(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/data/Driver2_CSV/a.csv", []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	for _, dir := range []string{"/data/Driver2_CSV", "/data", "/"} {
		if !IsDir(mfs, dir) {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem()

	for _, name := range []string{"/d/b.csv", "/d/a.csv", "/d/sub/c.csv", "/other/z.csv"} {
		if err := mfs.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}
	}

	entries, err := mfs.ReadDir("/d")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	want := []struct {
		name  string
		isDir bool
	}{
		{"a.csv", false},
		{"b.csv", false},
		{"sub", true},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Name() != w.name || entries[i].IsDir() != w.isDir {
			t.Errorf("entry %d = (%s, dir=%v), want (%s, dir=%v)",
				i, entries[i].Name(), entries[i].IsDir(), w.name, w.isDir)
		}
	}
}

func TestMemoryFileSystem_ReadDirMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.ReadDir("/missing"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestMemoryFileSystem_StatDir(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.MkdirAll("/testdir/subdir", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	info, err := mfs.Stat("/testdir/subdir")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected directory")
	}
	if !mfs.Exists("/testdir") {
		t.Error("expected parent directory to exist")
	}
}

func TestMemoryFileSystem_Remove(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/removeme.csv", []byte("delete"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.Remove("/removeme.csv"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if mfs.Exists("/removeme.csv") {
		t.Error("expected file to not exist after removal")
	}
	if err := mfs.Remove("/removeme.csv"); err == nil {
		t.Error("expected error removing a file twice")
	}
}

func TestMemoryFileSystem_PathCleaning(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("./dirty/../clean.csv", []byte("clean"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("clean.csv")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "clean" {
		t.Errorf("expected 'clean', got %q", data)
	}
}

func TestMemFileWriter_UpdateExisting(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/update.png", []byte("initial"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w, err := mfs.Create("/update.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("updated")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := mfs.ReadFile("/update.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("expected 'updated', got %q", data)
	}
}
