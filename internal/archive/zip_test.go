package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"batchpix/internal/model"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}

	contents := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open archive entry %s: %v", f.Name, err)
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read archive entry %s: %v", f.Name, err)
		}
		contents[f.Name] = string(payload)
	}
	return contents
}

func TestBuild_ContainsEveryArtifact(t *testing.T) {
	data, err := Build([]model.Artifact{
		{Filename: "a.jpg", Data: []byte("jpeg-a")},
		{Filename: "b.png", Data: []byte("png-b")},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	contents := readArchive(t, data)
	if len(contents) != 2 {
		t.Fatalf("Expected 2 archive entries, got %d", len(contents))
	}
	if contents["a.jpg"] != "jpeg-a" {
		t.Errorf("Expected a.jpg payload %q, got %q", "jpeg-a", contents["a.jpg"])
	}
	if contents["b.png"] != "png-b" {
		t.Errorf("Expected b.png payload %q, got %q", "png-b", contents["b.png"])
	}
}

func TestBuild_DuplicateNamesLastWins(t *testing.T) {
	data, err := Build([]model.Artifact{
		{Filename: "a.jpg", Data: []byte("first")},
		{Filename: "b.jpg", Data: []byte("other")},
		{Filename: "a.jpg", Data: []byte("second")},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	contents := readArchive(t, data)
	if len(contents) != 2 {
		t.Fatalf("Expected exactly 2 archive entries, got %d", len(contents))
	}
	if contents["a.jpg"] != "second" {
		t.Errorf("Expected duplicate name to keep the later payload, got %q", contents["a.jpg"])
	}
}

func TestBuild_NoArtifacts(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("Expected error for empty artifact list")
	}
}
