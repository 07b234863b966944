package intake

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"testing"

	"batchpix/internal/model"
	"batchpix/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestAddFiles_ImageDefaults(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	entries := svc.AddFiles([]FileUpload{
		{Name: "photo.jpg", Type: "image/jpeg", Data: []byte("fake"), Size: 4},
	}, Defaults{})

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Kind != model.KindImage {
		t.Errorf("Expected image kind, got %s", e.Kind)
	}
	if e.OutputName != "photo" {
		t.Errorf("Expected output name %q, got %q", "photo", e.OutputName)
	}
	if e.Image == nil || e.Image.TargetWidth != 800 || e.Image.TargetHeight != 600 {
		t.Errorf("Expected default 800x600 settings, got %+v", e.Image)
	}
	if e.ID == "" {
		t.Error("Expected generated ID")
	}

	if _, err := os.Stat(e.Preview.Path()); err != nil {
		t.Errorf("Expected staged preview copy, got %v", err)
	}
}

func TestAddFiles_CustomDefaults(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	entries := svc.AddFiles([]FileUpload{
		{Name: "photo.png", Type: "image/png", Data: []byte("fake"), Size: 4},
	}, Defaults{TargetWidth: 1024, TargetHeight: 768})

	if entries[0].Image.TargetWidth != 1024 || entries[0].Image.TargetHeight != 768 {
		t.Errorf("Expected 1024x768 settings, got %+v", entries[0].Image)
	}
}

func TestAddFiles_NonImageBecomesDocument(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	entries := svc.AddFiles([]FileUpload{
		{Name: "report.pdf", Type: "application/pdf", Data: []byte("%PDF-1.4 fake"), Size: 13},
	}, Defaults{})

	e := entries[0]
	if e.Kind != model.KindDocument {
		t.Errorf("Expected document kind, got %s", e.Kind)
	}
	if e.Image != nil {
		t.Error("Expected no image settings on document entry")
	}
	if e.OutputName != "report" {
		t.Errorf("Expected output name %q, got %q", "report", e.OutputName)
	}
}

func TestAddFiles_SniffsMissingMIME(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	entries := svc.AddFiles([]FileUpload{
		{Name: "mystery", Data: pngBytes(t), Size: 1},
	}, Defaults{})

	if entries[0].Kind != model.KindImage {
		t.Errorf("Expected sniffed png to classify as image, got %s", entries[0].Kind)
	}
}

func TestAddFiles_PreservesSelectionOrder(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	svc.AddFiles([]FileUpload{
		{Name: "first.jpg", Type: "image/jpeg", Data: []byte("a"), Size: 1},
		{Name: "second.jpg", Type: "image/jpeg", Data: []byte("b"), Size: 1},
	}, Defaults{})
	svc.AddFiles([]FileUpload{
		{Name: "third.jpg", Type: "image/jpeg", Data: []byte("c"), Size: 1},
	}, Defaults{})

	entries := s.List()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"first.jpg", "second.jpg", "third.jpg"} {
		if entries[i].Source.Name != want {
			t.Errorf("Expected entry %d to be %q, got %q", i, want, entries[i].Source.Name)
		}
	}
}

func TestAddFiles_EmptySelection(t *testing.T) {
	s := store.New()
	svc := NewService(t.TempDir(), s, testLogger())

	entries := svc.AddFiles(nil, Defaults{})
	if len(entries) != 0 || s.Len() != 0 {
		t.Error("Expected empty selection to add nothing")
	}
}
