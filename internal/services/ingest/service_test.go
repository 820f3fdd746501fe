package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/model"
	"github.com/Ugar78/telegram-bot-idrnd/internal/repo/mediafs"
	"github.com/Ugar78/telegram-bot-idrnd/internal/ui"
)

type stubCatalog struct {
	events *[]string
	rows   [][2]string
	err    error
}

func (s *stubCatalog) Append(_ context.Context, sender, path string) error {
	if s.err != nil {
		return s.err
	}
	if s.events != nil {
		*s.events = append(*s.events, "append")
	}
	s.rows = append(s.rows, [2]string{sender, path})
	return nil
}

type stubDetector struct {
	regions []model.FaceRegion
	err     error
}

func (s *stubDetector) Detect(_ []byte) ([]model.FaceRegion, error) {
	return s.regions, s.err
}

type stubTranscoder struct {
	events *[]string
	calls  [][2]string
	err    error
}

func (s *stubTranscoder) ToWAV(_ context.Context, srcPath, dstPath string, _ int) error {
	if s.err != nil {
		return s.err
	}
	if s.events != nil {
		*s.events = append(*s.events, "transcode")
	}
	s.calls = append(s.calls, [2]string{srcPath, dstPath})
	return nil
}

type stubNotifier struct {
	events *[]string
	texts  []string
	err    error
}

func (s *stubNotifier) SendText(_ context.Context, _ int64, text string) error {
	if s.err != nil {
		return s.err
	}
	if s.events != nil {
		*s.events = append(*s.events, "ack")
	}
	s.texts = append(s.texts, text)
	return nil
}

func TestIngestVoiceCommitsBeforeAckThenTranscodes(t *testing.T) {
	root := t.TempDir()
	store := mediafs.New(root)

	var events []string
	catalog := &stubCatalog{events: &events}
	transcoder := &stubTranscoder{events: &events}
	notifier := &stubNotifier{events: &events}

	svc := NewService(store, catalog, &stubDetector{}, transcoder, notifier, 16000, nil)

	voice, err := svc.IngestVoice(context.Background(), 7, "Ann", "F1", []byte("ogg"))
	if err != nil {
		t.Fatalf("ingest voice: %v", err)
	}

	wantOrder := []string{"append", "ack", "transcode"}
	if len(events) != len(wantOrder) {
		t.Fatalf("expected events %v, got %v", wantOrder, events)
	}
	for i, event := range wantOrder {
		if events[i] != event {
			t.Fatalf("expected events %v, got %v", wantOrder, events)
		}
	}

	wantOriginal := filepath.Join(root, "audio_ogg", "audio_Ann_F1.ogg")
	if voice.OriginalPath != wantOriginal {
		t.Fatalf("expected original path %q, got %q", wantOriginal, voice.OriginalPath)
	}
	if _, err := os.Stat(wantOriginal); err != nil {
		t.Fatalf("original audio missing: %v", err)
	}

	if len(catalog.rows) != 1 || catalog.rows[0] != [2]string{"Ann", wantOriginal} {
		t.Fatalf("unexpected catalog rows %v", catalog.rows)
	}
	if len(notifier.texts) != 1 || notifier.texts[0] != ui.MsgAudioSaved {
		t.Fatalf("unexpected notifications %v", notifier.texts)
	}

	wantDerived := filepath.Join(root, "audio_wav", "audio_Ann_F1.wav")
	if voice.DerivedPath != wantDerived {
		t.Fatalf("expected derived path %q, got %q", wantDerived, voice.DerivedPath)
	}
	if len(transcoder.calls) != 1 || transcoder.calls[0] != [2]string{wantOriginal, wantDerived} {
		t.Fatalf("unexpected transcoder calls %v", transcoder.calls)
	}
}

func TestIngestVoiceTranscodeFailureKeepsRowAndAck(t *testing.T) {
	store := mediafs.New(t.TempDir())
	catalog := &stubCatalog{}
	notifier := &stubNotifier{}
	transcoder := &stubTranscoder{err: errors.New("codec error")}

	svc := NewService(store, catalog, &stubDetector{}, transcoder, notifier, 16000, nil)

	voice, err := svc.IngestVoice(context.Background(), 7, "Ann", "F1", []byte("ogg"))
	if err == nil {
		t.Fatal("expected transcode error")
	}

	if len(catalog.rows) != 1 {
		t.Fatalf("expected committed catalog row, got %v", catalog.rows)
	}
	if len(notifier.texts) != 1 {
		t.Fatalf("expected acknowledgment before transcode, got %v", notifier.texts)
	}
	if voice.OriginalPath == "" {
		t.Fatal("expected original path on partial result")
	}
	if voice.DerivedPath != "" {
		t.Fatal("expected empty derived path after transcode failure")
	}
}

func TestIngestVoiceCatalogFailureSkipsAck(t *testing.T) {
	store := mediafs.New(t.TempDir())
	catalog := &stubCatalog{err: errors.New("db locked")}
	notifier := &stubNotifier{}

	svc := NewService(store, catalog, &stubDetector{}, &stubTranscoder{}, notifier, 16000, nil)

	if _, err := svc.IngestVoice(context.Background(), 7, "Ann", "F1", []byte("ogg")); err == nil {
		t.Fatal("expected catalog error")
	}
	if len(notifier.texts) != 0 {
		t.Fatalf("expected no acknowledgment, got %v", notifier.texts)
	}
}

func TestIngestVoiceDistinctFileIDsDoNotCollide(t *testing.T) {
	store := mediafs.New(t.TempDir())
	catalog := &stubCatalog{}

	svc := NewService(store, catalog, &stubDetector{}, &stubTranscoder{}, &stubNotifier{}, 16000, nil)

	first, err := svc.IngestVoice(context.Background(), 7, "Ann", "F1", []byte("one"))
	if err != nil {
		t.Fatalf("ingest first voice: %v", err)
	}
	second, err := svc.IngestVoice(context.Background(), 7, "Ann", "F2", []byte("two"))
	if err != nil {
		t.Fatalf("ingest second voice: %v", err)
	}

	if first.OriginalPath == second.OriginalPath {
		t.Fatalf("paths collide: %q", first.OriginalPath)
	}
	if len(catalog.rows) != 2 {
		t.Fatalf("expected two catalog rows, got %v", catalog.rows)
	}
}

func TestIngestPhotoAccepted(t *testing.T) {
	root := t.TempDir()
	store := mediafs.New(root)
	detector := &stubDetector{regions: []model.FaceRegion{{Row: 10, Col: 10, Scale: 40, Quality: 9}}}
	notifier := &stubNotifier{}

	svc := NewService(store, &stubCatalog{}, detector, &stubTranscoder{}, notifier, 16000, nil)

	photo, err := svc.IngestPhoto(context.Background(), 7, "Ann", "F3", []byte("jpg"))
	if err != nil {
		t.Fatalf("ingest photo: %v", err)
	}

	if !photo.HasFaces {
		t.Fatal("expected accepted classification")
	}
	accepted := filepath.Join(root, "photo", "face_Ann_F3.jpg")
	if photo.Path != accepted {
		t.Fatalf("expected accepted path %q, got %q", accepted, photo.Path)
	}
	if _, err := os.Stat(accepted); err != nil {
		t.Fatalf("accepted file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "photo", "photo_Ann_F3.jpg")); !os.IsNotExist(err) {
		t.Fatal("provisional file still present after accept")
	}
	if len(notifier.texts) != 1 || notifier.texts[0] != ui.MsgPhotoSaved {
		t.Fatalf("unexpected notifications %v", notifier.texts)
	}
}

func TestIngestPhotoRejected(t *testing.T) {
	root := t.TempDir()
	store := mediafs.New(root)
	notifier := &stubNotifier{}

	svc := NewService(store, &stubCatalog{}, &stubDetector{}, &stubTranscoder{}, notifier, 16000, nil)

	photo, err := svc.IngestPhoto(context.Background(), 7, "Bob", "F2", []byte("jpg"))
	if err != nil {
		t.Fatalf("ingest photo: %v", err)
	}

	if photo.HasFaces {
		t.Fatal("expected rejected classification")
	}
	if photo.Path != "" {
		t.Fatalf("expected empty path for rejected photo, got %q", photo.Path)
	}
	entries, err := os.ReadDir(filepath.Join(root, "photo"))
	if err != nil {
		t.Fatalf("read photo dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty photo dir, found %d entries", len(entries))
	}
	if len(notifier.texts) != 1 || notifier.texts[0] != ui.MsgPhotoRejected {
		t.Fatalf("unexpected notifications %v", notifier.texts)
	}
}

func TestIngestPhotoDetectorFailureLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	store := mediafs.New(root)
	detector := &stubDetector{err: errors.New("bad image")}
	notifier := &stubNotifier{}

	svc := NewService(store, &stubCatalog{}, detector, &stubTranscoder{}, notifier, 16000, nil)

	if _, err := svc.IngestPhoto(context.Background(), 7, "Bob", "F2", []byte("jpg")); err == nil {
		t.Fatal("expected detector error")
	}

	entries, err := os.ReadDir(filepath.Join(root, "photo"))
	if err != nil {
		t.Fatalf("read photo dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected provisional file cleaned up, found %d entries", len(entries))
	}
	if len(notifier.texts) != 0 {
		t.Fatalf("expected no reply on detector failure, got %v", notifier.texts)
	}
}
