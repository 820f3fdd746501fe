package mediafs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/enums"
)

// Store owns the on-disk media layout. Paths are deterministic per
// (category, sender, fileID), so two uploads with distinct file ids never
// collide.
type Store struct {
	root string
}

func New(root string) *Store {
	if root == "" {
		root = "."
	}
	return &Store{root: root}
}

// Write persists raw media bytes under the category directory, creating
// the directory if absent, and returns the written path.
func (s *Store) Write(category enums.MediaCategory, sender, fileID string, data []byte) (string, error) {
	dir := filepath.Join(s.root, category.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir: %w", category, err)
	}

	path := filepath.Join(dir, fileName(category, sender, fileID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// AcceptedPhotoPath is the terminal name a photo gets once face detection
// accepted it.
func (s *Store) AcceptedPhotoPath(sender, fileID string) string {
	return filepath.Join(s.root, enums.CategoryPhoto.Dir(), fmt.Sprintf("face_%s_%s.jpg", sender, fileID))
}

// DerivedAudioPath returns the path for the transcoded copy of a voice
// message, creating the audio_wav directory if absent.
func (s *Store) DerivedAudioPath(sender, fileID string) (string, error) {
	dir := filepath.Join(s.root, enums.CategoryAudioWAV.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir: %w", enums.CategoryAudioWAV, err)
	}
	return filepath.Join(dir, fmt.Sprintf("audio_%s_%s.wav", sender, fileID)), nil
}

func (s *Store) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename %s: %w", oldPath, err)
	}
	return nil
}

func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *Store) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ListCategory returns the files currently present in a category
// directory. A missing directory lists as empty.
func (s *Store) ListCategory(category enums.MediaCategory) ([]string, error) {
	dir := filepath.Join(s.root, category.Dir())
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s dir: %w", category, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}

func fileName(category enums.MediaCategory, sender, fileID string) string {
	switch category {
	case enums.CategoryAudioOGG:
		return fmt.Sprintf("audio_%s_%s.ogg", sender, fileID)
	case enums.CategoryAudioWAV:
		return fmt.Sprintf("audio_%s_%s.wav", sender, fileID)
	default:
		return fmt.Sprintf("photo_%s_%s.jpg", sender, fileID)
	}
}
