package terminal

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SummarizeImage describes an image reference in one short line. Data URIs
// are reduced to their MIME type and decoded size.
func SummarizeImage(ref string) string {
	mime, data, ok := parseDataURI(ref)
	if !ok {
		return ref
	}
	size := base64.StdEncoding.DecodedLen(len(data))
	return fmt.Sprintf("%s，約 %.1f KB", mime, float64(size)/1024)
}

// ImageWriter stores inline scene images as files in one directory per run.
// Files are named by game and transcript index, so a replayed session never
// overwrites the pictures of an earlier one.
type ImageWriter struct {
	dir  string
	game int
}

// NewImageWriter creates dir/<run id> for this run's images.
func NewImageWriter(dir string) (*ImageWriter, error) {
	run := filepath.Join(dir, uuid.NewString())
	if err := os.MkdirAll(run, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &ImageWriter{dir: run, game: 1}, nil
}

// Dir is where images are written.
func (w *ImageWriter) Dir() string { return w.dir }

// NextGame starts numbering files for a new play-through.
func (w *ImageWriter) NextGame() { w.game++ }

// Save writes the image of transcript entry i of the current game and
// returns its path. Hosted
// URLs are not downloaded; Save returns "" for them.
func (w *ImageWriter) Save(i int, ref string) (string, error) {
	mime, data, ok := parseDataURI(ref)
	if !ok {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("game-%02d-scene-%02d%s", w.game, i, extensionFor(mime)))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

func parseDataURI(ref string) (mime, data string, ok bool) {
	rest, found := strings.CutPrefix(ref, "data:")
	if !found {
		return "", "", false
	}
	meta, data, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", "", false
	}
	return mime, data, true
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	default:
		return ".img"
	}
}
