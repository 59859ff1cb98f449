// Package media stores hero background images and their WebP renditions
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
)

// ErrUnsupportedMedia is returned for uploads that are not a supported image.
var ErrUnsupportedMedia = errors.New("unsupported media type")

const heroSubdir = "hero"

var acceptedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ProcessedImage describes what an upload produced on disk.
type ProcessedImage struct {
	Filename   string
	Path       string
	URL        string
	MimeType   string
	Width      int
	Height     int
	Renditions map[string]string
}

// ImageProcessor writes uploads under basePath and serves them below urlPrefix.
type ImageProcessor struct {
	basePath  string
	urlPrefix string
	widths    []int
	quality   int
}

// NewImageProcessor creates a processor producing one WebP rendition per width.
func NewImageProcessor(basePath, urlPrefix string, widths []int, quality int) *ImageProcessor {
	sorted := append([]int(nil), widths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return &ImageProcessor{
		basePath:  basePath,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		widths:    sorted,
		quality:   quality,
	}
}

// Sniff returns the MIME type of data, or ErrUnsupportedMedia.
func Sniff(data []byte) (string, string, error) {
	if !filetype.IsImage(data) {
		return "", "", ErrUnsupportedMedia
	}
	kind, err := filetype.Match(data)
	if err != nil || !acceptedMIME[kind.MIME.Value] {
		return "", "", ErrUnsupportedMedia
	}
	return kind.MIME.Value, kind.Extension, nil
}

// ProcessUpload stores the original and its renditions. Widths at or above the
// original width are skipped rather than upscaled.
func (p *ImageProcessor) ProcessUpload(data []byte, originalName, id string) (*ProcessedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	mimeType, ext, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	img, err := decode(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	targetDir := filepath.Join(p.basePath, heroSubdir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	basename := fileBase(originalName, id)
	filename := basename + "." + ext
	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write original image: %w", err)
	}

	bounds := img.Bounds()
	result := &ProcessedImage{
		Filename:   filename,
		Path:       fullPath,
		URL:        p.url(filename),
		MimeType:   mimeType,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Renditions: make(map[string]string),
	}

	var written []string
	for _, width := range p.widths {
		if width >= bounds.Dx() {
			continue
		}
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)
		renditionName := fmt.Sprintf("%s_%dpx.webp", basename, width)
		renditionPath := filepath.Join(targetDir, renditionName)

		if err := webp.Save(renditionPath, resized, &webp.Options{Quality: float32(p.quality)}); err != nil {
			for _, w := range append(written, fullPath) {
				os.Remove(w)
			}
			return nil, fmt.Errorf("failed to save WebP rendition %s: %w", renditionName, err)
		}
		written = append(written, renditionPath)
		result.Renditions[strconv.Itoa(width)] = p.url(renditionName)
	}

	return result, nil
}

// Delete removes the original and every rendition behind the given URLs.
func (p *ImageProcessor) Delete(urls ...string) error {
	var err error
	for _, u := range urls {
		fullPath, perr := p.pathFor(u)
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		if rerr := os.Remove(fullPath); rerr != nil && !os.IsNotExist(rerr) {
			err = multierr.Append(err, fmt.Errorf("failed to remove %s: %w", fullPath, rerr))
		}
	}
	return err
}

func (p *ImageProcessor) url(filename string) string {
	return path.Join(p.urlPrefix, heroSubdir, filename)
}

func (p *ImageProcessor) pathFor(u string) (string, error) {
	rel := strings.TrimPrefix(u, p.urlPrefix+"/")
	if rel == u || strings.Contains(rel, "..") {
		return "", fmt.Errorf("media url %q is outside %s", u, p.urlPrefix)
	}
	return filepath.Join(p.basePath, filepath.FromSlash(rel)), nil
}

func fileBase(originalName, id string) string {
	name := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base := slug.Make(name)
	if base == "" {
		base = heroSubdir
	}
	return base + "-" + strings.ToLower(id)
}

func decode(data []byte, mimeType string) (image.Image, error) {
	if mimeType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
