// Package source loads raster sources for the picker from files or HTTP
// locators.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrLoad reports that a raster source could not be fetched or decoded.
// Failures are surfaced once; retrying is up to the caller.
var ErrLoad = errors.New("source: load failed")

// Load fetches and decodes the raster at the given locator. Locators with an
// http or https scheme are fetched over the network honoring ctx; anything
// else is treated as a file path. Supported formats are PNG, JPEG, GIF, TIFF
// and BMP.
func Load(ctx context.Context, locator string) (image.Image, error) {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return loadHTTP(ctx, locator)
	}
	return loadFile(locator)
}

func loadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoad, path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
	}
	return img, nil
}

func loadHTTP(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrLoad, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %s", ErrLoad, url, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, url, err)
	}
	return img, nil
}
