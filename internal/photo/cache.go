package photo

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Cache handles local caching of resolved contact photos (logo-service or
// placeholder images). Embedded data-URL photos are never cached; they are
// stored on the contact record itself.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
}

// NewCache creates a new photo cache at the specified directory.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetPhoto returns the cached photo for a contact, fetching and caching it
// first when absent. Returns the file path to the cached image, or an empty
// string when the URL is empty or embedded.
func (c *Cache) GetPhoto(contactID, photoURL string) (string, error) {
	if photoURL == "" || IsEmbedded(photoURL) {
		return "", nil
	}

	cachePath := filepath.Join(c.cacheDir, c.photoFilename(contactID, photoURL))

	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := c.fetchAndCache(photoURL, cachePath); err != nil {
		return "", err
	}

	return cachePath, nil
}

// InvalidatePhoto removes any cached images for a contact. Called when the
// contact's website or email changes and the photo URL is re-resolved.
func (c *Cache) InvalidatePhoto(contactID string) error {
	pattern := filepath.Join(c.cacheDir, fmt.Sprintf("photo_%s_*", contactID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// photoFilename generates a unique filename from the contact ID and a hash
// of the source URL.
func (c *Cache) photoFilename(contactID, photoURL string) string {
	hash := sha256.Sum256([]byte(photoURL))
	return fmt.Sprintf("photo_%s_%x.img", contactID, hash[:8])
}

// fetchAndCache downloads a photo and saves it to the cache.
func (c *Cache) fetchAndCache(url, cachePath string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "CogniCard/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch photo: status %d", resp.StatusCode)
	}

	// Create temp file in same directory for atomic write
	tmpFile, err := os.CreateTemp(c.cacheDir, "photo_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return err
	}

	tmpFile.Close()

	return os.Rename(tmpPath, cachePath)
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}
