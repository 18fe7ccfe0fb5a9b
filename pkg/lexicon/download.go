package lexicon

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	urlpath "path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/fcbond/ChainNet/pkg/lmf"
)

// Published wordnet archives run to hundreds of megabytes.
var downloadClient = &http.Client{Timeout: 15 * time.Minute}

// Download fetches url into the store's downloads directory and returns
// the local path. An already-downloaded file is reused unless force is
// set.
func (s *Store) Download(url string, force bool) (string, error) {
	dir := filepath.Join(s.dir, "downloads")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating downloads directory: %w", err)
	}
	dest := filepath.Join(dir, urlpath.Base(url))
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return dest, nil
		}
	}

	resp, err := downloadClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(dir, "download-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing download: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("moving download into place: %w", err)
	}
	return dest, nil
}

// ImportFile imports the WN-LMF content of a downloaded file. The file
// may be plain XML or a gzip, tar.gz or tar.xz archive holding one or
// more XML lexicons.
func (s *Store) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".tar.xz") || strings.HasSuffix(path, ".txz"):
		r, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("reading xz archive %s: %w", path, err)
		}
		return s.importTar(tar.NewReader(r))
	case strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("reading gzip archive %s: %w", path, err)
		}
		defer r.Close()
		return s.importTar(tar.NewReader(r))
	case strings.HasSuffix(path, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("reading gzip file %s: %w", path, err)
		}
		defer r.Close()
		return s.importReader(r, strings.TrimSuffix(path, ".gz"))
	default:
		return s.importReader(f, path)
	}
}

func (s *Store) importReader(r io.Reader, name string) error {
	res, err := lmf.Read(r)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return s.Import(res)
}

func (s *Store) importTar(tr *tar.Reader) error {
	imported := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".xml") {
			continue
		}
		if err := s.importReader(tr, hdr.Name); err != nil {
			return err
		}
		imported++
	}
	if imported == 0 {
		return fmt.Errorf("archive contains no .xml lexicon")
	}
	return nil
}
