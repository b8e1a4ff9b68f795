package player

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/playshell/playshell/filesystem"
)

// ErrNotMedia is returned for sources that are neither audio nor video.
var ErrNotMedia = errors.New("not a media file")

// headSize is how many leading bytes filetype needs to match any type.
const headSize = 261

// IsRemote reports whether src is a URL rather than a filesystem path.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// MediaTitle derives a display title from a source: its file name.
func MediaTitle(src string) string {
	if IsRemote(src) {
		u, _ := url.Parse(src)
		if name := path.Base(u.Path); name != "." && name != "/" {
			return name
		}
		return u.Host
	}

	return filepath.Base(src)
}

// ProbeFile reads the head of a local source and checks that it holds audio or video.
// Remote sources are accepted as is.
func ProbeFile(src string) error {
	if IsRemote(src) {
		return nil
	}

	file, err := filesystem.API().Open(src)
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, headSize)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", src, err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return fmt.Errorf("match %s: %w", src, err)
	}

	if kind.MIME.Type != "audio" && kind.MIME.Type != "video" {
		return fmt.Errorf("%s: %w", src, ErrNotMedia)
	}

	return nil
}

// ProbeName checks only that the extension of src names an audio or video type.
func ProbeName(src string) error {
	name := src
	if IsRemote(src) {
		name = MediaTitle(src)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	kind := filetype.GetType(ext)
	if kind == filetype.Unknown || (kind.MIME.Type != "audio" && kind.MIME.Type != "video") {
		return fmt.Errorf("%s: %w", src, ErrNotMedia)
	}

	return nil
}
