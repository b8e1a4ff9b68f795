// Package cache keeps short-lived JSON entries under the cache directory,
// such as the streams embedded video ids resolved to.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/where"
)

// TTL bounds the age of an entry. Resolved stream URLs stop working after a few hours.
const TTL = time.Hour

func dir() string {
	path := filepath.Join(where.Cache(), "resolved")
	_ = filesystem.API().MkdirAll(path, os.ModePerm)
	return path
}

// Key derives a file-safe key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry at key into target. It reports false for missing,
// expired and unreadable entries.
func Read(key string, target any) bool {
	fs := filesystem.API()
	path := filepath.Join(dir(), key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data at key. The entry is replaced atomically.
func Write(key string, data any) error {
	fs := filesystem.API()
	path := filepath.Join(dir(), key)
	tmpPath := path + ".tmp"

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := fs.WriteFile(tmpPath, encoded, 0o644); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage removes expired entries.
func CollectGarbage() {
	fs := filesystem.API()
	err := fs.Walk(dir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > TTL {
			if err := fs.Remove(path); err != nil {
				log.Warnf("cache: remove %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Warnf("cache: %v", err)
	}
}
