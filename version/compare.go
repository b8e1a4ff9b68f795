// Package version compares dotted version strings such as the ones printed
// by mpv and yt-dlp.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?`)

// Extract returns the first version-looking token of s, such as "0.38.0"
// from "mpv 0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects".
func Extract(s string) (string, bool) {
	found := versionPattern.FindString(s)
	return strings.TrimPrefix(found, "v"), found != ""
}

// Compare returns 1 if a > b, -1 if a < b and 0 if they are equal.
// A missing patch component counts as zero.
func Compare(a, b string) (int, error) {
	type version struct {
		major, minor, patch int
	}

	parse := func(s string) (version, error) {
		var v version
		s = strings.TrimPrefix(s, "v")
		if strings.Count(s, ".") == 1 {
			s += ".0"
		}
		_, err := fmt.Sscanf(s, "%d.%d.%d", &v.major, &v.minor, &v.patch)
		if err != nil {
			return v, fmt.Errorf("parse version %q: %w", s, err)
		}
		return v, nil
	}

	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

// AtLeast reports whether have is the same as or newer than want.
func AtLeast(have, want string) bool {
	c, err := Compare(have, want)
	return err == nil && c >= 0
}
