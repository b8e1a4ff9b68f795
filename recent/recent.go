// Package recent remembers which media were loaded and suggests them back.
package recent

import (
	"cmp"
	"errors"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Entry is one remembered media reference.
type Entry struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref"`
	Rank int    `json:"rank"`
}

// Registry persists entries keyed by kind and reference.
type Registry struct {
	path  string
	cache *gache.Cache[map[string]*Entry]
}

// Open returns the registry stored at the default location.
func Open() *Registry {
	return At(where.Recent())
}

// At returns a registry stored at path.
func At(path string) *Registry {
	return &Registry{
		path: path,
		cache: gache.New[map[string]*Entry](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func entryKey(kind, ref string) string {
	return kind + ":" + ref
}

func (r *Registry) load() map[string]*Entry {
	cached, expired, err := r.cache.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*Entry)
	}
	return cached
}

// Remember records a load of ref, ranking it above refs loaded less often.
// Nothing is recorded when remembering is disabled.
func (r *Registry) Remember(kind, ref string) error {
	if !viper.GetBool(key.RecentRemember) {
		return nil
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	entries := r.load()
	if entry, ok := entries[entryKey(kind, ref)]; ok {
		entry.Rank++
	} else {
		entries[entryKey(kind, ref)] = &Entry{Kind: kind, Ref: ref, Rank: 1}
	}

	return r.cache.Set(entries)
}

// SuggestMany returns remembered entries whose reference fuzzily matches q,
// most loaded first, at most recent.limit of them.
func (r *Registry) SuggestMany(q string) []Entry {
	if !viper.GetBool(key.RecentRemember) {
		return nil
	}

	q = strings.TrimSpace(q)
	matches := lo.Filter(lo.Values(r.load()), func(e *Entry, _ int) bool {
		return fuzzy.MatchFold(q, e.Ref)
	})

	slices.SortFunc(matches, func(a, b *Entry) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return cmp.Compare(a.Ref, b.Ref)
	})

	if limit := viper.GetInt(key.RecentLimit); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return lo.Map(matches, func(e *Entry, _ int) Entry {
		return *e
	})
}

// Suggest returns the best match for q.
func (r *Registry) Suggest(q string) mo.Option[Entry] {
	suggestions := r.SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[Entry]()
	}
	return mo.Some(suggestions[0])
}

// Clear forgets every entry.
func (r *Registry) Clear() error {
	err := filesystem.API().Remove(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
