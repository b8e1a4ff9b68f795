package controller

import (
	"fmt"
	"net/url"

	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/protocol"
)

// Selection is a media choice: what kind of media and which one.
type Selection struct {
	Type MediaType
	Ref  string
}

// Command returns the load command for the selection.
func (s Selection) Command() (protocol.Command, bool) {
	switch s.Type {
	case MediaLocal:
		return protocol.LoadMedia(s.Ref), true
	case MediaEmbedded:
		return protocol.LoadEmbed(s.Ref), true
	default:
		return protocol.Command{}, false
	}
}

// Title is the title the engine announces when the selection is loaded.
func (s Selection) Title() string {
	if s.Type == MediaLocal {
		return player.MediaTitle(s.Ref)
	}
	return s.Ref
}

// ParseLink reads the startup selection from a deep link.
// The embed parameter wins over the media parameter. When neither is
// present the fallback source is selected.
func ParseLink(raw, fallback string) (Selection, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Selection{}, fmt.Errorf("parse link: %w", err)
	}

	return selectionFromQuery(u.Query(), fallback), nil
}

func selectionFromQuery(query url.Values, fallback string) Selection {
	if id := query.Get(constant.LinkEmbedParam); id != "" {
		return Selection{Type: MediaEmbedded, Ref: id}
	}

	if src := query.Get(constant.LinkMediaParam); src != "" {
		return Selection{Type: MediaLocal, Ref: src}
	}

	if fallback == "" {
		return Selection{}
	}

	return Selection{Type: MediaLocal, Ref: fallback}
}

// BuildLink rewrites base so that it carries exactly the given selection.
// Other query parameters of base are kept.
func BuildLink(base string, sel Selection) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse link base: %w", err)
	}

	query := u.Query()
	query.Del(constant.LinkMediaParam)
	query.Del(constant.LinkEmbedParam)

	switch sel.Type {
	case MediaEmbedded:
		query.Set(constant.LinkEmbedParam, sel.Ref)
	case MediaLocal:
		query.Set(constant.LinkMediaParam, sel.Ref)
	}

	u.RawQuery = query.Encode()
	return u.String(), nil
}
