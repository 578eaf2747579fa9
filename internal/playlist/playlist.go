// Package playlist keeps the saved list of background audio tracks: the
// bundled local track, the default lofi streams and anything the user adds.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/Alixocracy/jast/internal/store"
)

const StorageKey = "jast-youtube-saved-playlist"

var (
	ErrUnrecognized = errors.New("not a YouTube video or playlist link")
	ErrDuplicate    = errors.New("track already saved")
	ErrLocalTrack   = errors.New("the local track cannot be removed")
	ErrNotFound     = errors.New("track not found")
)

type Track struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	IsPlaylist bool   `json:"isPlaylist"`
	IsLocal    bool   `json:"isLocal,omitempty"`
}

// Local is always first and cannot be removed.
var Local = Track{ID: "local-dreamer", URL: "/audio/dreamer.mp3", Title: "Dreamer (Local)", IsLocal: true}

// Defaults seed the playlist, Local first.
var Defaults = []Track{
	Local,
	video("cKxRFlXYquo", "Lofi Hip Hop Radio"),
	video("RG2IK8oRZNA", "Chill Lofi Beats"),
	video("k2w_tU8Cy9c", "Study Music Mix"),
	video("k9ts6p63ns0", "Relaxing Lofi"),
	video("sAcj8me7wGI", "Focus Beats"),
	video("acjs8sDZDro", "Peaceful Lofi"),
}

func video(id, title string) Track {
	return Track{ID: id, URL: "https://www.youtube.com/watch?v=" + id, Title: title}
}

func isDefault(id string) bool {
	for _, d := range Defaults {
		if d.ID == id {
			return true
		}
	}
	return false
}

var (
	videoURLRe   = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	bareIDRe     = regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`)
	playlistIDRe = regexp.MustCompile(`[?&]list=([^&\n?#]+)`)
)

// VideoID extracts a video id from a watch, short or embed link, or accepts
// a bare 11-character id.
func VideoID(url string) (string, bool) {
	if m := videoURLRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := bareIDRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// PlaylistID extracts the list= parameter.
func PlaylistID(url string) (string, bool) {
	if m := playlistIDRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// FallbackTitle names a track from its ids alone.
func FallbackTitle(url string) string {
	if pid, ok := PlaylistID(url); ok {
		return "Playlist " + prefix(pid, 6) + "..."
	}
	if vid, ok := VideoID(url); ok {
		return "Video " + prefix(vid, 6) + "..."
	}
	return "Unknown"
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Titler looks up a video's title.
type Titler interface {
	Title(ctx context.Context, videoID string) (string, error)
}

// Playlist is the saved track list. It is safe for concurrent use; title
// lookups run without holding the lock.
type Playlist struct {
	kv     store.KV
	titler Titler
	log    *slog.Logger

	mu     sync.Mutex
	tracks []Track
}

// Load reads the saved playlist, restoring the defaults in front of any user
// tracks. The merged list is written back.
func Load(kv store.KV, titler Titler, log *slog.Logger) (*Playlist, error) {
	if log == nil {
		log = slog.Default()
	}
	p := &Playlist{kv: kv, titler: titler, log: log}

	var saved []Track
	err := store.GetJSON(kv, StorageKey, &saved)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn("playlist: ignoring saved playlist", "err", err)
		saved = nil
	}
	merged := append([]Track{}, Defaults...)
	for _, t := range saved {
		if t.IsLocal || isDefault(t.ID) {
			continue
		}
		merged = append(merged, t)
	}
	p.tracks = merged
	if err := p.save(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Playlist) Tracks() []Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Add saves a YouTube video or playlist link. Video titles are looked up
// when a Titler is configured; otherwise, or on lookup failure, a fallback
// title is used.
func (p *Playlist) Add(ctx context.Context, url string) (Track, error) {
	vid, isVideo := VideoID(url)
	pid, isList := PlaylistID(url)
	if !isVideo && !isList {
		return Track{}, fmt.Errorf("%q: %w", url, ErrUnrecognized)
	}
	id := vid
	if isList {
		id = pid
	}
	if p.has(id) {
		return Track{}, fmt.Errorf("%s: %w", id, ErrDuplicate)
	}

	title := FallbackTitle(url)
	if isVideo && !isList && p.titler != nil {
		if got, err := p.titler.Title(ctx, vid); err != nil {
			p.log.Warn("playlist: title lookup failed", "video", vid, "err", err)
		} else if got != "" {
			title = got
		}
	}

	t := Track{ID: id, URL: url, Title: title, IsPlaylist: isList}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, old := range p.tracks {
		if old.ID == id {
			return Track{}, fmt.Errorf("%s: %w", id, ErrDuplicate)
		}
	}
	p.tracks = append(p.tracks, t)
	if err := p.save(); err != nil {
		p.tracks = p.tracks[:len(p.tracks)-1]
		return Track{}, err
	}
	return t, nil
}

// Remove deletes a saved track. The local track stays.
func (p *Playlist) Remove(id string) error {
	if id == Local.ID {
		return ErrLocalTrack
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := -1
	for i, t := range p.tracks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	next := append(append([]Track{}, p.tracks[:idx]...), p.tracks[idx+1:]...)
	prev := p.tracks
	p.tracks = next
	if err := p.save(); err != nil {
		p.tracks = prev
		return err
	}
	return nil
}

func (p *Playlist) has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.tracks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (p *Playlist) save() error {
	if err := store.SetJSON(p.kv, StorageKey, p.tracks); err != nil {
		return fmt.Errorf("save playlist: %w", err)
	}
	return nil
}
