package playlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/store"
)

type stubTitler struct {
	title string
	err   error
}

func (s stubTitler) Title(context.Context, string) (string, error) { return s.title, s.err }

func newKV(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ids(ts []Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":  "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=abc":          "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":    "dQw4w9WgXcQ",
		"dQw4w9WgXcQ":                                  "dQw4w9WgXcQ",
	}
	for in, want := range cases {
		got, ok := VideoID(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := VideoID("https://example.com/video")
	assert.False(t, ok)
}

func TestPlaylistIDAndFallbackTitle(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabcdef123"
	pid, ok := PlaylistID(url)
	require.True(t, ok)
	assert.Equal(t, "PLabcdef123", pid)
	assert.Equal(t, "Playlist PLabcd...", FallbackTitle(url))
	assert.Equal(t, "Video dQw4w9...", FallbackTitle("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "Unknown", FallbackTitle("nothing"))
}

func TestLoadSeedsDefaults(t *testing.T) {
	kv := newKV(t)
	p, err := Load(kv, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ids(Defaults), ids(p.Tracks()))
	assert.True(t, p.Tracks()[0].IsLocal)

	_, err = kv.Get(StorageKey)
	assert.NoError(t, err, "seeded playlist is written back")
}

func TestLoadMergesUserTracksAfterDefaults(t *testing.T) {
	kv := newKV(t)
	kv.Set(StorageKey, `[{"id":"user1","url":"u","title":"Mine","isPlaylist":false},{"id":"cKxRFlXYquo","url":"x","title":"Old","isPlaylist":false}]`)

	p, err := Load(kv, nil, nil)
	require.NoError(t, err)
	want := append(ids(Defaults), "user1")
	assert.Equal(t, want, ids(p.Tracks()))
}

func TestLoadMalformed(t *testing.T) {
	kv := newKV(t)
	kv.Set(StorageKey, "][")
	p, err := Load(kv, nil, nil)
	require.NoError(t, err)
	assert.Len(t, p.Tracks(), len(Defaults))
}

func TestAdd(t *testing.T) {
	p, err := Load(newKV(t), stubTitler{title: "Rain Sounds"}, nil)
	require.NoError(t, err)

	tr, err := p.Add(context.Background(), "https://youtu.be/abcdefghijk")
	require.NoError(t, err)
	assert.Equal(t, Track{ID: "abcdefghijk", URL: "https://youtu.be/abcdefghijk", Title: "Rain Sounds"}, tr)

	pl, err := p.Add(context.Background(), "https://www.youtube.com/playlist?list=PL123456789")
	require.NoError(t, err)
	assert.True(t, pl.IsPlaylist)
	assert.Equal(t, "Playlist PL1234...", pl.Title)

	_, err = p.Add(context.Background(), "https://youtu.be/abcdefghijk")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = p.Add(context.Background(), "not a link")
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestAddTitleLookupFails(t *testing.T) {
	p, err := Load(newKV(t), stubTitler{err: errors.New("offline")}, nil)
	require.NoError(t, err)
	tr, err := p.Add(context.Background(), "abcdefghijk")
	require.NoError(t, err)
	assert.Equal(t, "Video abcdef...", tr.Title)
}

func TestRemove(t *testing.T) {
	kv := newKV(t)
	p, err := Load(kv, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Remove(Local.ID), ErrLocalTrack)
	assert.ErrorIs(t, p.Remove("missing"), ErrNotFound)
	require.NoError(t, p.Remove("k2w_tU8Cy9c"))
	assert.NotContains(t, ids(p.Tracks()), "k2w_tU8Cy9c")
}

func TestOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=abcdefghijk", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{"title":"Deep Focus"}`))
	}))
	defer srv.Close()

	o := &OEmbed{BaseURL: srv.URL, HTTP: srv.Client()}
	title, err := o.Title(context.Background(), "abcdefghijk")
	require.NoError(t, err)
	assert.Equal(t, "Deep Focus", title)
}

func TestOEmbedNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	o := &OEmbed{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := o.Title(context.Background(), "abcdefghijk")
	assert.Error(t, err)
}
