package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/playlist"
)

func (r *root) playlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"music"},
		Short:   "Manage the focus music playlist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTracks()
		},
	}

	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List saved tracks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTracks()
		},
	}
	add := &cobra.Command{
		Use:   "add <youtube link>",
		Short: "Save a YouTube video or playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			t, err := s.app.Playlist.Add(ctx, args[0])
			if err != nil {
				return fmt.Errorf("add track: %w", err)
			}
			r.println("Saved:", t.Title)
			return nil
		},
	}
	rm := &cobra.Command{
		Use:     "rm <#|id>",
		Aliases: []string{"delete"},
		Short:   "Remove a saved track",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			id := args[0]
			tracks := s.app.Playlist.Tracks()
			if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(tracks) {
				id = tracks[n-1].ID
			}
			if err := s.app.Playlist.Remove(id); err != nil {
				return fmt.Errorf("remove track: %w", err)
			}
			r.println("Removed", id)
			return nil
		},
	}

	cmd.AddCommand(ls, add, rm)
	return cmd
}

func (r *root) listTracks() error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()

	tbl := newTable("#", "TITLE", "KIND", "ID")
	for i, t := range s.app.Playlist.Tracks() {
		tbl.AddRow(i+1, t.Title, kind(t), faint(t.ID))
	}
	r.println(tbl)
	return nil
}

func kind(t playlist.Track) string {
	switch {
	case t.IsLocal:
		return "local"
	case t.IsPlaylist:
		return "playlist"
	}
	return "video"
}
