package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pacahon/slideshare"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// userFlags are the per-call credentials overriding the configured user.
type userFlags struct {
	username string
	password string
}

func (u *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&u.username, "username", "u", "", "SlideShare username (defaults to slideshare.username)")
	cmd.Flags().StringVar(&u.password, "password", "", "SlideShare password (defaults to slideshare.password)")
}

// privacyFlags map onto slideshare.Privacy.
type privacyFlags struct {
	private      bool
	secretURL    bool
	allowEmbeds  bool
	shareContact bool
	srcPublic    bool
}

func (p *privacyFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.private, "private", false, "make the slideshow private")
	cmd.Flags().BoolVar(&p.secretURL, "secret-url", false, "generate a secret url (needs --private)")
	cmd.Flags().BoolVar(&p.allowEmbeds, "allow-embeds", false, "allow embeds (needs --private)")
	cmd.Flags().BoolVar(&p.shareContact, "share-with-contacts", false, "share with contacts (needs --private)")
	cmd.Flags().BoolVar(&p.srcPublic, "src-public", true, "let users download the source file")
}

func (p *privacyFlags) privacy(cmd *cobra.Command) slideshare.Privacy {
	privacy := slideshare.Privacy{
		MakeSlideshowPrivate: p.private,
		GenerateSecretURL:    p.secretURL,
		AllowEmbeds:          p.allowEmbeds,
		ShareWithContacts:    p.shareContact,
	}
	if cmd.Flags().Changed("src-public") {
		privacy.MakeSrcPublic = slideshare.Bool(p.srcPublic)
	}
	return privacy
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(slideshare.ErrInvalidArgument, "invalid slideshow id: %s", arg)
	}
	return id, nil
}

func (a *app) getCmd() *cobra.Command {
	var (
		user       userFlags
		detailed   bool
		transcript bool
		noTags     bool
	)
	cmd := &cobra.Command{
		Use:   "get <id|url>",
		Short: "Show a slideshow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := slideshare.GetSlideshowOptions{
				Username: user.username,
				Password: user.password,
			}
			if id, err := strconv.Atoi(args[0]); err == nil {
				opts.ID = id
			} else {
				opts.URL = args[0]
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = slideshare.Bool(detailed)
			}
			if cmd.Flags().Changed("transcript") {
				opts.GetTranscript = slideshare.Bool(transcript)
			}
			if cmd.Flags().Changed("exclude-tags") {
				opts.ExcludeTags = slideshare.Bool(noTags)
			}

			resp, err := a.client.GetSlideshow(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if a.raw {
				return printRaw(cmd.OutOrStdout(), resp)
			}

			var slide slideshare.Slideshow
			if err := resp.Decode(&slide); err != nil {
				return err
			}
			printSlideshow(cmd.OutOrStdout(), &slide)
			return nil
		},
	}
	user.register(cmd)
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include optional information such as tags")
	cmd.Flags().BoolVar(&transcript, "transcript", false, "include the transcript (needs --detailed)")
	cmd.Flags().BoolVar(&noTags, "exclude-tags", false, "exclude tags from the detailed information")
	return cmd
}

func (a *app) tagCmd() *cobra.Command {
	var (
		limit    string
		offset   string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "tag <tag>",
		Short: "List slideshows carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := slideshare.TagOptions{}
			if limit != "" {
				opts.Limit = limit
			}
			if offset != "" {
				opts.Offset = offset
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = slideshare.Bool(detailed)
			}

			resp, err := a.client.GetSlideshowsByTag(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if a.raw {
				return printRaw(cmd.OutOrStdout(), resp)
			}

			var result slideshare.TagResult
			if err := resp.Decode(&result); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d slideshows\n", result.Name, result.Count)
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for i := range result.Slideshows {
				s := &result.Slideshows[i]
				fmt.Fprintf(out, "• %d %s\n  %s\n", s.ID, s.Title, s.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&limit, "limit", "l", "", "number of results (default 10)")
	cmd.Flags().StringVarP(&offset, "offset", "o", "", "offset of the first result")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include optional information such as tags")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var (
		user        userFlags
		privacy     privacyFlags
		title       string
		description string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the title, description, tags or privacy of a slideshow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			opts := slideshare.EditOptions{
				Username: user.username,
				Password: user.password,
				Title:    title,
				Tags:     tags,
				Privacy:  privacy.privacy(cmd),
			}
			if cmd.Flags().Changed("description") {
				opts.Description = slideshare.String(description)
			}

			resp, err := a.client.EditSlideshow(cmd.Context(), id, opts)
			if err != nil {
				return err
			}
			if a.raw {
				return printRaw(cmd.OutOrStdout(), resp)
			}
			var edited slideshare.SlideshowEdited
			if err := resp.Decode(&edited); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited slideshow %d\n", edited.SlideshowID)
			return nil
		},
	}
	user.register(cmd)
	privacy.register(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var user userFlags
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a slideshow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.client.DeleteSlideshow(cmd.Context(), id, slideshare.DeleteOptions{
				Username: user.username,
				Password: user.password,
			})
			if err != nil {
				return err
			}
			if a.raw {
				return printRaw(cmd.OutOrStdout(), resp)
			}
			var deleted slideshare.SlideshowDeleted
			if err := resp.Decode(&deleted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted slideshow %d\n", deleted.SlideshowID)
			return nil
		},
	}
	user.register(cmd)
	return cmd
}

func (a *app) uploadCmd() *cobra.Command {
	var (
		user        userFlags
		privacy     privacyFlags
		file        string
		uploadURL   string
		description string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "upload <title>",
		Short: "Upload a deck from a local file or a public url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && uploadURL == "" {
				return errors.Wrap(slideshare.ErrInvalidArgument, "one of --file or --url is required")
			}
			resp, err := a.client.UploadSlideshow(cmd.Context(), args[0], slideshare.UploadOptions{
				SrcFile:     file,
				UploadURL:   uploadURL,
				Username:    user.username,
				Password:    user.password,
				Description: description,
				Tags:        tags,
				Privacy:     privacy.privacy(cmd),
			})
			if err != nil {
				return err
			}
			if a.raw {
				return printRaw(cmd.OutOrStdout(), resp)
			}
			var uploaded slideshare.SlideshowUploaded
			if err := resp.Decode(&uploaded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded slideshow %d\n", uploaded.SlideshowID)
			return nil
		},
	}
	user.register(cmd)
	privacy.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "local file to upload")
	cmd.Flags().StringVar(&uploadURL, "url", "", "public url SlideShare fetches the deck from")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags")
	return cmd
}

func printRaw(w io.Writer, resp *slideshare.Response) error {
	_, err := fmt.Fprintln(w, string(resp.Raw))
	return err
}

func printSlideshow(w io.Writer, s *slideshare.Slideshow) {
	fmt.Fprintf(w, "%s (%d)\n", s.Title, s.ID)
	fmt.Fprintf(w, "  URL: %s\n", s.URL)
	fmt.Fprintf(w, "  Owner: %s\n", s.Username)
	if s.Format != "" {
		fmt.Fprintf(w, "  Format: %s\n", s.Format)
	}
	if s.Download && s.DownloadURL != "" {
		fmt.Fprintf(w, "  Download: %s\n", s.DownloadURL)
	}
	if tags := s.TagNames(); len(tags) > 0 {
		fmt.Fprintf(w, "  Tags: %s\n", strings.Join(tags, ", "))
	}
}
