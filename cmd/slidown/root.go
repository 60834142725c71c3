package main

import (
	"github.com/pacahon/slideshare"
	"github.com/pacahon/slideshare/config"
	"github.com/pacahon/slideshare/library/log"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE loads for the subcommands.
type app struct {
	cfgFile string
	raw     bool

	cfg    *config.Config
	client *slideshare.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "slidown",
		Short: "SlideShare API client and download service",
		Long: `slidown talks to the SlideShare API with a signed api key.
It fetches, searches, edits, deletes and uploads slideshows, and can serve
the slideshow download endpoint.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.initialize,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVar(&a.raw, "raw", false, "print the raw XML response")

	root.AddCommand(
		a.serveCmd(),
		a.getCmd(),
		a.tagCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.uploadCmd(),
	)
	return root
}

func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	log.Setup(cfg.Logging.Log())

	client, err := slideshare.NewClient(cfg.Credentials(), cfg.ClientOptions()...)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}
