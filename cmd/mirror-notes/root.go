package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mirror-notes/internal/app"
	"mirror-notes/internal/config"
	"mirror-notes/internal/logger"
)

type cli struct {
	viper      *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{viper: config.New()}

	root := &cobra.Command{
		Use:           "mirror-notes",
		Short:         "Notes that you can ask questions about.",
		Long:          "Keeps titled notes in a local file and forwards questions, with note context, to a remote language model. Without a subcommand the desktop window is opened.",
		Version:       app.AppVersion,
		SilenceUsage:  true,
		RunE:          c.runWindow,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ./mirror-notes.yaml or ~/.config/mirror-notes/mirror-notes.yaml)")
	flags.String("notes-file", "", "path of the notes file")
	flags.String("backend", "", "storage backend: json or bolt")
	flags.String("provider", "", "model provider: openai or gemini")
	flags.String("model", "", "model name")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	for key, name := range map[string]string{
		"notes_file":      "notes-file",
		"storage.backend": "backend",
		"llm.provider":    "provider",
		"llm.model":       "model",
		"log.level":       "log-level",
	} {
		if err := c.viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newAddCmd(c),
		newAskCmd(c),
		newImportCmd(c),
	)
	return root
}

func (c *cli) load(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(c.viper, c.configFile)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cmd.ErrOrStderr(), logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	return cfg, log, nil
}

// core loads configuration and the stored notes for a one-shot command.
func (c *cli) core(cmd *cobra.Command) (*app.Core, error) {
	cfg, log, err := c.load(cmd)
	if err != nil {
		return nil, err
	}

	core, err := app.NewCore(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := core.Notes.Load(cmd.Context()); err != nil {
		core.Close()
		return nil, err
	}
	return core, nil
}

func (c *cli) runWindow(cmd *cobra.Command, args []string) error {
	cfg, log, err := c.load(cmd)
	if err != nil {
		return err
	}

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("application initialization failed: %w", err)
	}
	return application.Run()
}
