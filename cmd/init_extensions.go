/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs the store runs. The service is created once and shared
// across all extensions via the Context.

package cmd

import (
	"sync"

	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/tagger"
	"github.com/spf13/cobra"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store
// initialisation. Core bootstrap commands are listed here; anything else
// implements extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *tagger.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the tag service and injects it into extensions.
func initExtensions(cmd *cobra.Command) error {
	initOnce.Do(func() {
		svc, err := tagger.New(cmd.Context(), DB(), Backend())
		if err != nil {
			initErr = err
			return
		}
		extService = svc

		log.SetProject(svc.Location())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = err
					return
				}
			}
		}
	})
	return initErr
}

// Context returns the shared extension context, or nil before init.
func Context() extension.Context { return extContext }

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, c := range ext.Commands() {
				rootCmd.AddCommand(c)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
