// context.go defines the Context interface handed to extensions.
//
// Extensions receive Context during Init(), not at construction: they
// register in init() before flags are parsed, and the store location is
// only known once the root command has run its pre-run hook.

package extension

import (
	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/service"
)

// Context gives extensions access to the open tag service and the
// effective configuration.
type Context interface {
	// Service returns the tag service.
	Service() service.Service

	// Config returns the merged user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }
