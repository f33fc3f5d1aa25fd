// Package config defines the root command line of mousetrail.
package config

import (
	"github.com/mousetrail/mousetrail/internal/cmd"
	"github.com/mousetrail/mousetrail/internal/log"
)

// CLI is the kong root. Plot is the default command, so
// "mousetrail capture.pcapng 3 -o out.png" works without naming it.
type CLI struct {
	ConfigFile string     `name:"config" help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"MOUSETRAIL_CONFIG"`
	Log        log.Config `embed:"" prefix:"log."`

	Plot       cmd.Plot          `cmd:"" default:"withargs" help:"Plot the mouse trajectory of a capture"`
	Decode     cmd.Decode        `cmd:"" help:"List decoded mouse reports of a capture"`
	ConfigInit cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
