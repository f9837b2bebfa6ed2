// Package profile switches the headset's audio card profile when it comes
// and goes.
package profile

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/austinkregel/g935-battery/pkg/config"
	"github.com/austinkregel/g935-battery/pkg/logging"
)

// Off is the profile name that disables the card.
const Off = "off"

// Switcher changes the profile of an audio card.
type Switcher interface {
	Switch(ctx context.Context, card, profile string) error
}

// Command runs an external tool (pactl by default) to switch profiles. It
// does not wait for the tool: the process is reaped in the background and a
// failure is only logged.
type Command struct {
	name string
	args []string
	log  *logging.Logger
}

// NewCommand builds a switcher from config. The card and profile are appended
// to cfg.Args on every call.
func NewCommand(cfg config.ProfileSwitchConfig, log *logging.Logger) *Command {
	return &Command{
		name: cfg.Command,
		args: append([]string(nil), cfg.Args...),
		log:  log,
	}
}

// Switch starts `<command> <args...> <card> <profile>` and returns once the
// process is running.
func (c *Command) Switch(ctx context.Context, card, profile string) error {
	args := append(append([]string(nil), c.args...), card, profile)
	// The switch outlives ctx; a disconnect seen during shutdown still applies.
	cmd := exec.Command(c.name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s %s failed to start: %w", c.name, strings.Join(args, " "), err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			c.log.Warn("profile switch failed",
				"command", c.name,
				"card", card,
				"profile", profile,
				"error", err,
				"stderr", strings.TrimSpace(stderr.String()),
			)
			return
		}
		c.log.Debug("profile switched", "card", card, "profile", profile)
	}()
	return nil
}
