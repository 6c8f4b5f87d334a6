package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/ericfisherdev/passop/internal/output"
)

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Path ConfigPathCmd `cmd:"" help:"Show config file path"`
	Get  ConfigGetCmd  `cmd:"" help:"Get a configuration value"`
	Set  ConfigSetCmd  `cmd:"" help:"Set a configuration value"`
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(app *App) error {
	fmt.Fprintln(app.Out, app.ConfigPath)

	if _, err := os.Stat(app.ConfigPath); os.IsNotExist(err) {
		fmt.Fprintln(app.Err, "(file does not exist yet - will be created on first write)")
	} else {
		fmt.Fprintln(app.Err, "(file exists)")
	}
	return nil
}

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (server)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(app *App) error {
	value, err := app.Config.Get(cmd.Key)
	if err != nil {
		return output.NewCLIError(output.ExitNotFound, fmt.Sprintf("Unknown config key: %s", cmd.Key))
	}
	fmt.Fprintln(app.Out, value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set (server)"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(app *App) error {
	if cmd.Key == "server" {
		u, err := url.Parse(cmd.Value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return output.NewCLIError(output.ExitUsage, fmt.Sprintf("Invalid server URL: %s", cmd.Value)).
				WithHint("use a full URL such as http://localhost:3000")
		}
	}

	if err := app.Config.Set(cmd.Key, cmd.Value); err != nil {
		return output.NewCLIError(output.ExitUsage, fmt.Sprintf("Unknown config key: %s", cmd.Key))
	}

	if err := app.Config.Save(app.ConfigPath); err != nil {
		return output.NewCLIError(output.ExitConfigError, fmt.Sprintf("Failed to set config: %v", err))
	}

	fmt.Fprintf(app.Err, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}
