package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Server     string `help:"PassOP server URL (default from config file, else http://localhost:3000)" env:"PASSOP_SERVER" placeholder:"URL"`
	ConfigFile string `help:"Client config file" name:"config-file" env:"PASSOP_CONFIG" default:"${config_path}" type:"path"`
	Verbose    bool   `help:"Log HTTP requests to stderr" short:"v" env:"PASSOP_VERBOSE"`
}

// stdinIsTerminal reports whether prompts can read without echo.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
