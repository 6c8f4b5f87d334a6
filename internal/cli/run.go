package cli

import (
	"context"
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ericfisherdev/passop/internal/config"
	"github.com/ericfisherdev/passop/internal/output"
)

// Run parses args, runs the selected command and returns the process exit
// code. exit is called by kong for --help; nil means os.Exit.
func Run(ctx context.Context, app *App, args []string, version string, exit func(int)) int {
	if exit == nil {
		exit = os.Exit
	}

	var root CLI
	parser, err := kong.New(&root,
		kong.Name("passop-cli"),
		kong.Description("Terminal client for the PassOP password store"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_path": config.ClientConfigPath(),
		},
		kong.Writers(app.Out, app.Err),
		kong.Exit(exit),
		kong.Bind(app),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		output.PrintError(app.Err, err)
		return output.ExitGeneral
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.PrintError(app.Err, cliErr)
			return cliErr.ExitCode
		}
		parser.Errorf("%s", err)
		return output.ExitUsage
	}

	if err := kctx.Run(); err != nil {
		output.PrintError(app.Err, err)
		return output.ExitCode(err)
	}
	return output.ExitOK
}
