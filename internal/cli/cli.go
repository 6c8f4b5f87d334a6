package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ericfisherdev/passop/internal/client"
	"github.com/ericfisherdev/passop/internal/output"
)

// CLI is the root command structure
type CLI struct {
	Globals

	List    ListCmd    `cmd:"" help:"List stored passwords"`
	Add     AddCmd     `cmd:"" help:"Save a new password"`
	Edit    EditCmd    `cmd:"" help:"Change the password of a record"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a record"`
	Copy    CopyCmd    `cmd:"" help:"Copy a field of a record to the clipboard"`
	Config  ConfigCmd  `cmd:"" help:"Configuration commands"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// AfterApply runs once flags are parsed. It loads the config file and
// builds the client the commands use.
func (c *CLI) AfterApply(app *App) error {
	return app.init(&c.Globals)
}

// ListCmd prints the stored records.
type ListCmd struct {
	Show bool `help:"Show passwords in clear text" short:"s"`
}

// Run executes the list command
func (cmd *ListCmd) Run(ctx context.Context, app *App) error {
	if err := app.Session.Refresh(ctx); err != nil {
		return app.cliError(err)
	}
	output.RenderCredentials(app.Out, app.Session.Records, cmd.Show)
	return nil
}

// AddCmd saves a new record.
type AddCmd struct {
	Site     string `help:"Website URL" required:""`
	Username string `help:"Username" required:""`
	Password string `help:"Password (prompted for when omitted)"`
}

// Run executes the add command
func (cmd *AddCmd) Run(ctx context.Context, app *App) error {
	password := cmd.Password
	if password == "" {
		var err error
		if password, err = app.readSecret("Password: "); err != nil {
			return app.cliError(err)
		}
	}

	app.Session.Form = client.Form{Site: cmd.Site, Username: cmd.Username, Password: password}
	return app.cliError(app.Session.Save(ctx))
}

// EditCmd changes the password of the record at a list position.
type EditCmd struct {
	Index    int    `arg:"" help:"Record number as shown by list"`
	Password string `help:"New password (prompted for when omitted)"`
}

// Run executes the edit command
func (cmd *EditCmd) Run(ctx context.Context, app *App) error {
	s := app.Session
	if err := s.Refresh(ctx); err != nil {
		return app.cliError(err)
	}
	if err := s.Edit(cmd.Index - 1); err != nil {
		return app.cliError(err)
	}

	password := cmd.Password
	if password == "" {
		label := fmt.Sprintf("New password for %s (%s): ", s.Form.Site, s.Form.Username)
		var err error
		if password, err = app.readSecret(label); err != nil {
			s.ClearForm()
			return app.cliError(err)
		}
	}

	s.Form.Password = password
	return app.cliError(s.Save(ctx))
}

// DeleteCmd removes the record at a list position.
type DeleteCmd struct {
	Index int `arg:"" help:"Record number as shown by list"`
}

// Run executes the delete command
func (cmd *DeleteCmd) Run(ctx context.Context, app *App) error {
	if err := app.Session.Refresh(ctx); err != nil {
		return app.cliError(err)
	}
	return app.cliError(app.Session.Delete(ctx, cmd.Index-1))
}

// CopyCmd copies one field of a record to the clipboard.
type CopyCmd struct {
	Index  int    `arg:"" help:"Record number as shown by list"`
	Column string `arg:"" help:"Field to copy" enum:"site,username,password"`
}

// Run executes the copy command
func (cmd *CopyCmd) Run(ctx context.Context, app *App) error {
	col, err := client.ParseColumn(cmd.Column)
	if err != nil {
		return output.NewCLIError(output.ExitUsage, err.Error())
	}
	if err := app.Session.Refresh(ctx); err != nil {
		return app.cliError(err)
	}
	return app.cliError(app.Session.Copy(cmd.Index-1, col))
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(kctx *kong.Context, app *App) error {
	fmt.Fprintf(app.Out, "passop-cli version %s\n", kctx.Model.Vars()["version"])
	return nil
}
