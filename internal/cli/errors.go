package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ericfisherdev/passop/internal/client"
	"github.com/ericfisherdev/passop/internal/output"
)

// cliError maps a client error to a CLIError with the matching exit code.
func (a *App) cliError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && client.IsNotFound(err):
		return output.NewCLIError(output.ExitNotFound, apiMessageOr(apiErr, "record not found")).
			WithHint("the record may have been removed; run 'passop-cli list'")
	case errors.As(err, &apiErr):
		return output.NewCLIError(output.ExitAPIError, apiMessageOr(apiErr, apiErr.Error()))
	case errors.Is(err, client.ErrNoSuchRecord):
		return output.NewCLIError(output.ExitUsage, err.Error()).
			WithHint("run 'passop-cli list' to see record numbers")
	case errors.Is(err, client.ErrIncompleteForm):
		return output.NewCLIError(output.ExitUsage, err.Error())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return output.NewCLIError(output.ExitNetworkError, fmt.Sprintf("cannot reach %s", a.ServerURL)).
			WithHint("is the passop server running? set the address with --server or 'passop-cli config set server URL'")
	}

	return output.NewCLIError(output.ExitGeneral, err.Error())
}

func apiMessageOr(e *client.APIError, fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
