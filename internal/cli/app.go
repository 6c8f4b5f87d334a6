package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ericfisherdev/passop/internal/client"
	"github.com/ericfisherdev/passop/internal/config"
	"github.com/ericfisherdev/passop/internal/output"
)

// App carries the dependencies commands run with. It is bound into the
// kong context once flags are parsed.
type App struct {
	Out       io.Writer
	Err       io.Writer
	In        io.Reader
	Clipboard client.Clipboard

	// Prompt reads a secret. Nil means read from In, without echo when In
	// is a terminal.
	Prompt func(label string) (string, error)

	Logger     *slog.Logger
	Config     *config.ClientConfig
	ConfigPath string
	ServerURL  string
	Client     *client.Client
	Session    *client.Session
}

// DefaultApp returns an App on the process's standard streams and the
// system clipboard.
func DefaultApp() *App {
	return &App{
		Out:       os.Stdout,
		Err:       os.Stderr,
		In:        os.Stdin,
		Clipboard: client.SystemClipboard{},
	}
}

// init resolves configuration and builds the client and session.
// Server URL precedence: --server / PASSOP_SERVER, config file, default.
func (a *App) init(g *Globals) error {
	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelDebug
	}
	a.Logger = slog.New(slog.NewTextHandler(a.Err, &slog.HandlerOptions{Level: level}))

	a.ConfigPath = g.ConfigFile
	cfg, err := config.LoadClient(a.ConfigPath)
	if err != nil {
		return output.NewCLIError(output.ExitConfigError, err.Error()).
			WithHint("check the file at " + a.ConfigPath)
	}
	a.Config = cfg

	a.ServerURL = g.Server
	if a.ServerURL == "" {
		a.ServerURL = cfg.Server
	}
	if a.ServerURL == "" {
		a.ServerURL = client.DefaultServerURL
	}

	httpClient := &http.Client{
		Transport: &logTransport{next: http.DefaultTransport, logger: a.Logger},
	}
	a.Client = client.New(a.ServerURL, client.WithHTTPClient(httpClient))
	a.Session = client.NewSession(a.Client, a.Clipboard, output.NewBanner(a.Err))

	return nil
}

// readSecret prompts for a value on Err and reads it from In.
func (a *App) readSecret(label string) (string, error) {
	if a.Prompt != nil {
		return a.Prompt(label)
	}

	fmt.Fprint(a.Err, label)

	if f, ok := a.In.(*os.File); ok && f == os.Stdin && stdinIsTerminal() {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Err)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// logTransport logs each request at debug level.
type logTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Debug("http request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("http request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}
