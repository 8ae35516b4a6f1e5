package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

// this is set by goreleaser
var version string

// logFile is the file opened for --log-file, closed when the app exits.
var logFile *os.File

func main() {
	if version == "" {
		version = "DEV"
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cookiespec"
	app.Usage = "parse Set-Cookie and build Cookie headers like a browser"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "Path to config file"},
		cli.StringFlag{Name: "host", Usage: "Origin host (overrides config)"},
		cli.IntFlag{Name: "port", Usage: "Origin port (overrides config)"},
		cli.StringFlag{Name: "path", Usage: "Origin request path (overrides config)"},
		cli.BoolFlag{Name: "secure", Usage: "Origin is a secure exchange"},
		cli.StringFlag{Name: "empty-name", Usage: "Name for cookies without a name"},
		cli.StringFlag{Name: "db", Usage: "Capture DB file name (overrides config)"},
		cli.StringFlag{Name: "log-file", Usage: "Log file to use (in addition to stderr)"},
		cli.BoolFlag{Name: "vv", Usage: "Verbosity: trace logging"},
	}
	app.Before = setupLogging
	app.After = closeLogging
	app.Commands = []cli.Command{
		{
			Name:      "parse",
			Usage:     "parse Set-Cookie header values and print the cookies as YAML",
			ArgsUsage: "[header value...]",
			Flags:     []cli.Flag{inputFlag},
			Action:    parseAction,
		},
		{
			Name:   "format",
			Usage:  "read cookies as YAML and print the Cookie header",
			Flags:  []cli.Flag{inputFlag},
			Action: formatAction,
		},
		{
			Name:      "capture",
			Usage:     "store Set-Cookie header values in the capture DB",
			ArgsUsage: "[header value...]",
			Flags:     []cli.Flag{inputFlag},
			Action:    captureAction,
		},
		{
			Name:   "replay",
			Usage:  "parse every header in the capture DB and report failures",
			Action: replayAction,
		},
		{
			Name:  "serve",
			Usage: "serve the HTTP inspection endpoints",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "listen", Value: 8080, Usage: "Port to listen on (overrides config)"},
			},
			Action: serveAction,
		},
	}
	return app
}

var inputFlag = cli.StringFlag{Name: "file, f", Usage: "Read input from file ('-' for stdin)"}

// setupLogging sets the global logger: console output to stderr, and also to
// the log file if specified.
func setupLogging(c *cli.Context) error {
	logLevel := zerolog.DebugLevel
	if c.GlobalBool("vv") {
		logLevel = zerolog.TraceLevel
	}

	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stderr})
	if logFilename := c.GlobalString("log-file"); logFilename != "" {
		var err error
		logFile, err = os.OpenFile(logFilename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return err
		}
		logOutputs = append(logOutputs, logFile)
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()
	return nil
}

// closeLogging closes the log file and sends further logs to stderr only.
func closeLogging(c *cli.Context) error {
	if logFile == nil {
		return nil
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	err := logFile.Close()
	logFile = nil
	return err
}
