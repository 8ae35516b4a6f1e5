package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/always-cache/cookiespec"
	"github.com/always-cache/cookiespec/pkg/capture"
	"github.com/always-cache/cookiespec/pkg/inspect"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

var stdin io.Reader = os.Stdin

var errNoDB = errors.New("please specify capture DB")

type settings struct {
	config Config
	spec   *cookiespec.Spec
}

// loadSettings reads the config file, if any, and applies flag overrides.
func loadSettings(c *cli.Context) (settings, error) {
	var config Config
	if filename := c.GlobalString("config"); filename != "" {
		var err error
		if config, err = getConfig(filename); err != nil {
			return settings{}, err
		}
	}
	if c.GlobalIsSet("host") {
		config.Origin.Host = c.GlobalString("host")
	}
	if c.GlobalIsSet("port") {
		config.Origin.Port = c.GlobalInt("port")
	}
	if c.GlobalIsSet("path") {
		config.Origin.Path = c.GlobalString("path")
	}
	if c.GlobalIsSet("secure") {
		config.Origin.Secure = c.GlobalBool("secure")
	}
	if c.GlobalIsSet("empty-name") {
		config.EmptyCookieName = c.GlobalString("empty-name")
	}
	if c.GlobalIsSet("db") {
		config.DB = c.GlobalString("db")
	}
	if config.Origin.Host == "" {
		config.Origin.Host = "localhost"
	}
	if config.Origin.Path == "" {
		config.Origin.Path = "/"
	}

	spec := cookiespec.New(cookiespec.Config{
		Logger:          &log.Logger,
		EmptyCookieName: config.EmptyCookieName,
	})
	return settings{config: config, spec: spec}, nil
}

// readInput returns the command arguments, or else the non-blank lines of
// the input file.
func readInput(c *cli.Context) ([]string, error) {
	if c.NArg() > 0 {
		return []string(c.Args()), nil
	}
	r, closer, err := openInput(c.String("file"))
	if err != nil {
		return nil, err
	}
	defer closer()
	lines := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func openInput(filename string) (io.Reader, func(), error) {
	if filename == "" || filename == "-" {
		return stdin, func() {}, nil
	}
	f, err := appFs.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// toHeader accepts either a bare header value or a full `Set-Cookie: value` line.
func toHeader(line string) cookiespec.HeaderField {
	if name, _, found := strings.Cut(line, ":"); found && strings.EqualFold(strings.TrimSpace(name), cookiespec.SetCookieHeader) {
		if h, err := cookiespec.NewBufferedHeader(line); err == nil {
			return h
		}
	}
	return cookiespec.Header{Name: cookiespec.SetCookieHeader, Value: line}
}

func parseAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	lines, err := readInput(c)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(c.App.Writer)
	defer enc.Close()
	failed := 0
	for _, line := range lines {
		cookies, err := s.spec.Parse(toHeader(line), s.config.Origin)
		if err != nil {
			log.Error().Err(err).Str("header", line).Msg("Could not parse header")
			failed++
			continue
		}
		if err := enc.Encode(cookies); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d headers could not be parsed", failed, len(lines))
	}
	return nil
}

func formatAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	r, closer, err := openInput(c.String("file"))
	if err != nil {
		return err
	}
	defer closer()
	input, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var cookies []cookiespec.Cookie
	if err := yaml.Unmarshal(input, &cookies); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, s.spec.FormatCookies(cookies).String())
	return err
}

func openStore(s settings) (*capture.Store, error) {
	if s.config.DB == "" {
		return nil, errNoDB
	}
	return capture.Open(s.config.DB)
}

func captureAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Close()
	lines, err := readInput(c)
	if err != nil {
		return err
	}
	origin := s.config.Origin
	for _, line := range lines {
		id, err := store.Put(capture.Entry{
			Header: toHeader(line).FieldValue(),
			Host:   origin.Host,
			Port:   origin.Port,
			Path:   origin.Path,
			Secure: origin.Secure,
		})
		if err != nil {
			return err
		}
		log.Trace().Int64("id", id).Str("header", line).Msg("Captured header")
	}
	log.Info().Msgf("Captured %d headers", len(lines))
	return nil
}

func replayAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Close()

	total, failed := 0, 0
	err = store.Each(func(e capture.Entry) error {
		total++
		origin := cookiespec.Origin{Host: e.Host, Port: e.Port, Path: e.Path, Secure: e.Secure}
		cookies, err := s.spec.Parse(cookiespec.Header{Name: cookiespec.SetCookieHeader, Value: e.Header}, origin)
		if err != nil {
			failed++
			log.Warn().Err(err).Int64("id", e.ID).Str("header", e.Header).Msg("Replay failed")
			return nil
		}
		log.Trace().Int64("id", e.ID).Int("cookies", len(cookies)).Msg("Replayed header")
		return nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "replayed %d headers, %d failed\n", total, failed)
	return err
}

func serveAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	port := c.Int("listen")
	if !c.IsSet("listen") && s.config.Port > 0 {
		port = s.config.Port
	}
	config := inspect.Config{Spec: s.spec, Logger: &log.Logger}
	if s.config.DB != "" {
		store, err := capture.Open(s.config.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		config.Capture = store
	}
	log.Info().Msgf("Serving cookie inspection on port %d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), inspect.NewRouter(config))
}
