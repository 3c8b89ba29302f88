package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/ninedt-backend/internal/cli"
	"github.com/rocketscienceinc/ninedt-backend/internal/config"
)

// main - is the entry point of the application. It hands over to the command line.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cli.Root(bootstrap).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ninedt: %v\n", err)
		os.Exit(1)
	}
}

func bootstrap(path string, out io.Writer) (*config.Config, *slog.Logger) {
	conf := initConfig(path)
	return conf, initLogger(conf, out)
}

// initialize config. Without an explicit path ./config.yml is used if it
// exists, the environment alone otherwise.
func initConfig(path string) *config.Config {
	if path != "" {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	path = filepath.Join(baseDir, "./config.yml")
	if _, err = os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = ""
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
