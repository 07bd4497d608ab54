package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"unicode"

	"fortio.org/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"
)

var dumpConfigCommand = cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[output.toml]",
	Category:    "MISCELLANEOUS COMMANDS",
	Description: `The dumpconfig command shows the effective configuration, defaults merged with --config and flags.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Level string
}

type outputConfig struct {
	Color string // auto, always or never
}

type replConfig struct {
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string `toml:",omitempty"`
}

type luthConfig struct {
	Log    logConfig
	Output outputConfig
	REPL   replConfig
}

func defaultConfig() luthConfig {
	return luthConfig{
		Log:    logConfig{Level: "info"},
		Output: outputConfig{Color: "auto"},
		REPL: replConfig{
			Prompt:             "luth> ",
			ContinuationPrompt: "...   ",
		},
	}
}

func loadConfig(file string, cfg *luthConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return decodeConfig(file, f, cfg)
}

func decodeConfig(name string, r io.Reader, cfg *luthConfig) error {
	err := tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(name + ", " + err.Error())
	}
	return err
}

// makeConfig loads defaults, then the config file, then flag overrides.
func makeConfig(ctx *cli.Context) (luthConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(logLevelFlag.Name) {
		cfg.Log.Level = ctx.GlobalString(logLevelFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Output.Color = ctx.GlobalString(colorFlag.Name)
	}
	return cfg, nil
}

// applyConfig sets the process-wide log level and colour mode.
func applyConfig(cfg luthConfig) error {
	lvl, err := log.ValidateLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config Log.Level: %w", err)
	}
	log.SetLogLevel(lvl)

	switch strings.ToLower(cfg.Output.Color) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		fd := os.Stderr.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	default:
		return fmt.Errorf("config Output.Color: unknown mode %q", cfg.Output.Color)
	}
	return nil
}

// configFrom returns the configuration installed by the app's Before hook.
func configFrom(ctx *cli.Context) luthConfig {
	if cfg, ok := ctx.App.Metadata["config"].(luthConfig); ok {
		return cfg
	}
	return defaultConfig()
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := configFrom(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
