// Command luth runs Luth scripts.
//
// Usage:
//
//	luth [global options] run <file.luth>
//	luth tokens <file.luth>
//	luth ast [--format source|json|yaml] <file.luth>
//	luth repl
//	luth dumpconfig [output.toml]
package main

import (
	"os"

	"fortio.org/log"
	"gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

const (
	exitSyntax  = 65 // source did not lex or parse
	exitNoInput = 66 // source file could not be read
	exitRuntime = 70 // execution stopped on a runtime error
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level: debug, verbose, info, warning, error (overrides config)",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colour error output: auto, always, never (overrides config)",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "luth"
	app.Usage = "the Luth scripting language"
	app.Version = version
	app.Flags = []cli.Flag{configFileFlag, logLevelFlag, colorFlag}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if err := applyConfig(cfg); err != nil {
			return err
		}
		ctx.App.Metadata = map[string]interface{}{"config": cfg}
		return nil
	}
	app.Commands = []cli.Command{
		runCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
	}
	return app
}

func main() {
	log.SetDefaultsForClientTools()
	if err := newApp().Run(os.Args); err != nil {
		log.Errf("%v", err)
		os.Exit(1)
	}
}
