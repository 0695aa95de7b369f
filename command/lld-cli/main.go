// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/util"
)

type metadata struct {
	directory string
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "lld-cli"
	app.Usage = "inspect and modify ledgerd stores"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "data-directory, d",
			Value: ".",
			Usage: " ledgerd data `DIRECTORY`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "keys",
			Usage:     "dump every record of a keychain file",
			ArgsUsage: "FILE",
			Action:    runKeys,
		},
		{
			Name:      "get",
			Usage:     "read a value from a sector database",
			ArgsUsage: "KEY\n   (* = required)",
			Flags:     sectorFlags(),
			Action:    runGet,
		},
		{
			Name:      "put",
			Usage:     "write a value to a sector database",
			ArgsUsage: "KEY VALUE\n   (* = required)",
			Flags:     sectorFlags(),
			Action:    runPut,
		},
		{
			Name:      "erase",
			Usage:     "remove a key from a sector database",
			ArgsUsage: "KEY\n   (* = required)",
			Flags:     sectorFlags(),
			Action:    runErase,
		},
		{
			Name:      "state",
			Usage:     "decode a register",
			ArgsUsage: "ADDRESS",
			Action:    runState,
		},
		{
			Name:      "exec",
			Usage:     "execute a hex encoded contract",
			ArgsUsage: "FILE\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "write, w",
					Usage: " commit the contract (default only verifies)",
				},
				cli.IntFlag{
					Name:  "limit, l",
					Value: 0,
					Usage: " condition script computation `LIMIT`",
				},
			},
			Action: runExec,
		},
		{
			Name:  "version",
			Usage: "display lld-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		if "version" == command || "" == command || "help" == command {
			return nil
		}

		directory, err := filepath.Abs(filepath.Clean(c.GlobalString("data-directory")))
		if nil != err {
			return err
		}
		if info, err := os.Stat(directory); nil != err {
			return err
		} else if !info.IsDir() {
			return fmt.Errorf("not a directory: %q", directory)
		}

		if verbose {
			fmt.Fprintf(e, "data directory: %q\n", directory)
		}

		err = setupLogger(directory, verbose)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			directory: directory,
			verbose:   verbose,
			e:         e,
			w:         w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// the stores refuse to open without a logger
func setupLogger(directory string, verbose bool) error {
	level := "error"
	if verbose {
		level = "info"
	}

	logDirectory, err := util.EnsureDirectory(directory, "log")
	if nil != err {
		return err
	}

	return logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "lld-cli.log",
		Size:      1024 * 1024,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
}
