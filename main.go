// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThatOtherAndrew/Infinidesk/config"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

var (
	startupCmd = flag.String("startup", "", "Command to run at startup")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	help       = flag.Bool("help", false, "Show this help message")
)

func init() {
	flag.StringVar(startupCmd, "s", "", "Command to run at startup (shorthand)")
	flag.BoolVar(debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(help, "h", false, "Show this help message (shorthand)")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options]

Options:
  -s, --startup <cmd>  Command to run at startup
  -d, --debug          Enable debug logging
  -h, --help           Show this help message

Infinidesk is an infinite canvas Wayland compositor.

Default keybindings (configurable in ~/.config/infinidesk/infinidesk.toml):
  Super + Return     Launch terminal (kitty)
  Super + Q          Close focused window
  Super + Escape     Exit compositor
  Super + D          Toggle drawing mode
  Super + G          Gather windows
  Alt + Tab          Window switcher
  Super + Left-drag  Move window
  Super + Right-drag Pan canvas
  Super + Scroll     Zoom canvas
`, os.Args[0])
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if *help {
		usage()
		return
	}

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	/* Route wlroots' own log stream through logrus. */
	wlroots.OnLog(wlroots.LogImportanceError, func(importance wlroots.LogImportance, msg string) {
		switch importance {
		case wlroots.LogImportanceDebug:
			logrus.Debugln(msg)
		case wlroots.LogImportanceInfo:
			logrus.Infoln(msg)
		case wlroots.LogImportanceError:
			logrus.Errorln(msg)
		case wlroots.LogImportanceSilent:
			return
		}
	})

	logrus.Infoln("Starting Infinidesk")

	conf, err := config.Load()
	if err != nil {
		logrus.WithError(err).Errorln("Failed to load config, continuing with defaults")
		conf = &config.Config{Scale: 1.0, Keybinds: config.DefaultKeybinds()}
	}

	server, err := NewServer(conf, *startupCmd)
	if err != nil {
		logrus.WithError(err).Errorln("Failed to initialise server")
		os.Exit(1)
	}

	/* SIGINT/SIGTERM terminate the event loop; the handler only holds the
	 * server, never a process-wide singleton. */
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logrus.WithField("signal", sig).Infoln("Terminating on signal")
		server.Stop()
	}()

	if err = server.Start(); err != nil {
		logrus.WithError(err).Errorln("Failed to start server")
		os.Exit(1)
	}

	go replRunner(server)

	logrus.Infoln("Running compositor")
	if err = server.Run(); err != nil {
		logrus.WithError(err).Errorln("Failed running server")
		os.Exit(1)
	}
	logrus.Infoln("Shutting down")
}
