package main

import (
	"os/exec"

	"github.com/ThatOtherAndrew/Infinidesk/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/sirupsen/logrus"
)

/* runAction executes a matched keybind action. */
func (server *Server) runAction(action config.Action) {
	switch action.Kind {
	case config.ActionExec:
		server.spawn(action.Command)

	case config.ActionCloseWindow:
		if v := server.views.Top(); v != nil {
			logrus.WithField("id", v.ID).Debugln("Closing focused view")
			v.Close()
		}

	case config.ActionExit:
		logrus.Infoln("Exiting compositor")
		server.Stop()

	case config.ActionToggleDrawing:
		server.drawing.ToggleMode()
		if server.drawing.Mode {
			if output := server.primaryOutput(); output != nil {
				width, height := output.effectiveResolution()
				server.drawing.Panel.Place(width, height)
			}
		}

	case config.ActionClearDrawings:
		server.drawing.Clear()

	case config.ActionUndo:
		server.drawing.Undo()

	case config.ActionRedo:
		server.drawing.Redo()

	case config.ActionGather:
		output := server.primaryOutput()
		if output == nil {
			return
		}
		width, height := output.effectiveResolution()
		server.views.Gather(server.canvas, width, height, anim.NowMs())

	case config.ActionSwitcher:
		/* First press opens the switcher, repeats while it is up cycle
		 * the selection. */
		if server.switcher.Active() {
			server.switcher.Next()
		} else {
			server.switcher.Start()
		}
	}
}

/* spawn runs a shell command detached from the compositor. A failing
 * command is logged but never fatal. */
func (server *Server) spawn(command string) {
	if command == "" {
		return
	}
	logrus.WithField("command", command).Infoln("Running command")

	cmd := exec.Command("/bin/sh", "-c", command)
	if err := cmd.Start(); err != nil {
		logrus.WithError(err).WithField("command", command).Errorln("Command failed to start")
		return
	}
	go func() {
		err := cmd.Wait()
		if exitErr, ok := err.(*exec.ExitError); ok {
			logrus.WithError(err).WithFields(logrus.Fields{
				"exit-code": exitErr.ExitCode(),
				"command":   command,
			}).Warningln("Bad command completion")
		}
	}()
}
