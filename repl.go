package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ThatOtherAndrew/Infinidesk/repl"
	"github.com/ThatOtherAndrew/Infinidesk/util"
	"github.com/ThatOtherAndrew/Infinidesk/util/wrappers"
	"github.com/sirupsen/logrus"
)

/* replRunner starts a debug repl on stdin/stdout for poking at the
 * compositor state while it runs. Wrappers around stdin and stdout keep
 * the repl from closing the real streams on exit. */
func replRunner(server *Server) {
	commandRepl := repl.NewRepl(wrappers.NewReaderWrapper(os.Stdin), wrappers.NewWriterWrapper(os.Stdout))
	logrus.Debugln("Starting repl")
	_ = commandRepl.Run(func(input string, r *repl.Repl) (string, error) {
		if cmdString, ok := strings.CutPrefix(input, "run "); ok {
			server.spawn(cmdString)
			return "Running " + cmdString, nil
		} else if input == "quit" {
			server.Stop()
			return "Quitting", errors.New("normal stop")
		} else if rawCmdString, ok := strings.CutPrefix(input, "inspect "); ok {
			var target, mod string
			util.Unpack(strings.SplitN(rawCmdString, " ", 2), &target, &mod)
			return server.inspect(target, mod), nil
		}
		return "Unknown command (try: run <cmd>, inspect <target>, quit)", nil
	})
}

func (server *Server) inspect(target, mod string) string {
	switch target {
	case "canvas":
		return fmt.Sprintf("Canvas: viewport (%.1f, %.1f), scale %.2f, snapping %v",
			server.canvas.ViewportX, server.canvas.ViewportY,
			server.canvas.Scale, server.canvas.Snapping())

	case "views":
		views := server.views.Views()
		var b strings.Builder
		fmt.Fprintf(&b, "%d view(s), top first:", len(views))
		for _, v := range views {
			marker := " "
			if v.Focused {
				marker = "*"
			}
			fmt.Fprintf(&b, "\n %s %d: %q at (%.1f, %.1f)", marker, v.ID, v.Toplevel.Title(), v.X, v.Y)
		}
		return b.String()

	case "drawing":
		return fmt.Sprintf("Drawing: mode %v, %d stroke(s), %d redoable",
			server.drawing.Mode, len(server.drawing.Strokes()), server.drawing.RedoDepth())

	case "switcher":
		if !server.switcher.Active() {
			return "Switcher: inactive"
		}
		return fmt.Sprintf("Switcher: active, selected view %d", server.switcher.Selected().ID)

	case "cursor":
		if mod == "mode" {
			return fmt.Sprintf("Cursor mode: %v", server.machine.Mode())
		}
		return fmt.Sprintf("Cursor: location (%f:%f)", server.cursor.X(), server.cursor.Y())

	case "outputs":
		var b strings.Builder
		fmt.Fprintf(&b, "%d output(s):", len(server.outputs))
		for _, output := range server.outputs {
			w, h := output.effectiveResolution()
			fmt.Fprintf(&b, "\n  %s: %dx%d usable %+v", output.output.Name(), w, h, output.usableArea)
		}
		return b.String()

	default:
		return "Unknown target (canvas, views, drawing, switcher, cursor, outputs)"
	}
}
