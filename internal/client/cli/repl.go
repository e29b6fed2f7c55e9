package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// Shell satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status() string
	Exec(ctx context.Context, cmd string, args []string) error
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from reader, parses the first token as the command, and
// hands it with the remaining tokens to a. The loop exits on EOF, on a
// cancelled ctx, or when the user types "exit" or "quit".
//
// Validation errors are not printed here: they reach the user as
// notifications. Other errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mf %s> ", a.Status()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		err = a.Exec(ctx, cmd, parts[1:])
		switch {
		case err == nil, errors.Is(err, common.ErrValidation):
		case errors.Is(err, errUnknownCommand):
			printlnFn("Unknown command:", cmd)
		default:
			printlnFn("Error:", err)
		}
	}
}
