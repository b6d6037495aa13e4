package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"unified2-cleanup/internal/logging"
)

// promptConfirmer asks the purge question on a terminal.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
	log *logging.Logger
}

func newPromptConfirmer(in io.Reader, out io.Writer, log *logging.Logger) *promptConfirmer {
	return &promptConfirmer{in: in, out: out, log: log}
}

// Confirm prints prompt and returns the operator's answer line.
//
// Behavior:
//   - End of input (closed stdin, empty pipe) yields "", which declines.
//   - Cancelling ctx (SIGINT/SIGTERM) returns ctx.Err() without waiting for
//     input. The blocked read is left behind; the process exits right after.
func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) (string, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		p.log.Warnf("stdin is not a terminal; reading the confirmation answer from it (use --yes for unattended runs)")
	}

	fmt.Fprint(p.out, prompt) //nolint:errcheck // best-effort output

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.in).ReadString('\n')
		answer <- strings.TrimRight(line, "\r\n")
	}()

	select {
	case line := <-answer:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
