package platform

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// ShellOpener opens targets with the operating system's default handler:
// rundll32 on Windows, open on macOS, xdg-open elsewhere.
type ShellOpener struct {
	// command builds the command for a target. Nil means the OS default.
	command func(target string) *exec.Cmd
}

// NewShellOpener returns an opener for the current operating system.
func NewShellOpener() *ShellOpener {
	return &ShellOpener{command: defaultOpenCommand(runtime.GOOS)}
}

// Open starts the handler for target and returns once it has been started;
// the handler is not waited for. Cancelling ctx after Open returns does not
// stop the launched program.
func (o *ShellOpener) Open(ctx context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("open: empty target")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	cmd := o.command(target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	go cmd.Wait() //nolint:errcheck // reap the child; its exit status is irrelevant
	return nil
}

func defaultOpenCommand(goos string) func(target string) *exec.Cmd {
	switch goos {
	case "windows":
		return func(target string) *exec.Cmd {
			return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
		}
	case "darwin":
		return func(target string) *exec.Cmd {
			return exec.Command("open", target)
		}
	default:
		return func(target string) *exec.Cmd {
			return exec.Command("xdg-open", target)
		}
	}
}
