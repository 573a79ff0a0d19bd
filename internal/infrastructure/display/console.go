// Package display renders feed chat and agent status lines. The lines carry
// Minecraft section-sign color codes verbatim so a color-aware terminal or a
// downstream overlay can render them.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"skyflip/pkg/lox"
)

const statusPrefix = "§f[§bSkyflip§f]: "

type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Print writes feed chat lines as-is.
func (c *Console) Print(lines ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range lines {
		fmt.Fprintln(c.out, line)
	}
}

// Status writes agent-originated lines under the branded prefix.
func (c *Console) Status(lines ...string) {
	c.Print(lox.Map(lines, func(line string) string {
		return statusPrefix + line
	})...)
}
