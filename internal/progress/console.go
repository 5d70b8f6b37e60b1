package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console renders an in-place progress line on a terminal. When the writer
// is not a TTY it degrades to the same behavior as Plain, so callers can
// construct it unconditionally.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	label *color.Color
	count *color.Color

	total int
	done  int
	desc  string
}

// NewConsole creates a Console reporting to w. Color and in-place updates
// are enabled only when w is a terminal.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{
		w:     w,
		tty:   isTerminal(w),
		label: color.New(color.FgCyan),
		count: color.New(color.FgGreen),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) Start(total int, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = total
	c.done = 0
	c.desc = description
	if !c.tty {
		fmt.Fprintf(c.w, "%s (%d files)\n", description, total)
		return
	}
	c.render()
}

func (c *Console) Advance(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done += n
	if !c.tty {
		// Plain fallback: one line at each decile, not per file.
		if c.total > 0 && c.done%max(1, c.total/10) == 0 {
			fmt.Fprintf(c.w, "%s: %d/%d\n", c.desc, c.done, c.total)
		}
		return
	}
	c.render()
}

func (c *Console) SetDescription(desc string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.desc = desc
	if c.tty {
		c.render()
	}
}

func (c *Console) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tty {
		fmt.Fprintf(c.w, "%s: done (%d/%d)\n", c.desc, c.done, c.total)
		return
	}
	c.render()
	fmt.Fprintln(c.w)
}

// render assumes c.mu is held.
func (c *Console) render() {
	fmt.Fprintf(c.w, "\r\033[K%s %s",
		c.label.Sprint(c.desc),
		c.count.Sprintf("%d/%d", c.done, c.total))
}
