package stats

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Sample is one reading of the host status. Fields are display-ready text; a field is
// empty when its reading failed.
type Sample struct {
	Time time.Time
	Addr string
	CPU  string
	Mem  string
	Disk string
	Temp string
}

// Scripts are the shell pipelines producing each reading. An empty script disables
// the reading.
type Scripts struct {
	Addr string
	CPU  string
	Mem  string
	Disk string
	Temp string
}

// DefaultScripts read the first address, CPU load, memory, root disk usage and the
// board temperature on a Linux host with procps and lm-sensors installed.
var DefaultScripts = Scripts{
	Addr: `hostname -I | cut -d' ' -f1`,
	CPU:  `top -bn1 | grep Cpu | awk 'NR==1{printf "Cpu:%s%%", $2}'`,
	Mem:  `free -m | awk 'NR==2{printf "Mem:%s/%sGB", $3/1000,$2/1000}'`,
	Disk: `df -h | awk '$NF=="/"{printf "Disk:%d/%dGB %s", $3,$2,$5}'`,
	Temp: `sensors | awk 'NR==11{printf "Temp:%s", $2}'`,
}

// Runner executes a shell script and returns its standard output.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Shell runs scripts with a POSIX shell. On timeout or cancellation the whole
// pipeline is killed, not just the shell.
type Shell struct {
	// Path of the shell, /bin/sh when empty.
	Path string

	// Timeout bounds every script run when not zero.
	Timeout time.Duration
}

func (s Shell) Run(ctx context.Context, script string) (string, error) {
	path := s.Path
	if path == "" {
		path = "/bin/sh"
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, path, "-c", script)
	killGroup(cmd)
	cmd.WaitDelay = 100 * time.Millisecond
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("stats: run %q: %w", script, err)
	}
	return string(out), nil
}

// Opts is the collector configuration.
type Opts struct {
	// Runner executes the scripts, a [Shell] with a 2s timeout when nil.
	Runner Runner

	// Scripts overrides [DefaultScripts].
	Scripts *Scripts

	// SlowInterval is how long the address and disk readings are reused.
	SlowInterval time.Duration

	// Logger receives warnings about failed readings, [slog.Default] when nil.
	Logger *slog.Logger
}

// DefaultSlowInterval is how long slowly changing readings are cached.
const DefaultSlowInterval = 5 * time.Minute

// Collector takes host status samples. Address and disk usage change rarely and are
// only refreshed once per slow interval.
//
// Collector is not safe for concurrent use.
type Collector struct {
	runner   Runner
	scripts  Scripts
	slow     time.Duration
	log      *slog.Logger
	now      func() time.Time
	lastSlow time.Time
	addr     string
	disk     string
}

func NewCollector(opts *Opts) *Collector {
	var o Opts
	if opts != nil {
		o = *opts
	}
	c := &Collector{
		runner:  o.Runner,
		scripts: DefaultScripts,
		slow:    o.SlowInterval,
		log:     o.Logger,
		now:     time.Now,
	}
	if c.runner == nil {
		c.runner = Shell{Timeout: 2 * time.Second}
	}
	if o.Scripts != nil {
		c.scripts = *o.Scripts
	}
	if c.slow <= 0 {
		c.slow = DefaultSlowInterval
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Collect takes a sample. Failed readings are logged and left empty.
func (c *Collector) Collect(ctx context.Context) Sample {
	now := c.now()
	if c.lastSlow.IsZero() || now.Sub(c.lastSlow) > c.slow {
		c.addr = c.run(ctx, "addr", c.scripts.Addr)
		c.disk = c.run(ctx, "disk", c.scripts.Disk)
		c.lastSlow = now
	}
	return Sample{
		Time: now,
		Addr: c.addr,
		CPU:  c.run(ctx, "cpu", c.scripts.CPU),
		Mem:  c.run(ctx, "mem", c.scripts.Mem),
		Disk: c.disk,
		Temp: strings.ReplaceAll(c.run(ctx, "temp", c.scripts.Temp), "°C", ""),
	}
}

func (c *Collector) run(ctx context.Context, name, script string) string {
	if script == "" {
		return ""
	}
	out, err := c.runner.Run(ctx, script)
	if err != nil {
		c.log.Warn("reading failed", "reading", name, "err", err)
		return ""
	}
	return clean(out)
}

// clean folds command output onto a single line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
