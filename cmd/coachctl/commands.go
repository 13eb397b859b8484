package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"

	"github.com/2beens/fitcoach/internal/coach/dates"
	"github.com/2beens/fitcoach/internal/coach/intent"
	"github.com/2beens/fitcoach/internal/coach/interpreter"
	"github.com/2beens/fitcoach/internal/coach/records"
)

type CLI struct {
	Version kong.VersionFlag `help:"Print version."`

	Classify  ClassifyCmd  `cmd:"" help:"Print the intent of a message."`
	Interpret InterpretCmd `cmd:"" help:"Print the records a message would produce, as JSON."`
	Dates     DatesCmd     `cmd:"" help:"Print the dates a message resolves to."`
}

// Context is passed to every command Run.
type Context struct {
	Out io.Writer
}

// ClockFlags pin "now" so results are reproducible.
type ClockFlags struct {
	Now string `help:"Current time as RFC3339, defaults to the system time."`
	TZ  string `name:"tz" help:"IANA timezone of the user." default:"UTC"`
}

func (f ClockFlags) now() (time.Time, error) {
	loc, err := time.LoadLocation(f.TZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone [%s]: %w", f.TZ, err)
	}
	if f.Now == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, f.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now, use RFC3339: %w", err)
	}
	return t.In(loc), nil
}

type ClassifyCmd struct {
	Message string `arg:"" help:"Chat message."`
}

func (c *ClassifyCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, intent.Classify(c.Message))
	return err
}

type InterpretCmd struct {
	Clock   ClockFlags `embed:""`
	Message string `arg:"" help:"Chat message."`
}

func (c *InterpretCmd) Run(ctx *Context) error {
	now, err := c.Clock.now()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(interpreter.Interpret(c.Message, now))
}

type DatesCmd struct {
	Clock   ClockFlags `embed:""`
	Message string `arg:"" help:"Chat message."`
}

func (c *DatesCmd) Run(ctx *Context) error {
	now, err := c.Clock.now()
	if err != nil {
		return err
	}

	resolved := dates.Resolve(c.Message, now)
	if dates.IsRecurring(c.Message) {
		fmt.Fprintf(ctx.Out, "recurring: %d date(s)\n", len(resolved))
	}
	for _, d := range resolved {
		fmt.Fprintf(ctx.Out, "%s %s\n", records.LocalDay(d), d.Weekday())
	}
	return nil
}
