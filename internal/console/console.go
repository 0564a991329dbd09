// Package console drives a session from line-oriented text, for when
// stdout is not a terminal or the user asks for plain output.
//
// Each input line is one intent, parsed with kong:
//
//	name Asha K
//	phone 999 111 2222
//	submit
//	edit 1
//	remove 1
//	add
//	list
//	quit
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/alecthomas/kong"

	"github.com/smileynet/safecircle/internal/form"
	"github.com/smileynet/safecircle/internal/roster"
	"github.com/smileynet/safecircle/internal/session"
)

// errQuit ends the read loop.
var errQuit = errors.New("console: quit")

// Printer writes notices as text lines. It implements session.Notifier.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Notify prints n as "[Title] Message".
func (p *Printer) Notify(n session.Notice) {
	_, _ = fmt.Fprintf(p.w, "[%s] %s\n", n.Title, n.Message)
}

// grammar is the per-line command set.
type grammar struct {
	Name   textCmd   `cmd:"" help:"Set the name field."`
	Phone  textCmd   `cmd:"" help:"Set the phone field."`
	Email  textCmd   `cmd:"" help:"Set the email field."`
	Submit submitCmd `cmd:"" help:"Save the form."`
	Edit   indexCmd  `cmd:"" help:"Edit the contact at a position."`
	Remove indexCmd  `cmd:"" help:"Remove the contact at a position."`
	Add    addCmd    `cmd:"" help:"Start a new contact, abandoning any edit."`
	List   listCmd   `cmd:"" help:"Show contacts and the form."`
	Quit   quitCmd   `cmd:"" help:"Leave the console."`
}

type textCmd struct {
	Text []string `arg:"" optional:"" help:"Field value."`
}

type indexCmd struct {
	Index int `arg:"" help:"Contact position (0 is the protected entry)."`
}

type (
	submitCmd struct{}
	addCmd    struct{}
	listCmd   struct{}
	quitCmd   struct{}
)

// Console reads intents from in and writes results to w.
type Console struct {
	sess *session.Session
	w    io.Writer
}

// New returns a Console over sess. The session's notifier should write to
// the same writer, typically via NewPrinter.
func New(sess *session.Session, w io.Writer) *Console {
	return &Console{sess: sess, w: w}
}

// Run processes lines from in until EOF, "quit", or ctx is cancelled.
// Bad lines are reported and skipped. Input is read on a separate goroutine
// so cancellation is seen while waiting for a line.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errc := readLines(ctx, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-errc; err != nil {
				return fmt.Errorf("console: reading input: %w", err)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := c.Exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(c.w, "error: %s\n", err)
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF, after the
// scan error (possibly nil) has been sent on errc. The goroutine stops early
// when ctx is done.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// Exec runs a single command line. Text commands take the rest of the line
// verbatim; everything after the command word is positional, so "edit -1"
// is an index, not a flag.
func (c *Console) Exec(line string) error {
	word, rest := splitCommand(line)

	var g grammar
	parser, err := kong.New(&g,
		kong.Name("safecircle"),
		kong.Writers(c.w, c.w),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("console: building parser: %w", err)
	}

	args := []string{word}
	if rest != "" {
		args = append(append(args, "--"), strings.Fields(rest)...)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch strings.Fields(kctx.Command())[0] {
	case "name":
		c.sess.NameChanged(rest)
	case "phone":
		c.sess.PhoneChanged(rest)
	case "email":
		c.sess.EmailChanged(rest)
	case "submit":
		return quiet(c.sess.SubmitPressed())
	case "edit":
		return quiet(c.sess.EditRequested(g.Edit.Index))
	case "remove":
		return quiet(c.sess.RemoveRequested(g.Remove.Index))
	case "add":
		c.sess.AddRequested()
	case "list":
		c.printSnapshot()
	case "quit":
		return errQuit
	}
	return nil
}

// splitCommand returns the first word of line and the remainder with leading
// whitespace removed. Inner whitespace in the remainder is preserved.
func splitCommand(line string) (word, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

// quiet drops errors already shown to the user as notices.
func quiet(err error) error {
	if errors.Is(err, roster.ErrValidation) || errors.Is(err, roster.ErrProtected) {
		return nil
	}
	return err
}

func (c *Console) printSnapshot() {
	snap := c.sess.Snapshot()
	PrintContacts(c.w, snap.Contacts)

	fs := snap.Form
	mode := "adding"
	if e, ok := fs.Mode.(form.Editing); ok {
		mode = fmt.Sprintf("editing #%d", e.Index)
	}
	_, _ = fmt.Fprintf(c.w, "form (%s): name=%q phone=%q email=%q\n", mode, fs.Name, fs.Phone, fs.Email)
}

// PrintContacts writes one numbered line per contact.
func PrintContacts(w io.Writer, contacts []roster.Contact) {
	for i, ct := range contacts {
		line := fmt.Sprintf("%2d. %s  %s", i, ct.DisplayName, ct.PhoneNumber)
		if ct.Email != "" {
			line += "  <" + ct.Email + ">"
		}
		if ct.Protected {
			line += "  [protected]"
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
