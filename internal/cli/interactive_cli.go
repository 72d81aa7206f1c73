package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/at-ishikawa/lexicon/internal/display"
	"github.com/at-ishikawa/lexicon/internal/search"
	"github.com/fatih/color"
)

var errEnd = errors.New("end")

type Session interface {
	Session(context context.Context) error
}

// Run calls session repeatedly until it ends, fails, or an interrupt arrives.
func Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// LookupCLI is a line-oriented dictionary session.
// A plain line is looked up; lines starting with ':' are commands.
type LookupCLI struct {
	controller   *search.Controller
	renderer     *Renderer
	theme        *display.ThemeController
	font         *display.FontController
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	prompt       *color.Color
}

func NewLookupCLI(
	controller *search.Controller,
	renderer *Renderer,
	theme *display.ThemeController,
	font *display.FontController,
	stdin io.Reader,
	stdout io.Writer,
) *LookupCLI {
	return &LookupCLI{
		controller:   controller,
		renderer:     renderer,
		theme:        theme,
		font:         font,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		prompt:       color.New(color.Bold),
	}
}

// Session handles one input line.
func (cli *LookupCLI) Session(ctx context.Context) error {
	_, _ = cli.prompt.Fprint(cli.stdoutWriter, "Search: ")
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("stdinReader.ReadString > %w", err)
		}
		if line == "" {
			return errEnd
		}
	}
	line = strings.TrimRight(line, "\r\n")

	if !strings.HasPrefix(line, ":") {
		if err := cli.controller.Submit(ctx, line); err != nil && !errors.Is(err, search.ErrEmptyQuery) {
			return fmt.Errorf("controller.Submit > %w", err)
		}
		cli.controller.Wait()
		return nil
	}

	command, argument, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	argument = strings.TrimSpace(argument)
	switch command {
	case "q", "quit", "exit":
		return errEnd
	case "syn", "synonym":
		return cli.selectSynonym(ctx, argument)
	case "theme":
		cli.theme.Toggle()
		return cli.rerender()
	case "font":
		if argument == "" {
			label, err := cli.font.Current().Label()
			if err != nil {
				return fmt.Errorf("font.Label > %w", err)
			}
			fmt.Fprintf(cli.stdoutWriter, "Font: %s\n", label)
			return nil
		}
		var font display.Font
		if err := font.Set(argument); err != nil {
			fmt.Fprintf(cli.stdoutWriter, "%v. Possible values are serif, sans, mono\n", err)
			return nil
		}
		if err := cli.font.Set(font); err != nil {
			return fmt.Errorf("font.Set > %w", err)
		}
		return cli.rerender()
	case "help":
		cli.help()
		return nil
	default:
		fmt.Fprintf(cli.stdoutWriter, "unknown command: %s\n", command)
		cli.help()
		return nil
	}
}

// selectSynonym accepts either the number shown next to a synonym or a literal term.
func (cli *LookupCLI) selectSynonym(ctx context.Context, argument string) error {
	term := argument
	if n, err := strconv.Atoi(argument); err == nil {
		snapshot := cli.controller.Snapshot()
		if snapshot.Word == nil {
			fmt.Fprintln(cli.stdoutWriter, "no word is shown")
			return nil
		}
		synonyms := snapshot.Word.Synonyms()
		if n < 1 || n > len(synonyms) {
			fmt.Fprintf(cli.stdoutWriter, "no synonym [%d]\n", n)
			return nil
		}
		term = synonyms[n-1]
	}

	if err := cli.controller.SelectSynonym(ctx, term); err != nil && !errors.Is(err, search.ErrEmptyQuery) {
		return fmt.Errorf("controller.SelectSynonym > %w", err)
	}
	cli.controller.Wait()
	return nil
}

func (cli *LookupCLI) rerender() error {
	snapshot := cli.controller.Snapshot()
	snapshot.Invalid = false
	return cli.renderer.RenderSnapshot(snapshot)
}

func (cli *LookupCLI) help() {
	fmt.Fprintln(cli.stdoutWriter, `Commands:
  <word>          look up a word
  :syn <n|term>   look up a synonym by its number or text
  :theme          toggle light and dark theme
  :font [font]    show or switch the font (serif, sans, mono)
  :quit           exit`)
}
