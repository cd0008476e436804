package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted date format
const DateLayout = "2006-01-02"

// Prompter reads line-based answers from the console
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading from in and writing prompts to out
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts are written to
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf writes formatted text to the console
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the console
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line asks for one line and returns it trimmed. io.EOF is returned once input ends.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Required asks until a non-blank answer is given
func (p *Prompter) Required(label string) (string, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// Optional returns nil for a blank answer
func (p *Prompter) Optional(label string) (*string, error) {
	answer, err := p.Line(label)
	if err != nil || answer == "" {
		return nil, err
	}
	return &answer, nil
}

// Int asks until a whole number is given
func (p *Prompter) Int(label string) (int64, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.ParseInt(answer, 10, 64)
		if convErr == nil {
			return n, nil
		}
		fmt.Fprintf(p.out, "%q is not a whole number.\n", answer)
	}
}

// OptionalInt returns nil for a blank answer and asks again for anything that is not a number
func (p *Prompter) OptionalInt(label string) (*int, error) {
	for {
		answer, err := p.Line(label)
		if err != nil || answer == "" {
			return nil, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil {
			return &n, nil
		}
		fmt.Fprintf(p.out, "%q is not a whole number.\n", answer)
	}
}

// Date asks until a YYYY-MM-DD date is given
func (p *Prompter) Date(label string) (time.Time, error) {
	for {
		d, err := p.OptionalDate(label)
		if err != nil {
			return time.Time{}, err
		}
		if d != nil {
			return *d, nil
		}
		fmt.Fprintln(p.out, "A date is required.")
	}
}

// OptionalDate returns nil for a blank answer and asks again for malformed dates
func (p *Prompter) OptionalDate(label string) (*time.Time, error) {
	for {
		answer, err := p.Line(label + " (YYYY-MM-DD)")
		if err != nil || answer == "" {
			return nil, err
		}
		d, parseErr := time.Parse(DateLayout, answer)
		if parseErr == nil {
			return &d, nil
		}
		fmt.Fprintf(p.out, "%q is not a valid date.\n", answer)
	}
}

// ClearableDate works like OptionalDate, except that typing clear reports cleared
// instead of a date.
func (p *Prompter) ClearableDate(label, clear string) (d *time.Time, cleared bool, err error) {
	for {
		answer, err := p.Line(label + " (YYYY-MM-DD, " + clear + " to clear)")
		if err != nil || answer == "" {
			return nil, false, err
		}
		if answer == clear {
			return nil, true, nil
		}
		parsed, parseErr := time.Parse(DateLayout, answer)
		if parseErr == nil {
			return &parsed, false, nil
		}
		fmt.Fprintf(p.out, "%q is not a valid date.\n", answer)
	}
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label + " [y/N]")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
