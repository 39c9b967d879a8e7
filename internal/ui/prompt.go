// package ui provides console styling and line-oriented input prompts for the
// interactive store menu.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

// Prompter reads line-oriented answers from the console. Invalid answers are
// re-asked until the input source runs out, which surfaces as [io.EOF].
type Prompter struct {
	in      *bufio.Scanner
	out     io.Writer
	palette *Palette
}

// NewPrompter creates a [Prompter] reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer, palette *Palette) *Prompter {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Prompter{in: bufio.NewScanner(in), out: out, palette: palette}
}

// ReadLine asks for one non-empty line of text.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.TrimSpace(p.in.Text())
		if line != "" {
			return line, nil
		}
		p.complain("input must not be empty")
	}
}

// ReadInt asks for an integer within [min, max].
func (p *Prompter) ReadInt(prompt string, min, max int) (int, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			p.complain("please enter a number")
			continue
		}
		if n < min || n > max {
			p.complain(fmt.Sprintf("please enter a number from %d to %d", min, max))
			continue
		}
		return n, nil
	}
}

// ReadID asks for a positive identifier.
func (p *Prompter) ReadID(prompt string) (int64, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil || id <= 0 {
			p.complain("please enter a positive id")
			continue
		}
		return id, nil
	}
}

// ReadFloat asks for a positive amount.
func (p *Prompter) ReadFloat(prompt string) (float64, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil || f <= 0 {
			p.complain("please enter a positive amount")
			continue
		}
		return f, nil
	}
}

// ReadDate asks for a zero-padded YYYY-MM-DD date.
func (p *Prompter) ReadDate(prompt string) (string, error) {
	for {
		line, err := p.ReadLine(prompt + " (YYYY-MM-DD)")
		if err != nil {
			return "", err
		}
		date, err := models.ParseDate(line)
		if err != nil {
			p.complain(shared.ErrInvalidDate.Error())
			continue
		}
		return date, nil
	}
}

func (p *Prompter) complain(msg string) {
	fmt.Fprintln(p.out, p.palette.Warn(msg))
}
