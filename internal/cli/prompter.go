package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter owns console line input for the interactive seats. Reads go
// through one shared bufio.Reader so buffered input is never lost between
// prompts.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

func (p *Prompter) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), err
}

// ReadNonEmpty re-prompts until the user types something. io.EOF with no
// pending text means the input stream is gone and the caller cannot
// continue.
func (p *Prompter) ReadNonEmpty(prompt string) (string, error) {
	for {
		line, err := p.ReadLine(prompt)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("input closed")
		}
		if err != nil {
			return "", err
		}
	}
}

func (p *Prompter) Confirm(prompt string) (bool, error) {
	for {
		line, err := p.ReadLine(fmt.Sprintf("%s [y/n]: ", prompt))
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err == io.EOF {
			return false, fmt.Errorf("input closed")
		}
		fmt.Fprintln(p.out, "Please answer 'yes' or 'no'.")
	}
}
