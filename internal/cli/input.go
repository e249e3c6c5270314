package cli

import (
	"bufio"
	"io"
	"os"
)

var stdin io.Reader = os.Stdin

func readLine() (string, error) {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// SetInput replaces stdin for prompts and returns a restore func.
func SetInput(r io.Reader) func() {
	old := stdin
	stdin = r
	return func() { stdin = old }
}
