package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Run reads commands from r until EOF, exit or ctx is cancelled, writing each
// result to w. Command errors are printed and the loop continues.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer, prompt string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if prompt != "" {
			fmt.Fprint(w, prompt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			done, err := s.execAndPrint(w, line)
			if done {
				return nil
			}
			if err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
		}
	}
}

// Script runs commands separated by ';' or newlines and stops at the first
// failure.
func (s *Session) Script(script string, w io.Writer) error {
	for _, line := range strings.FieldsFunc(script, func(r rune) bool { return r == ';' || r == '\n' }) {
		done, err := s.execAndPrint(w, line)
		if done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", strings.TrimSpace(line), err)
		}
	}
	return nil
}

func (s *Session) execAndPrint(w io.Writer, line string) (done bool, err error) {
	out, err := s.Exec(line)
	if IsExit(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if out != "" {
		fmt.Fprintln(w, out)
	}
	return false, nil
}
