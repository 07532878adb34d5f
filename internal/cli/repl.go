/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	prompt      = "dmx> "
	historyFile = ".dmx_history"
)

// lineReader is the part of *liner.State the REPL loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl reads commands until :quit, end of input or Ctrl-C. Command errors
// are printed and do not end the loop.
func repl(s *Session, lr lineReader, out io.Writer) error {
	for {
		line, err := lr.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lr.AppendHistory(line)
		if line == ":quit" {
			return nil
		}

		res, err := s.Exec(line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
}

// RunREPL starts an interactive session on the terminal. History is kept in
// ~/.dmx_history.
func RunREPL(s *Session, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(out, "type 'help' for commands, ':quit' to leave")
	return repl(s, ln, out)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
