package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/theflywheel/probetable"
	"github.com/theflywheel/probetable/internal/dictionary"
)

const menuText = `
Menu:
1. read a file
2. add a word
3. find a word
4. delete a word
5. quit
`

func newMenuCommand(fs afero.Fs) *cobra.Command {
	var tf tableFlags
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Edit a dictionary interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &menu{
				fs:   fs,
				dict: tf.dictionary(),
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
			}
			return m.run(cmd)
		},
	}
	tf.register(cmd, probetable.DefaultHashBase, probetable.DefaultCapacity)
	return cmd
}

type menu struct {
	fs   afero.Fs
	dict *dictionary.Dictionary
	in   *bufio.Scanner
	out  io.Writer
}

var (
	// errQuit ends the menu loop without an error
	errQuit = errors.New("quit")
	// errInput ends the menu loop with an error
	errInput = errors.New("reading input")
)

// ask prints prompt and returns the next input line
func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", errors.Mark(errors.Wrap(err, "reading input"), errInput)
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// run loops until the user quits or the input ends. Mistakes in a single
// command are reported and the loop continues.
func (m *menu) run(cmd *cobra.Command) error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.ask("\nEnter command: ")
		if err == nil {
			err = m.dispatch(cmd, choice)
		}
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, errInput):
			return err
		case err != nil:
			fmt.Fprintf(m.out, "error: %v\n", err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintf(m.out, "hint: %s\n", hint)
			}
		}
	}
}

func (m *menu) dispatch(cmd *cobra.Command, choice string) error {
	switch choice {
	case "1":
		return m.readFile(cmd)
	case "2":
		word, err := m.ask("Please enter a word you would like to add\n")
		if err != nil {
			return err
		}
		if err := m.dict.AddWord(word); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "The word you entered is successfully added to the dictionary")
	case "3":
		word, err := m.ask("Please enter a word you would like to search\n")
		if err != nil {
			return err
		}
		found, err := m.dict.FindWord(word)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintf(m.out, "%s exists in the dictionary\n", word)
		} else {
			fmt.Fprintf(m.out, "%s does not exist in the dictionary\n", word)
		}
	case "4":
		word, err := m.ask("Please enter a word you would like to delete\n")
		if err != nil {
			return err
		}
		if err := m.dict.DeleteWord(word); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "The word you entered is successfully deleted from the dictionary")
	case "5":
		return errQuit
	default:
		fmt.Fprintln(m.out, "Invalid option number. Please try again with valid number")
	}
	return nil
}

func (m *menu) readFile(cmd *cobra.Command) error {
	name, err := m.ask("Enter a name of the file\n")
	if err != nil {
		return err
	}
	choice, err := m.ask("Would you like to limit the time of reading the file? -> Yes or No\n")
	if err != nil {
		return err
	}

	var budget time.Duration
	switch strings.ToLower(choice) {
	case "yes", "y":
		limit, err := m.ask("Please enter a time limit for reading a file in integer seconds\n")
		if err != nil {
			return err
		}
		secs, err := strconv.Atoi(limit)
		if err != nil || secs < 0 {
			return errors.Newf("time limit must be a non-negative integer, got %q", limit)
		}
		budget = time.Duration(secs) * time.Second
	case "no", "n":
	default:
		return errors.New("must choose either Yes or No")
	}

	words, err := m.dict.Load(cmd.Context(), m.fs, name, budget)
	if errors.Is(err, dictionary.ErrTimeout) {
		fmt.Fprintf(m.out, "Loading time has exceeded the limit of %s\n", budget)
		err = nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, words)
	return nil
}
