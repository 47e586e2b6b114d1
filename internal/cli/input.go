package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetConfirmation prints a yes/no prompt and reads one line. Anything
// starting with "y" or "Y" counts as yes; everything else, including EOF with
// no input, is no.
func GetConfirmation(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// GetPackageNames prompts for package names, one per line, ending on an empty
// line. Whitespace-only lines terminate the read; duplicates are kept, the
// repository upsert makes them harmless.
func GetPackageNames(reader *bufio.Reader, w io.Writer) ([]string, error) {
	if _, err := fmt.Fprintln(w, "Enter package names, one per line (empty line to finish)"); err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		names = append(names, line)
	}
	return names, nil
}

// GetTags prompts for a comma-separated tag line and splits it. An empty
// line yields no tags.
func GetTags(reader *bufio.Reader, w io.Writer) ([]string, error) {
	line, err := GetSimpleText(reader, "Enter tags, comma-separated (empty for none)", w)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	var tags []string
	for _, tag := range strings.Split(line, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
