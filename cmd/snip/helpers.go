package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"snip/pkg/domain"
)

// printRecord renders a snippet as "<id>: <pretty JSON>".
func printRecord(w io.Writer, s domain.Snippet) error {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d: %s", s.ID, buf.Bytes())
	return err
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid snippet id %q", arg)
	}
	return id, nil
}

// informational reports NotFound and EmptyStore on stderr and swallows them;
// everything else propagates to a non-zero exit.
func (a *app) informational(err error) error {
	var nf domain.ErrNotFound
	switch {
	case errors.As(err, &nf):
		a.infof("Snippet with ID %d not found", nf.ID)
		return nil
	case errors.Is(err, domain.ErrEmptyStore):
		a.infof("No snippets to pop")
		return nil
	default:
		return err
	}
}
