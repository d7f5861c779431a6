// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package csv

import (
	"context"
	gocsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
)

const pluginName = "csv"

// Header names recognized for each column, compared case-insensitively.
// These cover the exports of the common browser and password manager
// formats.
var (
	titleColumns    = []string{"name", "title", "account"}
	passwordColumns = []string{"password", "login_password", "pass"}
	groupColumns    = []string{"folder", "group", "grouping", "path"}
	usernameColumns = []string{"username", "login_username", "login", "user"}
)

type Csv struct {
	logger    plugin.Logger
	file      string
	separator string
	stdin     io.Reader
}

type columns struct {
	title    int
	password int
	group    int
	username int
}

// New returns a new Csv credential source
func New(opts ...CsvOptionFunc) *Csv {
	c := &Csv{
		separator: ",",
		stdin:     os.Stdin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start validates the configuration
func (c *Csv) Start() error {
	if c.file == "" {
		return &plugin.SourceError{
			Plugin: pluginName,
			Err:    errors.New("no file specified"),
		}
	}
	if r, _ := utf8.DecodeRuneInString(c.separator); r == utf8.RuneError {
		return &plugin.SourceError{
			Plugin: pluginName,
			Path:   c.file,
			Err:    fmt.Errorf("invalid separator %q", c.separator),
		}
	}
	return nil
}

// Stop is a no-op
func (c *Csv) Stop() error {
	return nil
}

// Credentials yields one credential per row with a non-empty password
func (c *Csv) Credentials(
	ctx context.Context,
) iter.Seq2[event.Credential, error] {
	return func(yield func(event.Credential, error) bool) {
		src, closeFn, err := c.open()
		if err != nil {
			yield(event.Credential{}, err)
			return
		}
		defer closeFn()

		reader := gocsv.NewReader(src)
		reader.Comma, _ = utf8.DecodeRuneInString(c.separator)
		reader.FieldsPerRecord = -1
		reader.ReuseRecord = true

		header, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("empty export")
			}
			yield(event.Credential{}, c.sourceError(err))
			return
		}
		cols, err := findColumns(header)
		if err != nil {
			yield(event.Credential{}, c.sourceError(err))
			return
		}
		for {
			if ctx.Err() != nil {
				yield(event.Credential{}, ctx.Err())
				return
			}
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(event.Credential{}, c.sourceError(err))
				return
			}
			var password string
			if cols.password < len(record) {
				password = record[cols.password]
			}
			if password == "" {
				continue
			}
			title := field(record, cols.title)
			if title == "" {
				line, _ := reader.FieldPos(0)
				c.warn(
					"entry has no title",
					"line", line,
				)
			} else if user := field(record, cols.username); user != "" {
				title = fmt.Sprintf("%s (%s)", title, user)
			}
			cred := event.Credential{
				Name: event.CredentialName(
					splitGroup(field(record, cols.group)),
					title,
				),
				Password: password,
			}
			if !yield(cred, nil) {
				return
			}
		}
	}
}

func (c *Csv) open() (io.Reader, func(), error) {
	if c.file == "-" {
		return c.stdin, func() {}, nil
	}
	f, err := os.Open(c.file)
	if err != nil {
		return nil, nil, c.sourceError(err)
	}
	return f, func() { _ = f.Close() }, nil
}

func (c *Csv) sourceError(err error) error {
	return &plugin.SourceError{
		Plugin: pluginName,
		Path:   c.file,
		Err:    err,
	}
}

func (c *Csv) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func findColumns(header []string) (columns, error) {
	cols := columns{title: -1, password: -1, group: -1, username: -1}
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		// A UTF-8 BOM is common in exports produced on Windows
		name = strings.TrimPrefix(name, "\ufeff")
		switch {
		case cols.title < 0 && slices.Contains(titleColumns, name):
			cols.title = idx
		case cols.password < 0 && slices.Contains(passwordColumns, name):
			cols.password = idx
		case cols.group < 0 && slices.Contains(groupColumns, name):
			cols.group = idx
		case cols.username < 0 && slices.Contains(usernameColumns, name):
			cols.username = idx
		}
	}
	if cols.password < 0 {
		return cols, errors.New("no password column in header")
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// splitGroup turns a folder path such as "Root/Email" into its parts
func splitGroup(group string) []string {
	if group == "" {
		return nil
	}
	parts := strings.Split(group, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
