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

package yaml

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
	"gopkg.in/yaml.v3"
)

const pluginName = "yaml"

// Group is a node of the vault tree. The root group's name is part of every
// credential label.
type Group struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
	Groups  []Group `yaml:"groups"`
}

type Entry struct {
	Title    string `yaml:"title"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	URL      string `yaml:"url"`
	Notes    string `yaml:"notes"`
}

type Yaml struct {
	logger plugin.Logger
	file   string
	stdin  io.Reader
}

// New returns a new Yaml credential source
func New(opts ...YamlOptionFunc) *Yaml {
	y := &Yaml{
		stdin: os.Stdin,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Start validates the configuration
func (y *Yaml) Start() error {
	if y.file == "" {
		return &plugin.SourceError{
			Plugin: pluginName,
			Err:    errors.New("no file specified"),
		}
	}
	return nil
}

// Stop is a no-op
func (y *Yaml) Stop() error {
	return nil
}

// Credentials walks the tree depth first, entries before subgroups, and
// yields every entry with a non-empty password
func (y *Yaml) Credentials(
	ctx context.Context,
) iter.Seq2[event.Credential, error] {
	return func(yield func(event.Credential, error) bool) {
		root, err := y.load()
		if err != nil {
			yield(event.Credential{}, err)
			return
		}
		y.walk(ctx, root, nil, yield)
	}
}

func (y *Yaml) load() (*Group, error) {
	var src io.Reader = y.stdin
	if y.file != "-" {
		f, err := os.Open(y.file)
		if err != nil {
			return nil, y.sourceError(err)
		}
		defer f.Close()
		src = f
	}
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)
	root := &Group{}
	if err := dec.Decode(root); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, y.sourceError(err)
	}
	return root, nil
}

// walk returns false once the consumer stopped or an error was yielded
func (y *Yaml) walk(
	ctx context.Context,
	group *Group,
	path []string,
	yield func(event.Credential, error) bool,
) bool {
	if err := ctx.Err(); err != nil {
		yield(event.Credential{}, err)
		return false
	}
	path = append(path, group.Name)
	for _, entry := range group.Entries {
		if entry.Password == "" {
			continue
		}
		if entry.Title == "" && y.logger != nil {
			y.logger.Warn(
				"entry has no title",
				"group", event.CredentialName(path[:len(path)-1], group.Name),
			)
		}
		cred := event.Credential{
			Name:     event.CredentialName(path, entry.Title),
			Password: entry.Password,
		}
		if !yield(cred, nil) {
			return false
		}
	}
	for i := range group.Groups {
		// Clip so sibling groups do not share a backing array
		if !y.walk(ctx, &group.Groups[i], path[:len(path):len(path)], yield) {
			return false
		}
	}
	return true
}

func (y *Yaml) sourceError(err error) error {
	return &plugin.SourceError{
		Plugin: pluginName,
		Path:   y.file,
		Err:    err,
	}
}
