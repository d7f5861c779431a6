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
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVault = `
name: Root
entries:
  - title: Router
    password: admin
groups:
  - name: Email
    entries:
      - title: Work
        username: alice
        password: hunter2
      - title: Notes only
    groups:
      - name: Old
        entries:
          - password: letmein
  - name: Banking
    entries:
      - title: Checking
        password: "correct horse battery staple"
`

func writeVault(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collect(t *testing.T, y *Yaml) ([]event.Credential, error) {
	t.Helper()
	var creds []event.Credential
	for cred, err := range y.Credentials(context.Background()) {
		if err != nil {
			return creds, err
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

func TestCredentialsTree(t *testing.T) {
	y := New(WithFile(writeVault(t, testVault)))
	require.NoError(t, y.Start())
	creds, err := collect(t, y)
	require.NoError(t, err)
	assert.Equal(t, []event.Credential{
		{Name: "Root -> Router", Password: "admin"},
		{Name: "Root -> Email -> Work", Password: "hunter2"},
		{Name: "Root -> Email -> Old -> (untitled)", Password: "letmein"},
		{Name: "Root -> Banking -> Checking", Password: "correct horse battery staple"},
	}, creds)
}

func TestCredentialsStdin(t *testing.T) {
	y := New(WithFile("-"))
	y.stdin = strings.NewReader("name: Vault\nentries:\n  - title: A\n    password: x\n")
	creds, err := collect(t, y)
	require.NoError(t, err)
	assert.Equal(t, []event.Credential{{Name: "Vault -> A", Password: "x"}}, creds)
}

func TestCredentialsStopEarly(t *testing.T) {
	y := New(WithFile(writeVault(t, testVault)))
	var names []string
	for cred, err := range y.Credentials(context.Background()) {
		require.NoError(t, err)
		names = append(names, cred.Name)
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Root -> Router", "Root -> Email -> Work"}, names)
}

func TestCredentialsErrors(t *testing.T) {
	testDefs := []struct {
		name    string
		content string
		path    string
		target  error
	}{
		{
			name:    "unknown field",
			content: "name: Root\nentrys: []\n",
		},
		{
			name:    "not a mapping",
			content: "- just\n- a list\n",
		},
		{
			name:    "empty document",
			content: "",
		},
		{
			name:   "missing file",
			path:   filepath.Join(t.TempDir(), "missing.yaml"),
			target: fs.ErrNotExist,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			path := testDef.path
			if path == "" {
				path = writeVault(t, testDef.content)
			}
			creds, err := collect(t, New(WithFile(path)))
			require.Error(t, err)
			assert.Empty(t, creds)
			var srcErr *plugin.SourceError
			require.True(t, errors.As(err, &srcErr))
			assert.Equal(t, "yaml", srcErr.Plugin)
			if testDef.target != nil {
				assert.ErrorIs(t, err, testDef.target)
			}
		})
	}
}

func TestStartRequiresFile(t *testing.T) {
	var srcErr *plugin.SourceError
	assert.ErrorAs(t, New().Start(), &srcErr)
}

func TestCredentialsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var gotErr error
	for _, err := range New(WithFile(writeVault(t, testVault))).Credentials(ctx) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}
