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

package embedded

import (
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallback(t *testing.T) {
	var got []event.Report
	e := New(WithCallbackFunc(func(r event.Report) error {
		got = append(got, r)
		return nil
	}))
	require.NoError(t, e.Start())
	report := event.Report{CredentialsScanned: 2, Matches: []string{"Alice"}}
	require.NoError(t, e.Report(context.Background(), report))
	require.NoError(t, e.Stop())
	require.Len(t, got, 1)
	assert.Equal(t, report, got[0])
	assert.Nil(t, e.OutputChan())
}

func TestCallbackError(t *testing.T) {
	e := New(WithCallbackFunc(func(event.Report) error {
		return errors.New("boom")
	}))
	require.NoError(t, e.Start())
	err := e.Report(context.Background(), event.Report{})
	assert.ErrorContains(t, err, "callback function error: boom")
}

func TestOutputChan(t *testing.T) {
	ch := make(chan event.Report, 1)
	e := New(WithOutputChan(ch))
	require.NoError(t, e.Start())
	require.NoError(t, e.Report(context.Background(), event.Report{CredentialsScanned: 1}))
	assert.Equal(t, 1, (<-e.OutputChan()).CredentialsScanned)

	require.NoError(t, e.Stop())
	require.NoError(t, e.Stop())
	_, ok := <-ch
	assert.False(t, ok)
	assert.ErrorIs(t, e.Report(context.Background(), event.Report{}), ErrStopped)
}

func TestOutputChanCanceled(t *testing.T) {
	e := New(WithOutputChan(make(chan event.Report)))
	require.NoError(t, e.Start())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Report(ctx, event.Report{}), context.Canceled)
}
