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

package event

import (
	"fmt"
	"strings"
	"time"
)

const (
	TypeReport = "pwcheck.report"

	// Untitled is the title used for entries without one
	Untitled = "(untitled)"

	nameSeparator = " -> "
)

// Report wording shared by the outputs
const (
	MessageNothingScanned = "No credentials with passwords were found."
	MessageNoMatches      = "No matching passwords found in the Pwned Passwords database!"
	MessageMatchesHeader  = "These passwords were found in the Pwned Passwords database:"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func New(eventType string, timestamp time.Time, payload any) Event {
	return Event{
		Type:      eventType,
		Timestamp: timestamp,
		Payload:   payload,
	}
}

// Credential is a single entry produced by a credential source. Name is a
// human readable label such as "Root -> Email -> Work account".
type Credential struct {
	Name     string
	Password string
}

// CredentialName builds the label of an entry from the groups leading to it
// and its title. An empty title is replaced by Untitled.
func CredentialName(path []string, title string) string {
	if title == "" {
		title = Untitled
	}
	parts := make([]string, 0, len(path)+1)
	for _, p := range path {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, title)
	return strings.Join(parts, nameSeparator)
}

// Report is the result of a finished scan
type Report struct {
	// Matches holds the sorted names of credentials whose password was
	// found in the breach corpus
	Matches            []string  `json:"matches"`
	CredentialsScanned int       `json:"credentialsScanned"`
	PrefixesQueried    int       `json:"prefixesQueried"`
	Backend            string    `json:"backend"`
	StartedAt          time.Time `json:"startedAt"`
	FinishedAt         time.Time `json:"finishedAt"`
}

// Scanned reports whether any credentials were checked at all
func (r Report) Scanned() bool {
	return r.CredentialsScanned > 0
}

// Breached reports whether at least one credential matched
func (r Report) Breached() bool {
	return len(r.Matches) > 0
}

// Summary returns a one line description of the outcome
func (r Report) Summary() string {
	switch {
	case !r.Scanned():
		return MessageNothingScanned
	case !r.Breached():
		return MessageNoMatches
	case len(r.Matches) == 1:
		return fmt.Sprintf(
			"1 of %d credentials uses a password found in the Pwned Passwords database",
			r.CredentialsScanned,
		)
	default:
		return fmt.Sprintf(
			"%d of %d credentials use passwords found in the Pwned Passwords database",
			len(r.Matches),
			r.CredentialsScanned,
		)
	}
}

// NewReportEvent wraps a report in an event envelope stamped with its
// finish time
func NewReportEvent(report Report) Event {
	return New(TypeReport, report.FinishedAt, report)
}
