// Copyright 2025 Poiesic Systems
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


package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/poiesic/placefinder/core"
)

const (
	cancelledMessage = "Search cancelled."
	cancelledPrompt  = "Start a new search whenever you're ready."
)

// Resume continues a turn that paused on a disambiguation prompt. The
// response is matched as a 1-based option number, then as an exact or
// substring option name, case-insensitively and in option order. "cancel"
// ends the turn. An unmatched answer reprompts with the same context.
func (p *Pipeline) Resume(ctx context.Context, response string, pending *core.DisambiguationContext) (*Result, error) {
	if pending == nil {
		return nil, ErrNoPendingContext
	}

	answer := strings.ToLower(strings.TrimSpace(response))
	if answer == "cancel" {
		p.logger.Debug("disambiguation cancelled", "query", pending.OriginalQuery)
		return &Result{
			Status: StatusError,
			Prompt: cancelledPrompt,
			Errors: []string{cancelledMessage},
		}, nil
	}

	selected, ok := matchOption(answer, pending.Options)
	if !ok {
		return &Result{
			Status:  StatusPrompt,
			Prompt:  repromptInvalidSelection(pending.Options),
			Context: pending,
		}, nil
	}

	p.logger.Debug("disambiguation resolved",
		"query", pending.OriginalQuery,
		"selection", selected.DisplayValue)

	// Re-run validation with the chosen place substituted for the original
	// location text. The already-extracted fields are reused, so the answer
	// never goes back through extraction.
	fields := pending.Extracted
	fields.Location = selected.DisplayValue
	return p.processExtracted(ctx, pending.OriginalQuery, &fields, pending.UserCoords)
}

// matchOption resolves a normalized answer to one of the options, by 1-based
// index first, then by name.
func matchOption(answer string, options []core.LocationOption) (core.LocationOption, bool) {
	if answer == "" {
		return core.LocationOption{}, false
	}

	if index, err := strconv.Atoi(answer); err == nil {
		if index < 1 || index > len(options) {
			return core.LocationOption{}, false
		}
		return options[index-1], true
	}

	for _, option := range options {
		display := strings.ToLower(option.DisplayValue)
		if display == answer || strings.Contains(display, answer) {
			return option, true
		}
	}
	return core.LocationOption{}, false
}
