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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/placefinder/ai"
	"github.com/poiesic/placefinder/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// FieldExtractor implements ai.FieldExtractor using OpenAI-compatible chat APIs.
type FieldExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newFieldExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newFieldExtractor(config *ai.Config) (*FieldExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &FieldExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewFieldExtractor creates a new field extractor using the provided configuration.
//
// Returns ai.FieldExtractor interface to enforce abstraction.
func NewFieldExtractor(config *ai.Config) (ai.FieldExtractor, error) {
	return newFieldExtractor(config)
}

// ExtractFields extracts structured search fields from a user query using an LLM.
func (e *FieldExtractor) ExtractFields(ctx context.Context, query string) (*core.ExtractedFields, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var fields core.ExtractedFields
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &core.ExtractedFields{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		fields = core.ExtractedFields{}
		if err := json.Unmarshal([]byte(responseText), &fields); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	e.logger.Debug("extracted fields",
		"location", fields.Location,
		"place", fields.PlaceToSearch,
		"requests", len(fields.AdditionalRequests))

	return &fields, nil
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// JSON responses in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
