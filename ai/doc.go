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


// Package ai provides abstractions for the AI services used by Placefinder.
//
// This package defines interfaces for text embeddings and query field
// extraction. The query pipeline and ranker depend on these abstractions
// rather than on concrete implementations.
//
// The package is designed around three key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - FieldExtractor: extracts structured search fields from a user query
//   - AIProvider: aggregates AI services for convenient initialization
//
// Two implementation sub-packages are included:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert call counts.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//	mockEx := mock.NewMockFieldExtractor()       // returns *mock.MockFieldExtractor
package ai
