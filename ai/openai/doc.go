// Package openai provides ai interface implementations backed by
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
package openai
