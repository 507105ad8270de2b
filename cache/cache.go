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


// Package cache defines the optional string-valued TTL cache used to
// short-circuit repeated location resolution. A cache miss (or any cache
// failure) never blocks correctness: callers fall through to live resolution.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a simple string key-value store with per-entry TTL.
// Implementations provide their own concurrency guarantees; callers assume
// only that Get and SetEx are safe to call from a single goroutine at a time.
type Cache interface {
	// Get returns the value stored under key, or ErrMiss if absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// SetEx stores value under key with the given time-to-live.
	SetEx(ctx context.Context, key string, ttl time.Duration, value string) error

	// Close releases resources held by the cache.
	Close() error
}
