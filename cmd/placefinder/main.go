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


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/placefinder/ai"
	"github.com/poiesic/placefinder/ai/openai"
	"github.com/poiesic/placefinder/cache"
	badgercache "github.com/poiesic/placefinder/cache/badger"
	rediscache "github.com/poiesic/placefinder/cache/redis"
	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/geo"
	"github.com/poiesic/placefinder/geo/nominatim"
	"github.com/poiesic/placefinder/places"
	"github.com/poiesic/placefinder/places/google"
	"github.com/poiesic/placefinder/query"
	"github.com/poiesic/placefinder/rank"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "placefinder",
		Usage: "Natural-language local search: understand a request, find venues, rank them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a free-text search, e.g. 'quiet coffee shop in Paris within 10 minutes walking'",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "extractor-host",
						Usage: "Extraction LLM service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "extractor-model",
						Usage: "Extraction LLM model name",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (defaults to extractor-host)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
					&cli.StringFlag{
						Name:    "ai-token",
						Usage:   "API token for the LLM services",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "maps-api-key",
						Usage:   "Google Maps API key; omit to stop after query understanding",
						EnvVars: []string{"GOOGLE_MAPS_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "cache-db",
						Usage: "Path to a BadgerDB directory for the location cache",
					},
					&cli.StringFlag{
						Name:    "redis",
						Usage:   "Redis address (host:port) for the location cache; overrides cache-db",
						EnvVars: []string{"REDIS_ADDR"},
					},
					&cli.StringFlag{
						Name:  "anchor",
						Usage: "Location substituted for 'near me' queries",
						Value: "New York City",
					},
					&cli.Float64Flag{
						Name:  "lat",
						Usage: "User latitude, used to order ambiguous locations by distance",
					},
					&cli.Float64Flag{
						Name:  "lon",
						Usage: "User longitude, used to order ambiguous locations by distance",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of ranked venues to print",
						Value: 5,
					},
				},
			},
			{
				Name:      "resolve",
				Usage:     "Resolve a location string to coordinates without running a search",
				ArgsUsage: "LOCATION",
				Action:    resolveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cache-db",
						Usage: "Path to a BadgerDB directory for the location cache",
					},
					&cli.StringFlag{
						Name:  "anchor",
						Usage: "Location substituted for 'near me' queries",
						Value: "New York City",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("query text is required")
	}

	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("extractor-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithExtractorHost(c.String("extractor-host")),
		ai.WithExtractorModel(c.String("extractor-model")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithToken(c.String("ai-token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	locationCache, err := openCache(ctx, c)
	if err != nil {
		return err
	}
	if locationCache != nil {
		defer locationCache.Close()
	}

	resolver, err := newResolver(c, locationCache)
	if err != nil {
		return err
	}

	pipeline, err := query.NewPipeline(provider.FieldExtractor(), resolver)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	userCoords := userCoordinates(c)
	validated, err := runPipeline(ctx, pipeline, queryText, userCoords)
	if err != nil {
		return err
	}
	if validated == nil {
		// Cancelled or unrecoverable; messages were already printed.
		return nil
	}

	mapsKey := c.String("maps-api-key")
	if mapsKey == "" {
		// Without a venue data source, report the understood query.
		return printJSON(validated)
	}

	venues, err := findVenues(ctx, mapsKey, validated)
	if err != nil {
		return err
	}
	if len(venues) == 0 {
		fmt.Println("No venues found within your travel budget.")
		return nil
	}

	ranker, err := rank.NewRanker(provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to create ranker: %w", err)
	}

	ranked, err := ranker.Rank(ctx, venues, validated.AdditionalRequests, rank.Weights{})
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	printRanked(ranked, c.Int("top"))
	return nil
}

func resolveCommand(c *cli.Context) error {
	ctx := context.Background()

	location := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if location == "" {
		return fmt.Errorf("location text is required")
	}

	locationCache, err := openCache(ctx, c)
	if err != nil {
		return err
	}
	if locationCache != nil {
		defer locationCache.Close()
	}

	resolver, err := newResolver(c, locationCache)
	if err != nil {
		return err
	}

	result, err := resolver.Resolve(ctx, location, nil)
	if err != nil {
		return err
	}
	return printJSON(result)
}

// runPipeline drives the query pipeline, looping through disambiguation
// prompts on stdin until the turn succeeds, errors, or is cancelled.
// Returns nil fields (and nil error) when there is nothing to search for.
func runPipeline(ctx context.Context, pipeline *query.Pipeline, queryText string, userCoords *core.Coordinates) (*core.ValidatedFields, error) {
	reader := bufio.NewReader(os.Stdin)

	input := queryText
	var pending *core.DisambiguationContext

	for {
		result, err := pipeline.Process(ctx, input, userCoords, pending)
		if err != nil {
			return nil, err
		}

		switch result.Status {
		case query.StatusSuccess:
			return result.Validated, nil

		case query.StatusPrompt:
			fmt.Println(result.Prompt)
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil, fmt.Errorf("failed to read selection: %w", err)
			}
			input = strings.TrimSpace(line)
			pending = result.Context

		default:
			for _, message := range result.Errors {
				fmt.Println(message)
			}
			if result.Prompt != "" {
				fmt.Println(result.Prompt)
			}
			return nil, nil
		}
	}
}

func findVenues(ctx context.Context, mapsKey string, validated *core.ValidatedFields) ([]*core.Venue, error) {
	if validated.Location == nil || !validated.Location.Resolved() {
		return nil, fmt.Errorf("no resolved location to search around")
	}

	placesProvider, err := google.NewProvider(mapsKey, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create places provider: %w", err)
	}

	searcher, err := places.NewSearcher(placesProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	return searcher.Search(ctx, places.Request{
		Center:       *validated.Location.Coordinates,
		Keyword:      validated.PlaceToSearch,
		Travel:       *validated.TravelDuration,
		MinimumStars: validated.MinimumStars,
	})
}

func openCache(ctx context.Context, c *cli.Context) (cache.Cache, error) {
	if addr := c.String("redis"); addr != "" {
		redisCache, err := rediscache.Open(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis cache: %w", err)
		}
		return redisCache, nil
	}
	if path := c.String("cache-db"); path != "" {
		badgerCache, err := badgercache.OpenCache(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		return badgerCache, nil
	}
	return nil, nil
}

func newResolver(c *cli.Context, locationCache cache.Cache) (*geo.Resolver, error) {
	opts := []geo.Option{
		geo.WithAnchor(c.String("anchor")),
	}
	if locationCache != nil {
		opts = append(opts, geo.WithCache(locationCache))
	}

	resolver, err := geo.NewResolver(nominatim.New(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return resolver, nil
}

func userCoordinates(c *cli.Context) *core.Coordinates {
	if !c.IsSet("lat") || !c.IsSet("lon") {
		return nil
	}
	return &core.Coordinates{Lat: c.Float64("lat"), Lon: c.Float64("lon")}
}

func printRanked(ranked []core.RankedVenue, top int) {
	if top > len(ranked) {
		top = len(ranked)
	}
	for i := 0; i < top; i++ {
		venue := ranked[i].Venue
		fmt.Printf("%d. %s (%.1f stars, %.0f min %s) score %.3f\n",
			i+1, venue.Name, venue.Rating, venue.TravelTime, venue.TravelMode, ranked[i].CombinedScore)
		if venue.Address != "" {
			fmt.Printf("   %s\n", venue.Address)
		}
	}
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
