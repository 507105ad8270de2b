// Package places finds venues reachable within a travel budget from a
// resolved location. The Searcher orchestrates a provider-agnostic flow:
// nearby search with a radius derived from the budget, bulk travel-time
// measurement, rating and reachability filtering, then concurrent detail
// fetches for the venues that survive.
//
// The google subpackage implements Provider against the Google Maps
// Platform; the mock subpackage provides a test double.
package places
