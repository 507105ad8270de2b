package query

import (
	"fmt"
	"strings"

	"github.com/poiesic/placefinder/core"
)

const cancelHint = "Enter 'cancel' to cancel."

// disambiguationPrompt builds the numbered-options question shown when a
// location query matched several places.
func disambiguationPrompt(location string, options []core.LocationOption) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Multiple locations found for %q. Which one did you mean?\n", location)
	writeOptions(&b, options)
	b.WriteString("Choose by number or name. ")
	b.WriteString(cancelHint)
	return b.String()
}

// repromptInvalidSelection builds the question shown again after an answer
// that matched no option.
func repromptInvalidSelection(options []core.LocationOption) string {
	var b strings.Builder
	b.WriteString("That didn't match any of the options. Please choose one of:\n")
	writeOptions(&b, options)
	b.WriteString("Choose by number or name. ")
	b.WriteString(cancelHint)
	return b.String()
}

func writeOptions(b *strings.Builder, options []core.LocationOption) {
	for i, option := range options {
		fmt.Fprintf(b, "%d. %s (%s)\n", i+1, option.DisplayValue, option.Kind)
	}
}
