// Package language validates FLEURS language configs and maps them to BCP 47
// tags and display names.
//
// FLEURS names its configs with lowercase ISO 639 codes joined to a region
// (and sometimes a script) by underscores, e.g. "hi_in" or "cmn_hans_cn".
// Parsing and naming go through golang.org/x/text so the CLI can print
// "Hindi (India)" next to the raw code.
package language
