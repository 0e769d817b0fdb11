package language

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidCode is returned when a value is not a FLEURS language config.
var ErrInvalidCode = errors.New("invalid language code")

var codePattern = regexp.MustCompile(`^[a-z]{2,3}(_[a-z]{4})?_[a-z]{2}$`)

// Normalize lowercases and trims code and converts BCP 47 hyphens to the
// underscore form FLEURS uses.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	return strings.ReplaceAll(code, "-", "_")
}

// Validate reports whether code is a well-formed FLEURS language config.
func Validate(code string) error {
	normalized := Normalize(code)
	if !codePattern.MatchString(normalized) {
		return fmt.Errorf("%w: %q (expected form like \"hi_in\")", ErrInvalidCode, code)
	}
	if _, err := Tag(normalized); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidCode, code, err)
	}
	return nil
}

// Tag parses a FLEURS code into a BCP 47 tag.
func Tag(code string) (xlanguage.Tag, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return xlanguage.Und, fmt.Errorf("%w: empty", ErrInvalidCode)
	}
	return xlanguage.Parse(strings.ReplaceAll(normalized, "_", "-"))
}

// DisplayName returns the English name for code, e.g. "Hindi (India)".
// Unparseable or unnamed codes are returned as given.
func DisplayName(code string) string {
	tag, err := Tag(code)
	if err != nil {
		return strings.TrimSpace(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return Normalize(code)
}

// ISO3 returns the ISO 639-3 code of the base language, e.g. "hin" for
// "hi_in". It returns "und" when the base language is unknown.
func ISO3(code string) string {
	tag, err := Tag(code)
	if err != nil {
		return "und"
	}
	base, _ := tag.Base()
	if iso := base.ISO3(); iso != "" {
		return iso
	}
	return "und"
}
