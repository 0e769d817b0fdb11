package config

// Overrides carries per-run values from command-line flags. Zero values
// leave the loaded configuration untouched.
type Overrides struct {
	Languages   []string
	Limit       int
	OutputRoot  string
	Split       string
	AudioFormat string
	SourceKind  string
	LocalDir    string
}

// Apply returns a copy of c with the overrides applied, normalized, and
// validated. c itself is not modified.
func (o Overrides) Apply(c *Config) (*Config, error) {
	out := *c
	out.Export.Languages = append([]string(nil), c.Export.Languages...)

	if len(o.Languages) > 0 {
		out.Export.Languages = append([]string(nil), o.Languages...)
	}
	if o.Limit != 0 {
		out.Export.Limit = o.Limit
	}
	if o.OutputRoot != "" {
		out.Export.OutputRoot = o.OutputRoot
	}
	if o.Split != "" {
		out.Export.Split = o.Split
	}
	if o.AudioFormat != "" {
		out.Export.AudioFormat = o.AudioFormat
	}
	if o.SourceKind != "" {
		out.Source.Kind = o.SourceKind
	}
	if o.LocalDir != "" {
		out.Source.LocalDir = o.LocalDir
	}

	if err := out.normalize(); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
