package options

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
)

// configFile is a tiny "key = value;" grammar, a flattened list of
// settings rather than a statement language.
type configFile struct {
	Settings []*setting `parser:"@@*"`
}

type setting struct {
	Key   string `parser:"@Ident '='"`
	Value string `parser:"@(Ident|Int|Float) (@'-' @(Ident|Int|Float))* ';'"`
}

var configParser = participle.MustBuild[configFile]()

// LoadFile parses an options file into an Options record holding only the
// keys the file sets (every other field is left at its zero value, ready
// to be merged onto Default()), reporting unknown keys and malformed
// values as errors instead of silently ignoring them.
func LoadFile(data string) (Options, error) {
	cf, err := configParser.ParseString("options", data)
	if err != nil {
		return Options{}, fmt.Errorf("parsing options file: %w", err)
	}
	o := Options{}
	for _, s := range cf.Settings {
		if err := apply(&o, s.Key, s.Value); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

func apply(o *Options, key, value string) error {
	switch key {
	case "mode":
		o.Mode = Mode(value)
	case "cutPoint":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("cutPoint: %w", err)
		}
		o.CutPoint = b
	case "succEmptyCheck":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("succEmptyCheck: %w", err)
		}
		o.SuccEmptyCheck = b
	case "ROMinState":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("ROMinState: %w", err)
		}
		o.ROMinState = n
	case "ROMinRank":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("ROMinRank: %w", err)
		}
		o.ROMinRank = n
	case "CacheMaxState":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("CacheMaxState: %w", err)
		}
		o.CacheMaxState = n
	case "CacheMaxRank":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("CacheMaxRank: %w", err)
		}
		o.CacheMaxRank = n
	case "semidetOpt":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("semidetOpt: %w", err)
		}
		o.SemidetOpt = b
	case "delay":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("delay: %w", err)
		}
		o.Delay = b
	case "w":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("w: %w", err)
		}
		o.Weight = f
	case "version":
		o.Version = Version(value)
	case "elevatorRank":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("elevatorRank: %w", err)
		}
		o.ElevatorRank = b
	case "eta4":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("eta4: %w", err)
		}
		o.Eta4 = b
	default:
		return fmt.Errorf("unknown options key %q", key)
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected true/false, got %q", v)
	}
}
