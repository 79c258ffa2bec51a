// Package config holds the process-wide money settings.
//
// Every upper-case name below has a built-in value that may be shadowed by an
// external setting of the same name carrying the MONEY_ prefix, e.g.
// CURRENCY_CHOICES is replaced by MONEY_CURRENCY_CHOICES when that is set in the
// environment, a .env file, or a settings file. Settings are read once at startup
// into an immutable Settings value which is passed to constructors.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Prefix is prepended to every setting name when looking up external overrides.
const Prefix = "MONEY_"

// Setting names.
const (
	CurrencyChoicesKey = "CURRENCY_CHOICES"
	CurrencyDefaultKey = "CURRENCY_DEFAULT"
)

// Built-in values, used when no MONEY_ override exists.
const (
	BuiltinCurrencyChoices = "EUR"
	BuiltinCurrencyDefault = "EUR"
)

// Choice is one legal currency code and its display label.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Settings is the resolved money configuration.
type Settings struct {
	CurrencyChoices []Choice
	CurrencyDefault string
}

// Codes returns the codes of the configured choices in order.
func (s Settings) Codes() []string {
	return ChoiceCodes(s.CurrencyChoices)
}

// ChoiceCodes extracts the codes of the given choices.
func ChoiceCodes(choices []Choice) []string {
	codes := make([]string, len(choices))
	for i, c := range choices {
		codes[i] = c.Code
	}
	return codes
}

// Choices builds choices whose labels equal their codes.
func Choices(codes ...string) []Choice {
	out := make([]Choice, len(codes))
	for i, code := range codes {
		out[i] = Choice{Code: code, Label: code}
	}
	return out
}

// DefaultSettings returns the built-in settings without consulting any override.
func DefaultSettings() Settings {
	return Settings{
		CurrencyChoices: Choices(BuiltinCurrencyChoices),
		CurrencyDefault: BuiltinCurrencyDefault,
	}
}

type loadOptions struct {
	v            *viper.Viper
	settingsFile string
	envFiles     []string
	logger       *slog.Logger
}

// LoadOption configures LoadSettings.
type LoadOption func(*loadOptions)

// WithViper makes LoadSettings read from the given viper instance.
func WithViper(v *viper.Viper) LoadOption {
	return func(o *loadOptions) {
		o.v = v
	}
}

// WithSettingsFile reads overrides from a settings file (any format viper supports).
func WithSettingsFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.settingsFile = path
	}
}

// WithEnvFiles loads the given .env files instead of the default ./.env.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// LoadSettings resolves the settings: built-in values, shadowed by MONEY_* overrides.
func LoadSettings(opts ...LoadOption) (Settings, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.v == nil {
		o.v = viper.New()
	}

	// Attempt to load .env file, ignore error if it doesn't exist
	if err := godotenv.Load(o.envFiles...); err != nil {
		o.logger.Debug("No .env file loaded for money settings", slog.String("error", err.Error()))
	}

	v := o.v
	v.AutomaticEnv()
	if o.settingsFile != "" {
		v.SetConfigFile(o.settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read money settings file %s: %w", o.settingsFile, err)
		}
	}

	settings := DefaultSettings()

	if key := Prefix + CurrencyChoicesKey; v.IsSet(key) {
		choices, err := parseChoices(v.Get(key))
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		settings.CurrencyChoices = choices
		o.logger.Info("Money setting overridden", slog.String("setting", key), slog.Any("codes", settings.Codes()))
	}

	if key := Prefix + CurrencyDefaultKey; v.IsSet(key) {
		settings.CurrencyDefault = strings.TrimSpace(v.GetString(key))
		o.logger.Info("Money setting overridden", slog.String("setting", key), slog.String("value", settings.CurrencyDefault))
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks that every code is well formed and the default is a legal choice.
func (s Settings) Validate() error {
	for _, c := range s.CurrencyChoices {
		if !money.IsValidCode(c.Code) {
			return fmt.Errorf("invalid currency code %q in currency choices", c.Code)
		}
	}
	if s.CurrencyDefault != "" && !money.IsValidCode(s.CurrencyDefault) {
		return fmt.Errorf("invalid default currency code %q", s.CurrencyDefault)
	}
	if len(s.CurrencyChoices) > 0 && s.CurrencyDefault != "" && !slices.Contains(s.Codes(), s.CurrencyDefault) {
		return fmt.Errorf("default currency %q is not one of the currency choices %v", s.CurrencyDefault, s.Codes())
	}
	return nil
}

// parseChoices accepts "EUR,USD:US Dollar", "EUR USD", or a list from a settings file
// whose items are "CODE", "CODE:Label" or [CODE, Label] pairs.
func parseChoices(raw any) ([]Choice, error) {
	switch val := raw.(type) {
	case string:
		sep := func(r rune) bool { return r == ',' }
		if !strings.Contains(val, ",") {
			sep = func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }
		}
		var choices []Choice
		for _, item := range strings.FieldsFunc(val, sep) {
			if item = strings.TrimSpace(item); item != "" {
				choices = append(choices, parseChoice(item))
			}
		}
		return choices, nil
	case []string:
		choices := make([]Choice, 0, len(val))
		for _, item := range val {
			choices = append(choices, parseChoice(item))
		}
		return choices, nil
	case []any:
		choices := make([]Choice, 0, len(val))
		for _, item := range val {
			switch it := item.(type) {
			case string:
				choices = append(choices, parseChoice(it))
			case []any:
				if len(it) != 2 {
					return nil, fmt.Errorf("choice pair must have 2 items, got %d", len(it))
				}
				choices = append(choices, Choice{Code: fmt.Sprint(it[0]), Label: fmt.Sprint(it[1])})
			default:
				return nil, fmt.Errorf("unsupported choice item of type %T", item)
			}
		}
		return choices, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", raw)
	}
}

func parseChoice(item string) Choice {
	code, label, found := strings.Cut(strings.TrimSpace(item), ":")
	code = strings.TrimSpace(code)
	if !found || strings.TrimSpace(label) == "" {
		return Choice{Code: code, Label: code}
	}
	return Choice{Code: code, Label: strings.TrimSpace(label)}
}
