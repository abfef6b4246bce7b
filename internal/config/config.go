package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

// Engine configures the password strength engine.
type Engine struct {
	GuessRate       float64  `mapstructure:"GUESS_RATE" validate:"gt=0"`
	MaxInputLength  int      `mapstructure:"MAX_INPUT_LENGTH" validate:"min=1"`
	SymbolCharset   string   `mapstructure:"SYMBOL_CHARSET" validate:"required"`
	CommonPasswords []string `mapstructure:"COMMON_PASSWORDS"`
	SequenceRules   []string `mapstructure:"SEQUENCE_RULES" validate:"dive,oneof=ascending descending keyboard"`
	Workers         int      `mapstructure:"WORKERS" validate:"min=0"`
}

// Server configures the HTTP API.
type Server struct {
	Engine         `mapstructure:",squash"`
	Port           uint16  `mapstructure:"PORT" validate:"required"`
	SelfTLS        bool    `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert        string  `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey         string  `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug          bool    `mapstructure:"DEBUG"`
	MaxBatch       int     `mapstructure:"MAX_BATCH" validate:"min=1,max=100000"`
	CacheSize      int64   `mapstructure:"CACHE_SIZE" validate:"min=0"`
	RateLimit      float64 `mapstructure:"RATE_LIMIT" validate:"min=0"`
	MaxConnections int     `mapstructure:"MAX_CONNECTIONS" validate:"min=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GUESS_RATE", strength.DefaultGuessRate)
	v.SetDefault("MAX_INPUT_LENGTH", strength.DefaultMaxInputLength)
	v.SetDefault("SYMBOL_CHARSET", strength.DefaultSymbols)
	v.SetDefault("SEQUENCE_RULES", []string{"ascending"})
	v.SetDefault("WORKERS", 0)
	v.SetDefault("PORT", 3100)
	v.SetDefault("MAX_BATCH", 1000)
	v.SetDefault("CACHE_SIZE", 10000)
	v.SetDefault("RATE_LIMIT", 50)
	v.SetDefault("MAX_CONNECTIONS", 1024)
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			if strings.HasSuffix(tv, "squash") {
				bindEnvs(v, fv.Interface(), parts...)
			} else {
				bindEnvs(v, fv.Interface(), append(parts, tv)...)
			}
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

// load reads a .env file when present and unmarshals the environment into out.
func load(out interface{}, iface interface{}) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// I hate this, but it works.
	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	bindEnvs(v, iface)

	return v.Unmarshal(out)
}

// LoadEngine reads the engine configuration from the environment. It is not validated, flags
// may still override it.
func LoadEngine() (config Engine, err error) {
	err = load(&config, Engine{})
	return
}

// LoadServer reads the server configuration from the environment. It is not validated, flags
// may still override it.
func LoadServer() (config Server, err error) {
	err = load(&config, Server{})
	return
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This is field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "gt":
		return fmt.Sprintf("This field must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("This field must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("This field must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("This field must be one of [%s]", fe.Param())
	}
	return fe.Error() // default error
}

// Validate checks a configuration struct and turns the violations into one readable error.
// Engine configurations are also checked by the engine itself.
func Validate(config interface{}) error {
	validate := validator.New()

	err := validate.Struct(config)
	if err == nil {
		if e, ok := config.(interface{ Options() strength.Options }); ok {
			return e.Options().Validate()
		}
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
		}
		return errors.New(strings.Join(msgs, ". "))
	}

	return fmt.Errorf("invalid configuration: %w", err)
}

// Options converts the configuration to engine options. Unknown rule names are skipped,
// Validate reports them.
func (e Engine) Options() strength.Options {
	opts := strength.Options{
		GuessRate:       e.GuessRate,
		MaxInputLength:  e.MaxInputLength,
		SymbolCharset:   e.SymbolCharset,
		CommonPasswords: e.CommonPasswords,
		Workers:         e.Workers,
	}
	for _, name := range e.SequenceRules {
		if rule, ok := strength.RuleByName(name); ok {
			opts.SequenceRules = append(opts.SequenceRules, rule)
		}
	}
	return opts
}
