package conftools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func decoderHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
	dc.ErrorUnused = true
}

// Load fills cfg from an optional config file, DEPLOY_* environment
// variables, and command line flags, in ascending order of precedence.
// Flags must have been declared on the default pflag set before calling.
func Load(cfg interface{}) error {
	viper.SetConfigName("deploy-manager")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DEPLOY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	flag.Parse()

	err = viper.BindPFlags(flag.CommandLine)
	if err != nil {
		return err
	}

	return viper.Unmarshal(cfg, decoderHook)
}

// Format returns a human-readable printout of all configuration options,
// except secret stuff.
func Format(disallowedKeys []string) []string {
	ok := func(key string) bool {
		for _, forbiddenKey := range disallowedKeys {
			if forbiddenKey == key {
				return false
			}
		}
		return true
	}

	var keys sort.StringSlice = viper.AllKeys()

	printed := make([]string, 0, len(keys))

	keys.Sort()
	for _, key := range keys {
		if ok(key) {
			printed = append(printed, fmt.Sprintf("%s: %v", key, viper.Get(key)))
		} else {
			printed = append(printed, fmt.Sprintf("%s: ***REDACTED***", key))
		}
	}

	return printed
}
