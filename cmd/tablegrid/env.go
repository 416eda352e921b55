package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "tablegrid"

const errorMessagePrefix = "error mapping configuration to command flags"

// applyEnvironment sets every flag of command the user did not pass from
// the config file, TABLEGRID_<FLAG> or TABLEGRID_<COMMAND>_<FLAG>, in
// increasing order of precedence.
func applyEnvironment(command *cobra.Command, configFile string) error {
	global := viper.New()
	global.SetEnvPrefix(globalPrefix)
	global.AutomaticEnv()
	if configFile != "" {
		global.SetConfigFile(configFile)
		if err := global.ReadInConfig(); err != nil {
			return fmt.Errorf("%s: %w", errorMessagePrefix, err)
		}
	}

	var local *viper.Viper
	if command.Name() != globalPrefix {
		local = viper.New()
		local.SetEnvPrefix(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
		local.AutomaticEnv()
	}

	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		for _, v := range []*viper.Viper{local, global} {
			if v == nil || !v.IsSet(configName) {
				continue
			}
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(configName))); err != nil {
				errs = append(errs, err.Error())
			}
			return
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
