package main

import (
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sznuper/cronwrap/internal/config"
)

// verboseDisabled is the -v default; any other value, or a bare -v, enables
// verbose reporting.
const verboseDisabled = "disabled"

// registerOptionFlags adds a persistent --flag for every top-level string
// field in config.Config, deriving the flag name from the yaml struct tag
// (snake_case → kebab-case). Fields tagged flag:"-" are skipped.
func registerOptionFlags(cmd *cobra.Command) {
	t := reflect.TypeOf(config.Config{})
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() != reflect.String || f.Tag.Get("flag") == "-" {
			continue
		}
		yamlTag := f.Tag.Get("yaml")
		flagName := strings.ReplaceAll(yamlTag, "_", "-")
		cmd.PersistentFlags().String(flagName, "", "override "+yamlTag+" from the config file")
	}
}

// applyOptionFlags overlays CLI flag values onto the config. Only flags
// explicitly set by the user are applied.
func applyOptionFlags(cmd *cobra.Command, cfg *config.Config) {
	t := reflect.TypeOf(*cfg)
	v := reflect.ValueOf(cfg).Elem()
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() != reflect.String || f.Tag.Get("flag") == "-" {
			continue
		}
		flagName := strings.ReplaceAll(f.Tag.Get("yaml"), "_", "-")
		if cmd.Flags().Changed(flagName) {
			val, _ := cmd.Flags().GetString(flagName)
			v.Field(i).SetString(val)
		}
	}
}

// isVerbose interprets the -v value.
func isVerbose(val string) bool {
	return val != verboseDisabled
}
