// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"dwexplorer/common/helpers"
)

// ConfigRelatedOptions are command-line options related to handling a
// configuration file.
type ConfigRelatedOptions struct {
	Path string
	Dump bool
}

// Parse parses the configuration file (if present) and the environment
// variables into the provided configuration, then validates it. The
// configuration should already hold its default values.
func (c ConfigRelatedOptions) Parse(out io.Writer, component string, config any) error {
	var rawConfig map[string]any
	if cfgFile := c.Path; cfgFile != "" {
		input, err := os.ReadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("unable to read configuration file: %w", err)
		}
		if err := yaml.Unmarshal(input, &rawConfig); err != nil {
			return fmt.Errorf("unable to parse configuration file: %w", err)
		}
	}

	// Parse provided configuration
	decoder, err := mapstructure.NewDecoder(helpers.GetMapStructureDecoderConfig(config))
	if err != nil {
		return fmt.Errorf("unable to create configuration decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return fmt.Errorf("unable to parse configuration: %w", err)
	}

	// Override with environment variables
	prefix := fmt.Sprintf("DWEXPLORER_%s_", strings.ToUpper(component))
	for _, keyval := range os.Environ() {
		key, value, ok := strings.Cut(keyval, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		// From DWEXPLORER_CMP_SQUID_PURPLE_QUIRK=47, we build a map
		// "squid -> purple -> quirk -> 47". From
		// DWEXPLORER_CMP_SQUID_3_PURPLE=47, we build "squid[3] ->
		// purple -> 47".
		kk := strings.Split(strings.TrimPrefix(key, prefix), "_")
		var rawConfig any = value
		for i := len(kk) - 1; i >= 0; i-- {
			if index, err := strconv.Atoi(kk[i]); err == nil {
				newRawConfig := make([]any, index+1)
				newRawConfig[index] = rawConfig
				rawConfig = newRawConfig
			} else {
				rawConfig = map[string]any{
					kk[i]: rawConfig,
				}
			}
		}
		if err := decoder.Decode(rawConfig); err != nil {
			return fmt.Errorf("unable to parse override %q: %w", key, err)
		}
	}

	if err := helpers.Validate.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	// Dump configuration if requested
	if c.Dump {
		output, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("unable to dump configuration: %w", err)
		}
		out.Write([]byte("---\n"))
		out.Write(output)
		out.Write([]byte("\n"))
	}

	return nil
}
