// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !release

package helpers

import (
	"fmt"
	"testing"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ConfigurationDecodeCases describes a test case for configuration
// decode. Functions are used as the decoding process may mutate the
// values.
type ConfigurationDecodeCases []struct {
	Description    string
	Pos            Pos
	Initial        func() any // initial value for configuration
	Configuration  func() any // configuration to decode
	Expected       any
	Error          bool
	SkipValidation bool
}

// TestConfigurationDecode decodes configurations, both as is and
// after a round trip through YAML, then validates them.
func TestConfigurationDecode(t *testing.T, cases ConfigurationDecodeCases) {
	t.Helper()
	for _, tc := range cases {
		for _, fromYAML := range []bool{false, true} {
			title := tc.Description
			if fromYAML {
				title = fmt.Sprintf("%s (from YAML)", title)
			}
			t.Run(title, func(t *testing.T) {
				t.Helper()
				var configuration any
				if fromYAML {
					out, err := yaml.Marshal(tc.Configuration())
					if err != nil {
						t.Fatalf("%syaml.Marshal() error:\n%+v", tc.Pos, err)
					}
					if err := yaml.Unmarshal(out, &configuration); err != nil {
						t.Fatalf("%syaml.Unmarshal() error:\n%+v", tc.Pos, err)
					}
				} else {
					configuration = tc.Configuration()
				}

				got := tc.Initial()
				decoder, err := mapstructure.NewDecoder(GetMapStructureDecoderConfig(&got))
				if err != nil {
					t.Fatalf("%sNewDecoder() error:\n%+v", tc.Pos, err)
				}
				err = decoder.Decode(configuration)
				if err == nil && !tc.SkipValidation {
					err = Validate.Struct(got)
				}
				switch {
				case err != nil && tc.Error:
					return
				case err != nil:
					t.Fatalf("%sDecode() error:\n%+v", tc.Pos, err)
				case tc.Error:
					t.Fatalf("%sDecode() did not error", tc.Pos)
				}
				if diff := Diff(got, tc.Expected); diff != "" {
					t.Fatalf("%sDecode() (-got, +want):\n%s", tc.Pos, diff)
				}
			})
		}
	}
}
