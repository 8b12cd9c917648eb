package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// applyConfigFile sets the flags from a yaml file, like,
//
//	network-id: my-network
//	storage: file:///var/lib/herehere
//	rate-limit-api:
//	  - 100-S
//	  - 127.0.0.1=unlimited
//
// The flags already given in the command line are kept.
func applyConfigFile(c *cobra.Command, path string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	return applyConfig(c.Flags(), b)
}

func applyConfig(flags *pflag.FlagSet, b []byte) error {
	var values map[string]interface{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return err
	}

	for name, value := range values {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag in config file, %q", name)
		}
		if flag.Changed || name == "config" {
			continue
		}

		var items []interface{}
		if l, ok := value.([]interface{}); ok {
			items = l
		} else {
			items = []interface{}{value}
		}

		for _, item := range items {
			if err := flags.Set(name, fmt.Sprint(item)); err != nil {
				return fmt.Errorf("invalid %q in config file; %v", name, err)
			}
		}
	}

	return nil
}
