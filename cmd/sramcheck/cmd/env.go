package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const envPrefix = "SRAMCHECK_"

// envName maps a flag name to its environment variable, so that --flip-bit
// reads SRAMCHECK_FLIP_BIT.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv sets the flags that were not given on the command line from the
// environment.
func applyEnv(flags *pflag.FlagSet) error {
	var err error

	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}

		v, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}

		if setErr := flags.Set(f.Name, v); setErr != nil {
			err = errors.Wrapf(setErr, "invalid %s", envName(f.Name))
		}
	})

	return err
}
