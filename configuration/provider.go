package configuration

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/posflag"
	flag "github.com/spf13/pflag"
)

// flagProvider returns a koanf provider for the given FlagSet that addresses every flag by its lower cased name.
//
// Flags that were not set on the command line only contribute their default value if no other source has set the key
// before.
func flagProvider(flagSet *flag.FlagSet, config *koanf.Koanf) *posflag.Posflag {
	return posflag.ProviderWithFlag(flagSet, ".", config, func(f *flag.Flag) (string, interface{}) {
		return strings.ToLower(f.Name), posflag.FlagVal(flagSet, f)
	})
}
