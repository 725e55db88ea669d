package config

import "github.com/spf13/pflag"

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Version    bool
}

// ParseArgs parses the command line, without the program name.
func ParseArgs(args []string) (*CliConfig, error) {
	cli := &CliConfig{}
	fs := pflag.NewFlagSet("ask-relay", pflag.ContinueOnError)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&cli.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVarP(&cli.Version, "version", "v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}
