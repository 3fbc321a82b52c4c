package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/componentforge/metadex/pkg/pipeline"
)

// Config holds the resolved runtime configuration for metadex.
// Values are populated from .metadex.yaml, METADEX_* env vars, and CLI
// flags, with built-in defaults matching the pipeline's.
type Config struct {
	ManifestPath string `mapstructure:"manifest_path"`
	OutputIndex  string `mapstructure:"output_index"`
	MetadataDir  string `mapstructure:"metadata_dir"`
	CloneRoot    string `mapstructure:"clone_root"`
	GitPath      string `mapstructure:"git_path"`
	KeepClones   bool   `mapstructure:"keep_clones"`
}

// initConfig wires viper to the optional config file and environment.
// A missing config file is fine; defaults cover everything.
func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".metadex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("METADEX")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// loadConfig reads configuration from viper, applying built-in defaults
// for any values not set by config file, environment, or flags.
func loadConfig() Config {
	viper.SetDefault("manifest_path", pipeline.DefaultManifestPath)
	viper.SetDefault("output_index", pipeline.DefaultIndexPath)
	viper.SetDefault("metadata_dir", pipeline.DefaultMetadataDir)
	viper.SetDefault("clone_root", pipeline.DefaultCloneRoot)
	viper.SetDefault("git_path", "git")
	viper.SetDefault("keep_clones", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
