package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mediavault",
	Short: "mediavault cli",
	Long:  `mediavault indexes, enriches, and serves a home media library`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(), once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

// initConfig sets viper defaults and env var wiring.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("MEDIAVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("tmdb.scheme", "https")
	viper.SetDefault("tmdb.host", "api.themoviedb.org")
	viper.SetDefault("tmdb.apiKey", "")

	viper.SetDefault("storage.filePath", "catalog.db")
	viper.SetDefault("server.listenAddr", ":8080")

	viper.SetDefault("cache.thumbnailDir", "cache/thumbs")
	viper.SetDefault("cache.subtitleDir", "cache/subs")
	viper.SetDefault("cache.hlsDir", "cache/hls")
}
