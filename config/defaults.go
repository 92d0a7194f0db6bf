package config

import (
	"github.com/spf13/viper"
)

// Default configuration values. With these the driver runs
// `npm run build`, then `npx rollup -c`, then stages website/ into dist/website.
const (
	DefaultBuildCmd   = "npm"
	DefaultBundleCmd  = "npx"
	DefaultWebsiteSrc = "website"
	DefaultWebsiteDst = "dist/website"

	DefaultWebsiteClean = false
	DefaultVerbose      = false
	DefaultDebug        = false
)

// DefaultBuildArgs are the arguments passed to DefaultBuildCmd.
func DefaultBuildArgs() []string {
	return []string{"run", "build"}
}

// DefaultBundleArgs are the arguments passed to DefaultBundleCmd.
func DefaultBundleArgs() []string {
	return []string{"rollup", "-c"}
}

// setDefaults configures default values in the viper instance.
func setDefaults(viperInstance *viper.Viper) {
	viperInstance.SetDefault("build.cmd", DefaultBuildCmd)
	viperInstance.SetDefault("build.args", DefaultBuildArgs())
	viperInstance.SetDefault("bundle.cmd", DefaultBundleCmd)
	viperInstance.SetDefault("bundle.args", DefaultBundleArgs())
	viperInstance.SetDefault("website.src", DefaultWebsiteSrc)
	viperInstance.SetDefault("website.dst", DefaultWebsiteDst)
	viperInstance.SetDefault("website.exclude", []string{})
	viperInstance.SetDefault("website.clean", DefaultWebsiteClean)
	viperInstance.SetDefault("env", []string{})
	viperInstance.SetDefault("verbose", DefaultVerbose)
	viperInstance.SetDefault("debug", DefaultDebug)
}
