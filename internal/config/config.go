// Package config contains the chartshape CLI Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/chartshape-go/pkg/chartshape"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/plot"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/render"
)

type Config struct {
	// Log is a configuration for logging.
	Log Log `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
	// Data controls how automatically chosen ranges are read.
	Data Data `mapstructure:"data" json:"data" toml:"data" yaml:"data"`
	// Render is a configuration for image output.
	Render Render `mapstructure:"render" json:"render" toml:"render" yaml:"render"`
	// Import is a configuration for xlsx import.
	Import Import `mapstructure:"import" json:"import" toml:"import" yaml:"import"`
	// Chart holds defaults applied to every new chart.
	Chart Chart `mapstructure:"chart" json:"chart" toml:"chart" yaml:"chart"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error, fatal or none.
	Level string `mapstructure:"level" json:"level" toml:"level" yaml:"level"`
	// File is an optional log file. Logs go to stdout when empty.
	File string `mapstructure:"file" json:"file" toml:"file" yaml:"file"`
}

type Data struct {
	FirstRowIsLabel    bool   `mapstructure:"first_row_is_label" json:"first_row_is_label" toml:"first_row_is_label" yaml:"first_row_is_label"`
	FirstColumnIsLabel bool   `mapstructure:"first_column_is_label" json:"first_column_is_label" toml:"first_column_is_label" yaml:"first_column_is_label"`
	Direction          string `mapstructure:"direction" json:"direction" toml:"direction" yaml:"direction"`
}

type Render struct {
	// Format is svg or png.
	Format string `mapstructure:"format" json:"format" toml:"format" yaml:"format"`
	// DPI converts shape sizes in centimetres to pixels.
	DPI      float64 `mapstructure:"dpi" json:"dpi" toml:"dpi" yaml:"dpi"`
	FontSize float64 `mapstructure:"font_size" json:"font_size" toml:"font_size" yaml:"font_size"`
}

type Import struct {
	// Mode is light, standard or verbose.
	Mode string `mapstructure:"mode" json:"mode" toml:"mode" yaml:"mode"`
	// DefaultCharts overrides the mode's choice of creating charts for
	// sheets without one.
	DefaultCharts *bool `mapstructure:"default_charts" json:"default_charts" toml:"default_charts" yaml:"default_charts"`
}

type Chart struct {
	// Palette lists series colours as hex strings.
	Palette []string `mapstructure:"palette" json:"palette" toml:"palette" yaml:"palette"`
	// Combinable lists chart classes whose series may be mixed in one plot.
	Combinable []string `mapstructure:"combinable" json:"combinable" toml:"combinable" yaml:"combinable"`
	// EnableUserInteraction reports load problems to the user.
	EnableUserInteraction bool `mapstructure:"enable_user_interaction" json:"enable_user_interaction" toml:"enable_user_interaction" yaml:"enable_user_interaction"`
}

type Meta struct {
	FileNotFound bool
	UnknownKeys  []string
}

// DefineFlags registers the persistent flags that map onto config keys.
func DefineFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	rootCmd.PersistentFlags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDOUT")
	rootCmd.PersistentFlags().StringP("import.mode", "", string(chartshape.ModeStandard), "import mode: light, standard or verbose")
	rootCmd.PersistentFlags().StringP("render.format", "", string(render.PNG), "image format: svg or png")
}

var bindPFlags = []string{"log.level", "log.file", "import.mode", "render.format"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("data.first_row_is_label", true)
	v.SetDefault("data.first_column_is_label", true)
	v.SetDefault("data.direction", proxy.RowMajor.String())
	v.SetDefault("render.format", string(render.PNG))
	v.SetDefault("render.dpi", 96)
	v.SetDefault("render.font_size", render.DefaultOptions().FontSize)
	v.SetDefault("import.mode", string(chartshape.ModeStandard))
	v.SetDefault("chart.palette", plot.DefaultColors)
	v.SetDefault("chart.combinable", []string{"bar", "line", "area"})
}

// GetConfig reads configFile, environment variables prefixed with
// CHARTSHAPE_ and the flags of cmd, in increasing order of precedence.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	setDefaults(v)
	v.SetEnvPrefix("CHARTSHAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, flag := range bindPFlags {
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				f = cmd.PersistentFlags().Lookup(flag)
			}
			if f != nil {
				_ = v.BindPFlag(flag, f)
			}
		}
	}

	meta := Meta{}

	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var configFileNotFoundError *os.PathError
			if errors.As(err, &configFileNotFoundError) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	meta.UnknownKeys = findUnknownKeys(v.AllSettings(), reflect.TypeOf(*conf), "")
	return *conf, meta, nil
}

// findUnknownKeys returns the dotted keys of data that no mapstructure tag
// of typ names.
func findUnknownKeys(data map[string]any, typ reflect.Type, parentKey string) []string {
	valid := map[string]reflect.StructField{}
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			valid[tag] = typ.Field(i)
		}
	}
	var unknown []string
	for key, value := range data {
		field, ok := valid[key]
		if !ok {
			unknown = append(unknown, appendKeyPath(parentKey, key))
			continue
		}
		nested, isMap := value.(map[string]any)
		if isMap && field.Type.Kind() == reflect.Struct {
			unknown = append(unknown, findUnknownKeys(nested, field.Type, appendKeyPath(parentKey, key))...)
		}
	}
	return unknown
}

func appendKeyPath(parentKey, key string) string {
	if parentKey == "" {
		return key
	}
	return parentKey + "." + key
}

// Options converts the configuration into chart options.
func (c Config) Options() (chartshape.Options, error) {
	opts := chartshape.DefaultOptions()
	mode, ok := chartshape.ParseMode(c.Import.Mode)
	if !ok {
		return opts, fmt.Errorf("invalid import mode %q (must be light, standard or verbose)", c.Import.Mode)
	}
	opts.Mode = mode
	opts.DefaultCharts = c.Import.DefaultCharts
	opts.FirstRowIsLabel = c.Data.FirstRowIsLabel
	opts.FirstColumnIsLabel = c.Data.FirstColumnIsLabel
	opts.Direction = proxy.ParseDirection(c.Data.Direction)

	if len(c.Chart.Palette) > 0 {
		palette, err := plot.ParsePalette(c.Chart.Palette)
		if err != nil {
			return opts, err
		}
		opts.Palette = palette
	}
	if c.Chart.Combinable != nil {
		policy := plot.PolicyFromClasses(c.Chart.Combinable)
		opts.Policy = &policy
	}
	opts.Interaction.Enabled = c.Chart.EnableUserInteraction
	return opts, nil
}

// RenderOptions converts the render section into image options.
func (c Config) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	format, ok := render.ParseFormat(c.Render.Format)
	if !ok {
		return opts, fmt.Errorf("invalid render format %q (must be svg or png)", c.Render.Format)
	}
	opts.Format = format
	if c.Render.DPI > 0 {
		opts.PixelsPerCm = c.Render.DPI / 2.54
	}
	if c.Render.FontSize > 0 {
		opts.FontSize = c.Render.FontSize
	}
	return opts, nil
}
