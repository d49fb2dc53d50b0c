// Package store resolves where and how the local calendar data lives.
package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/log"
)

// Config exposes the resolved application settings.
type Config interface {
	// BasePath is the root of the local data store.
	BasePath() string
	// DueDate is the configured pregnancy due date, sentinel when unset.
	DueDate() dateutil.Day
	// RepairPadding is the day count for repairing legacy records without
	// an end marker.
	RepairPadding() int
}

// LoadConfig reads .nestcal.yaml from the working directory (or the path in
// NESTCAL_CONFIG_PATH) plus NESTCAL_* environment overrides. A missing file
// is fine; defaults apply.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.nestcal.db")
	viper.SetDefault("repair_padding", 3)
	viper.SetConfigName(".nestcal")
	viper.SetEnvPrefix("NESTCAL")
	viper.AutomaticEnv()

	if override := os.Getenv("NESTCAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	due := dateutil.Normalize(viper.GetString("due_date"))
	if raw := viper.GetString("due_date"); raw != "" && !due.Valid() {
		log.Warn("config: ignoring unparseable due_date", "value", raw)
	}

	return &fileConfig{
		path:          path,
		dueDate:       due,
		repairPadding: viper.GetInt("repair_padding"),
	}, nil
}

type fileConfig struct {
	path          string
	dueDate       dateutil.Day
	repairPadding int
}

func (f *fileConfig) BasePath() string      { return f.path }
func (f *fileConfig) DueDate() dateutil.Day { return f.dueDate }
func (f *fileConfig) RepairPadding() int    { return f.repairPadding }
