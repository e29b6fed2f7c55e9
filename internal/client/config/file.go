package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO for config files. Pointer fields distinguish absent
// keys from zero values so that only present keys override the defaults.
type FileConfig struct {
	Storage  *string `json:"storage" yaml:"storage"`
	DSN      *string `json:"dsn" yaml:"dsn"`
	DataDir  *string `json:"data_dir" yaml:"data_dir"`
	StateKey *string `json:"state_key" yaml:"state_key"`

	APIBaseURL          *string         `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	ToastDuration       *timex.Duration `json:"toast_duration" yaml:"toast_duration"`

	Export *struct {
		Target *string `json:"target" yaml:"target"`
		Dir    *string `json:"dir" yaml:"dir"`
		S3     *struct {
			Endpoint  *string `json:"endpoint" yaml:"endpoint"`
			Region    *string `json:"region" yaml:"region"`
			Bucket    *string `json:"bucket" yaml:"bucket"`
			Prefix    *string `json:"prefix" yaml:"prefix"`
			AccessKey *string `json:"access_key" yaml:"access_key"`
			SecretKey *string `json:"secret_key" yaml:"secret_key"`
		} `json:"s3" yaml:"s3"`
	} `json:"export" yaml:"export"`

	Log *struct {
		Level   *string `json:"level" yaml:"level"`
		Format  *string `json:"format" yaml:"format"`
		Backend *string `json:"backend" yaml:"backend"`
		File    *string `json:"file" yaml:"file"`
	} `json:"log" yaml:"log"`
}

// parseFile overlays cfg with the keys present in the JSON or YAML file at
// path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".json", "":
		err = json.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("config %s: unsupported format", path)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set(&cfg.Storage, fc.Storage)
	set(&cfg.DSN, fc.DSN)
	set(&cfg.DataDir, fc.DataDir)
	set(&cfg.StateKey, fc.StateKey)
	set(&cfg.APIBaseURL, fc.APIBaseURL)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.ToastDuration != nil {
		cfg.ToastDuration = fc.ToastDuration.Duration
	}

	if e := fc.Export; e != nil {
		set(&cfg.ExportTarget, e.Target)
		set(&cfg.ExportDir, e.Dir)
		if s := e.S3; s != nil {
			set(&cfg.S3.Endpoint, s.Endpoint)
			set(&cfg.S3.Region, s.Region)
			set(&cfg.S3.Bucket, s.Bucket)
			set(&cfg.S3.Prefix, s.Prefix)
			set(&cfg.S3.AccessKey, s.AccessKey)
			set(&cfg.S3.SecretKey, s.SecretKey)
		}
	}

	if l := fc.Log; l != nil {
		set(&cfg.Log.Level, l.Level)
		set(&cfg.Log.Format, l.Format)
		set(&cfg.Log.Backend, l.Backend)
		set(&cfg.Log.File, l.File)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
