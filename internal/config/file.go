package config

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

// fileConfig is the on-disk shape of the optional YAML config file.
//
//	splitter: /usr/local/fsl/bin/fslsplit
//	ext: nii.gz
//	scratch_dir: /scratch
//	on_collision: suffix
//	log_file: roisplit.log
//	color: never
//	ignore_split_status: false
type fileConfig struct {
	Splitter          string `yaml:"splitter"`
	Extension         string `yaml:"ext"`
	ScratchDir        string `yaml:"scratch_dir"`
	OnCollision       string `yaml:"on_collision"`
	LogFile           string `yaml:"log_file"`
	Color             string `yaml:"color"`
	IgnoreSplitStatus bool   `yaml:"ignore_split_status"`
	KeepScratch       bool   `yaml:"keep_scratch"`
}

// LoadFile reads the YAML config at path into cfg. Unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return argErrorf("config file: %v", err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return argErrorf("config file %s: %v", path, err)
	}

	setString(&cfg.Splitter, fc.Splitter)
	setString(&cfg.Extension, fc.Extension)
	setString(&cfg.ScratchDir, fc.ScratchDir)
	setString(&cfg.LogFile, fc.LogFile)
	if fc.OnCollision != "" {
		cfg.OnCollision = CollisionPolicy(fc.OnCollision)
	}
	if fc.Color != "" {
		cfg.ColorMode = ColorMode(fc.Color)
	}
	cfg.IgnoreSplitStatus = fc.IgnoreSplitStatus
	cfg.KeepScratch = fc.KeepScratch
	cfg.ConfigFile = path
	return nil
}
