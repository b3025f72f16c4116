// Package iofs prepares the file system layout of gnmatch and reads its
// configuration files.
package iofs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnsys"
	"gopkg.in/yaml.v3"
)

// ConfigYAML is the default config.yaml.
//
//go:embed config.yaml
var ConfigYAML string

// DatasetsYAML is the default datasets.yaml.
//
//go:embed datasets.yaml
var DatasetsYAML string

// EnsureDirs creates config, cache, store and log directories if they do
// not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.SFGADir(homeDir),
		config.StoreDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureDatasetsFile writes the default datasets.yaml unless it exists.
func EnsureDatasetsFile(homeDir string) error {
	return ensureFile(config.DatasetsFilePath(homeDir), DatasetsYAML)
}

func ensureFile(path, content string) error {
	exists, err := gnsys.FileExists(path)
	if err != nil {
		return CopyFileError(path, err)
	}
	if exists {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}

type datasetsFile struct {
	Datasets []dataset.Dataset `yaml:"datasets"`
}

// LoadDatasets reads join datasets from a datasets.yaml file. Keys must
// be unique and every dataset needs a prefix.
func LoadDatasets(path string) ([]dataset.Dataset, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return ParseDatasets(bs, path)
}

// ParseDatasets decodes the content of a datasets.yaml file. The source
// is only used in error messages.
func ParseDatasets(bs []byte, source string) ([]dataset.Dataset, error) {
	var df datasetsFile
	if err := yaml.Unmarshal(bs, &df); err != nil {
		return nil, DatasetsConfigError(source, err)
	}

	seen := make(map[string]struct{}, len(df.Datasets))
	for i, v := range df.Datasets {
		if v.Key == "" {
			return nil, DatasetsConfigError(source,
				fmt.Errorf("dataset #%d has no key", i+1))
		}
		if v.Prefix == "" {
			return nil, DatasetsConfigError(source,
				fmt.Errorf("dataset %s has no prefix", v.Key))
		}
		if _, ok := seen[v.Key]; ok {
			return nil, DatasetsConfigError(source,
				fmt.Errorf("dataset key %s is not unique", v.Key))
		}
		seen[v.Key] = struct{}{}
	}
	return df.Datasets, nil
}

// FilterDatasets keeps datasets with the given keys in the order of keys.
// Empty keys keep all datasets.
func FilterDatasets(dss []dataset.Dataset, keys []string) ([]dataset.Dataset, error) {
	if len(keys) == 0 {
		return dss, nil
	}
	idx := make(map[string]dataset.Dataset, len(dss))
	for _, v := range dss {
		idx[v.Key] = v
	}
	res := make([]dataset.Dataset, 0, len(keys))
	for _, k := range keys {
		ds, ok := idx[k]
		if !ok {
			return nil, DatasetNotFoundError(k)
		}
		res = append(res, ds)
	}
	return res, nil
}
