package config

import (
	"WordTrie/pkg/system/sysPrint"
	"WordTrie/pkg/utils/datastructure"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFilePath = "wordtrie.yaml"
	defaultManagerAddr    = "127.0.0.1:5300"
	defaultLogLevel       = "info"
	defaultSelfCheck      = false
)

type TrieConfig struct {
	WordFile    string   `yaml:"word-file"`            // 单词列表文件，每行一个单词
	QueryFile   string   `yaml:"query-file"`           // 查询列表文件，每行一个查询
	ManagerAddr string   `yaml:"manager-addr"`         // manager 监听地址
	LogLevel    string   `yaml:"log-level"`            // 日志级别
	LogFile     string   `yaml:"log-file"`             // 日志文件，为空则只输出到 stderr
	SelfCheck   bool     `yaml:"self-check"`           // run 结束后是否执行自检
	SeedWords   []string `yaml:"seed-words,omitempty"` // serve 启动时预先插入的单词
}

func DefaultConfig() *TrieConfig {
	return &TrieConfig{
		ManagerAddr: defaultManagerAddr,
		LogLevel:    defaultLogLevel,
		SelfCheck:   defaultSelfCheck,
	}
}

// NewTrieConfig 读取 path 指定的配置文件，文件不存在时以默认配置创建
func NewTrieConfig(fs afero.Fs, path string) (*TrieConfig, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		tc := DefaultConfig()
		if err = WriteConfig(fs, path, tc); err != nil {
			sysPrint.PrintlnErrorMsg("Failed to create config file: " + err.Error())
			return nil, err
		}
		return tc, nil
	}

	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		sysPrint.PrintlnErrorMsg("Failed to open config file: " + err.Error())
		return nil, err
	}
	tc := DefaultConfig()
	if err = yaml.Unmarshal(buf, tc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if tc.ManagerAddr == "" {
		tc.ManagerAddr = defaultManagerAddr
	}
	if tc.LogLevel == "" {
		tc.LogLevel = defaultLogLevel
	}
	if err = tc.Validate(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Validate 检查预置单词是否都合法
func (tc *TrieConfig) Validate() error {
	for _, w := range tc.SeedWords {
		if err := datastructure.ValidateWord(w); err != nil {
			return fmt.Errorf("seed-words: %w", err)
		}
	}
	return nil
}

// WriteConfig 将 tc 写入配置文件
func WriteConfig(fs afero.Fs, path string, tc *TrieConfig) error {
	yamlData, err := yaml.Marshal(tc)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, yamlData, os.FileMode(0644))
}
