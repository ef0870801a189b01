package main

import (
	"WordTrie/config"
	"WordTrie/pkg/system/sysPrint"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// 配置文件中的键，同时作为 viper 键与环境变量名（WORDTRIE_ 前缀，- 换成 _）
const (
	keyWordFile    = "word-file"
	keyQueryFile   = "query-file"
	keyManagerAddr = "manager-addr"
	keyLogLevel    = "log-level"
	keyLogFile     = "log-file"
	keySelfCheck   = "self-check"
)

type options struct {
	configPath string
	fs         afero.Fs
	v          *viper.Viper
	cfg        *config.TrieConfig
	log        logr.Logger
}

// load 读取配置文件，命令行参数与环境变量优先于配置文件
func (o *options) load() error {
	cfg, err := config.NewTrieConfig(o.fs, o.configPath)
	if err != nil {
		return err
	}
	if o.v.IsSet(keyWordFile) {
		cfg.WordFile = o.v.GetString(keyWordFile)
	}
	if o.v.IsSet(keyQueryFile) {
		cfg.QueryFile = o.v.GetString(keyQueryFile)
	}
	if o.v.IsSet(keyManagerAddr) {
		cfg.ManagerAddr = o.v.GetString(keyManagerAddr)
	}
	if o.v.IsSet(keyLogLevel) {
		cfg.LogLevel = o.v.GetString(keyLogLevel)
	}
	if o.v.IsSet(keyLogFile) {
		cfg.LogFile = o.v.GetString(keyLogFile)
	}
	if o.v.IsSet(keySelfCheck) {
		cfg.SelfCheck = o.v.GetBool(keySelfCheck)
	}
	o.cfg = cfg

	o.log, err = sysPrint.Setup(o.fs, sysPrint.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile})
	return err
}
