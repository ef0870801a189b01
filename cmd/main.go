package main

import (
	"WordTrie/config"
	"WordTrie/pkg/driver"
	"WordTrie/pkg/manager"
	"WordTrie/pkg/system/sysPrint"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	cmd := newRootCommand(afero.NewOsFs(), os.Stdin, os.Stdout)
	cobra.CheckErr(cmd.Execute())
}

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	cobra.CheckErr(v.BindPFlag(key, flags.Lookup(name)))
}

func newRootCommand(fs afero.Fs, in io.Reader, out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDTRIE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	opts := &options{fs: fs, v: v}

	rootCmd := &cobra.Command{
		Use:           "wordtrie [WORDS QUERIES]",
		Short:         "Load a word list into a prefix tree and answer queries from a query list",
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			sysPrint.LogClose()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, out, args)
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	// flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigFilePath, "The path of the YAML config file, created with defaults when missing.")
	rootCmd.PersistentFlags().String(keyLogLevel, "", "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().String(keyLogFile, "", "Also write JSON logs to this file.")
	rootCmd.Flags().String("words", "", "Word list, one word per line.")
	rootCmd.Flags().String("queries", "", "Query list, one query per line.")
	rootCmd.Flags().Bool(keySelfCheck, false, "Run the value-semantics self check after the queries.")

	// bind flags to config
	bindFlag(v, keyLogLevel, rootCmd.PersistentFlags(), keyLogLevel)
	bindFlag(v, keyLogFile, rootCmd.PersistentFlags(), keyLogFile)
	bindFlag(v, keyWordFile, rootCmd.Flags(), "words")
	bindFlag(v, keyQueryFile, rootCmd.Flags(), "queries")
	bindFlag(v, keySelfCheck, rootCmd.Flags(), keySelfCheck)

	rootCmd.AddCommand(buildSelfCheckCmd(out))
	rootCmd.AddCommand(buildServeCmd(opts, out))
	rootCmd.AddCommand(buildClientCmd(opts, in, out))

	return rootCmd
}

func run(opts *options, out io.Writer, args []string) error {
	wordFile, queryFile := opts.cfg.WordFile, opts.cfg.QueryFile
	if len(args) == 2 {
		wordFile, queryFile = args[0], args[1]
	}
	if len(args) == 1 || wordFile == "" || queryFile == "" {
		fmt.Fprintln(out, driver.MsgUsage)
		return nil
	}

	d := driver.NewDriver(opts.fs, out, opts.log)
	if err := d.Run(wordFile, queryFile); err != nil {
		return err
	}
	if opts.cfg.SelfCheck {
		return driver.SelfCheck()
	}
	return nil
}

// managerListening 在 manager 开始监听后以实际地址调用
var managerListening = func(addr string) {}

func buildSelfCheckCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Check that reset, deep copy and assignment keep tries independent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := driver.SelfCheck(); err != nil {
				return err
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}

func buildServeCmd(opts *options, out io.Writer) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve a shared prefix tree over the line-based TCP protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyAddrFlag(opts, cmd)
			d := driver.NewDriver(opts.fs, out, opts.log)
			for _, w := range opts.cfg.SeedWords {
				if err := d.Trie().Insert(w); err != nil {
					return err
				}
			}
			if opts.cfg.WordFile != "" {
				// 单词文件缺失时只打印提示，继续启动
				if _, err := d.LoadWords(opts.cfg.WordFile); err != nil && !errors.Is(err, sysPrint.ErrMissingInput) {
					return err
				}
			}

			m := manager.NewManager(opts.cfg.ManagerAddr, d.Trie(), opts.log)
			if err := m.Listen(); err != nil {
				sysPrint.PrintlnAndLogWriteFatalMsg("WordTrie-Manager listen at " + opts.cfg.ManagerAddr + " failed: " + err.Error())
				return err
			}
			managerListening(m.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				select {
				case <-ctx.Done():
					select {
					case <-m.Done():
					default:
						sysPrint.PrintlnAndLogWriteSystemMsg("WordTrie-Manager receive shutdown signal...")
						m.Shutdown()
					}
				case <-m.Done():
				}
			}()

			fmt.Fprint(out, banner)
			err := m.Serve()
			sysPrint.PrintlnSystemMsg("WordTrie is now ready to exit, bye bye...")
			return err
		},
	}
	serve.Flags().String("addr", "", "The manager listen address, overrides manager-addr.")
	return serve
}

func buildClientCmd(opts *options, in io.Reader, out io.Writer) *cobra.Command {
	client := &cobra.Command{
		Use:   "client",
		Short: "Interactive client for a running serve command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyAddrFlag(opts, cmd)
			return manager.Console(opts.cfg.ManagerAddr, in, out)
		},
	}
	client.Flags().String("addr", "", "The manager address, overrides manager-addr.")
	return client
}

// applyAddrFlag --addr 优先于配置文件与环境变量中的 manager-addr
func applyAddrFlag(opts *options, cmd *cobra.Command) {
	if cmd.Flags().Changed("addr") {
		opts.cfg.ManagerAddr, _ = cmd.Flags().GetString("addr")
	}
}

const banner = `
 _      __            __ ______     _
| | /| / /__  _______/ //_  __/____(_)__
| |/ |/ / _ \/ __/ _  /  / / / __/ / -_)
|__/|__/\___/_/  \_,_/  /_/ /_/ /_/\__/
`

