package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"

	"github.com/whtowbin/Pynams/calculator"
)

const defaultConfigPath = "conf/config.ini"

// app 命令之间共享的配置
type app struct {
	configPath string
	file       *ini.File
	opt        calculator.Options
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "pynams",
		Short: "Diffusion models for mineral slabs and whole blocks",
		Long: `pynams evaluates analytical diffusion models for a thin slab and a
rectangular block, the path-averaged whole-block profiles measured through the
block, and Arrhenius lines through fitted diffusivities.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to config.ini")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newWholeBlockCmd(a))
	rootCmd.AddCommand(newArrheniusCmd(a))
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load 配置文件读取失败时使用默认配置
func (a *app) load() error {
	file, err := ini.Load(a.configPath)
	if err != nil {
		log.WithField("path", a.configPath).Warn("配置文件读取错误，使用默认配置: ", err)
		file = ini.Empty()
	}
	a.file = file
	a.opt = calculator.LoadOptions(file)
	return setupLog(file)
}

// setupLog 对应配置文件的 [log] 段
func setupLog(file *ini.File) error {
	section := file.Section("log")
	level, err := log.ParseLevel(section.Key("Level").MustString("info"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	switch format := section.Key("Format").MustString("text"); format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
