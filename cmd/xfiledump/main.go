// Command xfiledump is a thin CLI collaborator around the xfile package
// (§1: CLI argument parsing is explicitly out of core scope). It mirrors
// the teacher's cmd/pedumper.go: a cobra root command plus a dump
// subcommand, with directory recursion and an optional TOML batch config.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/ffparse/xfile"
)

var version = "dev"

// batchConfig lets a dump be scripted instead of re-typing flags for every
// file.
type batchConfig struct {
	Paths     []string `toml:"paths"`
	Platform  string   `toml:"platform"`
	WriteCache bool    `toml:"write_cache"`
}

func platformFromName(name string) (xfile.Platform, error) {
	switch name {
	case "", "pc":
		return xfile.PlatformPC, nil
	case "macos":
		return xfile.PlatformMacOS, nil
	case "xbox360":
		return xfile.PlatformXbox360, nil
	case "ps3":
		return xfile.PlatformPS3, nil
	case "wii":
		return xfile.PlatformWii, nil
	default:
		return 0, fmt.Errorf("unknown platform %q", name)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xfiledump",
		Short: "Dump the asset list of a Call of Duty FastFile (.ff)",
	}
	root.AddCommand(newVersionCmd())
	root.AddCommand(newDumpCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xfiledump version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func newDumpCmd() *cobra.Command {
	var platformName string
	var writeCache bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "dump [files...]",
		Short: "Deserialize one or more FastFiles and print their asset lists as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				var cfg batchConfig
				if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
					return err
				}
				if platformName == "" {
					platformName = cfg.Platform
				}
				writeCache = writeCache || cfg.WriteCache
				args = append(args, cfg.Paths...)
			}

			platform, err := platformFromName(platformName)
			if err != nil {
				return err
			}

			for _, root := range args {
				err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
					if err != nil || info.IsDir() {
						return err
					}
					return dumpOne(path, platform, writeCache)
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&platformName, "platform", "", "pc|macos|xbox360|ps3|wii")
	cmd.Flags().BoolVar(&writeCache, "write-cache", false, "write a sibling .cache file after a successful parse")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML batch config (paths/platform/write_cache)")
	return cmd
}

func dumpOne(path string, platform xfile.Platform, writeCache bool) error {
	d, err := xfile.New(path, &xfile.Options{Platform: platform})
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Parse(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if writeCache {
		if err := d.WriteCache(path + ".cache"); err != nil {
			return fmt.Errorf("%s: write cache: %w", path, err)
		}
	}

	assets, err := d.All()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	type row struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	rows := make([]row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, row{Type: a.Type.String(), Name: a.Name})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
