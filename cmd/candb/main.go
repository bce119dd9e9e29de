package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-candb/pkg/adapter"
	"github.com/dd0wney/cluso-candb/pkg/gateway"
	"github.com/dd0wney/cluso-candb/pkg/kcd"
	"github.com/dd0wney/cluso-candb/pkg/logging"
	"github.com/dd0wney/cluso-candb/pkg/model"
)

// Config is the optional YAML configuration for codec behavior.
type Config struct {
	Strict            *bool  `yaml:"strict"`
	SortSignals       string `yaml:"sort_signals"`       // "none" or "start-bit"
	UnknownAttributes string `yaml:"unknown_attributes"` // "ignore", "warn" or "reject"
	LogLevel          string `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	case "routes":
		err = runRoutes(os.Args[2:])
	case "formats":
		fmt.Println(strings.Join(adapter.Names(), "\n"))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "candb: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  candb list [-a] [-config file] <database>
  candb convert [-config file] <input> <output>
  candb routes <gateways.yaml>
  candb formats`)
}

// loadConfig reads a YAML config file and re-registers the KCD adapter
// with the resulting options. An empty path keeps the defaults.
func loadConfig(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	opts := kcd.DefaultLoadOptions()
	if cfg.Strict != nil {
		opts.Strict = *cfg.Strict
	}
	switch cfg.SortSignals {
	case "", "start-bit":
		opts.SortSignals = model.SortSignalsByStartBit
	case "none":
		opts.SortSignals = nil
	default:
		return fmt.Errorf("unknown sort_signals policy %q", cfg.SortSignals)
	}
	switch cfg.UnknownAttributes {
	case "", "ignore":
		opts.UnknownAttributes = kcd.UnknownAttributeIgnore
	case "warn":
		opts.UnknownAttributes = kcd.UnknownAttributeWarn
	case "reject":
		opts.UnknownAttributes = kcd.UnknownAttributeReject
	default:
		return fmt.Errorf("unknown unknown_attributes policy %q", cfg.UnknownAttributes)
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	adapter.Register(kcd.NewAdapter(opts, kcd.DumpOptions{}))
	return nil
}

func loadNetwork(path string) (*model.Network, error) {
	a, err := adapter.ForExtension(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.Load(data)
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("a", false, "Print all message details")
	configPath := fs.String("config", "", "YAML config file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("list: expected one database file")
	}
	if err := loadConfig(*configPath); err != nil {
		return err
	}

	network, err := loadNetwork(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, message := range network.Messages {
		if !*all {
			fmt.Println(message.Name)
			continue
		}
		fmt.Printf("%s:\n", message.Name)
		if message.Comment != "" {
			fmt.Printf("  Comment: %s\n", message.Comment)
		}
		if len(message.Senders) > 0 {
			fmt.Printf("  Sending ECUs: %s\n", strings.Join(message.Senders, ", "))
		}
		fmt.Printf("  Frame ID: 0x%x (%d)\n", message.FrameID, message.FrameID)
		fmt.Printf("  Size: %d bytes\n", message.Length)
		fmt.Printf("  Is extended frame: %v\n", message.IsExtendedFrame)
		if message.CycleTime != nil {
			fmt.Printf("  Cycle time: %d ms\n", *message.CycleTime)
		}
		if len(message.Signals) > 0 {
			fmt.Println("  Signal tree:")
			for _, signal := range message.Signals {
				printSignal(signal)
			}
		}
	}
	return nil
}

func printSignal(signal *model.Signal) {
	var notes []string
	if signal.IsMultiplexer {
		notes = append(notes, "multiplexer")
	}
	if signal.IsMultiplexed() {
		notes = append(notes, fmt.Sprintf("selected by %s = %d",
			signal.MultiplexerSignal, signal.MultiplexerIDs[0]))
	}
	suffix := ""
	if len(notes) > 0 {
		suffix = " (" + strings.Join(notes, "; ") + ")"
	}
	fmt.Printf("    -- %s: start %d, length %d, %s%s\n",
		signal.Name, signal.Start, signal.Length, signal.ByteOrder, suffix)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("convert: expected input and output files")
	}
	if err := loadConfig(*configPath); err != nil {
		return err
	}

	network, err := loadNetwork(fs.Arg(0))
	if err != nil {
		return err
	}
	out, err := adapter.ForExtension(filepath.Ext(fs.Arg(1)))
	if err != nil {
		return err
	}
	data, err := out.Dump(network)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Arg(1), data, 0o644)
}

// gatewayFile is the YAML shape of a gateway route table.
type gatewayFile struct {
	Gateways []struct {
		Name   string `yaml:"name"`
		Node   string `yaml:"node"`
		Routes []struct {
			Source string `yaml:"source"`
			Target string `yaml:"target"`
		} `yaml:"routes"`
	} `yaml:"gateways"`
}

func runRoutes(args []string) error {
	fs := flag.NewFlagSet("routes", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("routes: expected one gateway table file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var file gatewayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse gateway table: %w", err)
	}

	gateways := make([]gateway.Gateway, 0, len(file.Gateways))
	for _, g := range file.Gateways {
		gw := gateway.Gateway{Name: g.Name, NodeRef: g.Node}
		for _, r := range g.Routes {
			gw.Routes = append(gw.Routes, gateway.Route{Source: r.Source, Target: r.Target})
		}
		gateways = append(gateways, gw)
	}

	resolved := gateway.ResolveRoutes(gateways)
	targets := make([]string, 0, len(resolved))
	for target := range resolved {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		route := resolved[target]
		fmt.Printf("%s <- %s via %s\n", target, route.Origin, strings.Join(route.Gateways, ", "))
	}
	return nil
}
