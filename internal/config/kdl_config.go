package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .logram.kdl file in root.
func LoadKDL(root string) (*Config, error) {
	kdlPath := filepath.Join(root, ".logram.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .logram.kdl: %v", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg != nil {
		if cfg.Project.Root != "" {
			if filepath.IsAbs(cfg.Project.Root) {
				cfg.Project.Root = filepath.Clean(cfg.Project.Root)
			} else {
				cfg.Project.Root = filepath.Clean(filepath.Join(root, cfg.Project.Root))
			}
		} else if absRoot, err := filepath.Abs(root); err == nil {
			cfg.Project.Root = absRoot
		} else {
			cfg.Project.Root = root
		}
	}

	return cfg, nil
}

// parseKDL parses the logram KDL dialect into a Config, pre-seeded with
// Version 1, the working directory as project root and a 10-second poll
// timeout. Unlike LoadWithRoot's fallback config, NumThreads is left at 0
// (serial) when the file does not set it.
func parseKDL(content string) (*Config, error) {
	defaultRoot, _ := os.Getwd()
	if defaultRoot == "" {
		defaultRoot = "."
	}

	cfg := &Config{
		Version: 1,
		Project: Project{Root: defaultRoot},
		Verifier: Verifier{
			PollTimeoutSec: 10,
		},
	}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "log_format":
			if s, ok := firstStringArg(n); ok {
				cfg.LogFormat = s
			}
		case "custom_formats_path":
			if s, ok := firstStringArg(n); ok {
				cfg.CustomFormatsPath = s
			}
		case "parallelism":
			for _, cn := range n.Children {
				if nodeName(cn) == "num_threads" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Parallelism.NumThreads = v
					}
				}
			}
		case "aggregation":
			for _, cn := range n.Children {
				if nodeName(cn) == "single_map" {
					if b, ok := firstBoolArg(cn); ok {
						cfg.Aggregation.SingleMap = b
					}
				}
			}
		case "verifier":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "server":
					if s, ok := firstStringArg(cn); ok {
						cfg.Verifier.Server = s
					}
				case "poll_timeout_sec":
					if v, ok := firstIntArg(cn); ok {
						cfg.Verifier.PollTimeoutSec = v
					}
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

// parseSize handles size strings like "10MB", "500KB", "1GB" for any
// future byte-sized config fields.
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}
