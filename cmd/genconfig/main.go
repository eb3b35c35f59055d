// Command genconfig writes a config.yaml populated with the service defaults,
// overlaid with any matching environment variables.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/NomadCrew/feedback-intake/config"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const header = "# Generated by genconfig. Environment variables override every value below.\n"

func main() {
	out := flag.String("out", "config.yaml", "path of the file to write")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	if _, err := os.Stat(*out); err == nil && !*force {
		fmt.Printf("ERROR: %s already exists. Re-run with -force to overwrite it.\n", *out)
		os.Exit(1)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	data, err := render()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Printf("Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Configuration written to %s\n", *out)
}

// render resolves defaults and environment overrides into YAML.
func render() ([]byte, error) {
	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to resolve defaults: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
