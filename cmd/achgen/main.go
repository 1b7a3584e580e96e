// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// achgen assembles a NACHA file from a JSON request and writes it to stdout
// or a directory. A copy is kept in the configured audit trail.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/nexus/paymentrails/pkg/config"
	"github.com/nexus/paymentrails/pkg/generator"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
	flagInput      = flag.String("input", "", "Filepath of the JSON file request, stdin when empty")
	flagOutputDir  = flag.String("output", "", "Directory to write the generated file into, stdout when empty")
	flagTimeout    = flag.Duration("timeout", 30*time.Second, "Deadline for generating and archiving the file")
)

func main() {
	flag.Parse()

	configFilepath := os.Getenv("CONFIG_FILE")
	if configFilepath == "" {
		configFilepath = *flagConfigFile
	}
	cfg, err := config.FromFile(configFilepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *flagInput, *flagOutputDir, *flagTimeout); err != nil {
		cfg.Logger.Log("exit", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, input, outputDir string, timeout time.Duration) error {
	gen, err := generator.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("problem creating generator: %v", err)
	}
	defer func() {
		if err := gen.Close(); err != nil {
			cfg.Logger.Log("exit", err)
		}
	}()

	in := os.Stdin
	if input != "" {
		fd, err := os.Open(input)
		if err != nil {
			return err
		}
		defer fd.Close()
		in = fd
	}
	req, err := readRequest(in)
	if err != nil {
		return err
	}

	file, err := buildFile(gen, req, time.Now())
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), timeout)
	defer cancelFunc()

	res, err := gen.Generate(ctx, file)
	if err != nil {
		return err
	}

	if outputDir == "" {
		_, err = os.Stdout.Write(res.Contents)
		return err
	}
	path := filepath.Join(outputDir, res.Filename)
	if err := ioutil.WriteFile(path, res.Contents, 0644); err != nil {
		return err
	}
	cfg.Logger.Log("main", fmt.Sprintf("wrote %s", path))
	return nil
}
