package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugins/all"
)

func loadRegistry() (*module.BlockRegistry, error) {
	reg := module.NewBlockRegistry()
	if err := all.LoadAll(reg); err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	return reg, nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	service := fs.String("service", "", "Only list blocks of this service (ec2, kms, rds)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl list [options]\n\nList block types.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	count := 0
	for _, s := range reg.Schemas() {
		if *service != "" && s.Service != *service {
			continue
		}
		fmt.Fprintf(stdout, "  %-42s  %s\n", s.Type, s.Name)
		count++
	}
	fmt.Fprintf(stdout, "\n%d blocks\n", count)
	return nil
}

func runDescribe(args []string) error {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the raw declaration as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl describe [options] <block-type>\n\nShow the declaration of one block.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("block type is required")
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	block, err := reg.Get(fs.Arg(0))
	if err != nil {
		return err
	}
	s := block.Schema()

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Declaration())
	}

	fmt.Fprintf(stdout, "%s (%s)\n%s\n\nInputs:\n", s.Name, s.Type, s.Description)
	for _, f := range s.ConfigFields {
		req := ""
		if f.Required {
			req = " (required)"
		}
		fmt.Fprintf(stdout, "  %-34s  %-7s%s\n", f.Key, f.Type, req)
		if f.Description != "" {
			fmt.Fprintf(stdout, "      %s\n", f.Description)
		}
	}
	if len(s.Output.Properties) > 0 {
		keys := make([]string, 0, len(s.Output.Properties))
		for k := range s.Output.Properties {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		fmt.Fprintf(stdout, "\nOutput keys: %s\n", strings.Join(keys, ", "))
	}
	return nil
}

func runSchema(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	output := fs.String("output", "", "Write declarations to file instead of stdout")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl schema [options]\n\nExport all block declarations as JSON.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		enc = json.NewEncoder(f)
	}
	enc.SetIndent("", "  ")

	if err := enc.Encode(reg.Declarations()); err != nil {
		return fmt.Errorf("failed to encode declarations: %w", err)
	}
	if *output != "" {
		fmt.Fprintf(os.Stderr, "Declarations written to %s\n", *output)
	}
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl verify\n\nCheck every block's declared parameters against the SDK input types.\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var errs []error
	checked := 0
	for _, t := range reg.Types() {
		block, _ := reg.Get(t)
		v, ok := block.(module.SchemaVerifier)
		if !ok {
			continue
		}
		checked++
		if err := v.VerifySchema(); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(stdout, "  FAIL  %s\n", t)
		}
	}
	fmt.Fprintf(stdout, "%d blocks checked, %d failed\n", checked, len(errs))
	return errors.Join(errs...)
}
