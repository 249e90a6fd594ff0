package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/itchyny/gojq"

	"github.com/spacelift-io/flows-app-aws-api/config"
	"github.com/spacelift-io/flows-app-aws-api/module"
)

// invokeFlags are shared by the commands that talk to AWS.
type invokeFlags struct {
	config   *string
	endpoint *string
	timeout  *time.Duration
}

func addInvokeFlags(fs *flag.FlagSet) invokeFlags {
	return invokeFlags{
		config:   fs.String("config", "", "Path to configuration YAML file (defaults to environment)"),
		endpoint: fs.String("endpoint", "", "Custom endpoint URL (overrides aws.endpoint)"),
		timeout:  fs.Duration("timeout", 30*time.Second, "Request timeout"),
	}
}

func (f invokeFlags) clientConfig() (module.ClientConfig, error) {
	cfg, err := config.Load(*f.config)
	if err != nil {
		return module.ClientConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	cc := module.ClientConfigFromApp(cfg.AWS)
	if *f.endpoint != "" {
		cc.Endpoint = *f.endpoint
	}
	return cc, nil
}

func runInvoke(args []string) error {
	fs := flag.NewFlagSet("invoke", flag.ExitOnError)
	input := fs.String("input", "{}", "Input config as a JSON object, including region")
	inputFile := fs.String("input-file", "", "Read the input config from a JSON file ('-' for stdin)")
	filter := fs.String("jq", "", "jq filter applied to the emitted payload")
	events := fs.Bool("events", false, "Print the full invocation result instead of the payload")
	common := addInvokeFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl invoke [options] <block-type>\n\nInvoke a block once and print what it emits.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("block type is required")
	}

	raw := []byte(*input)
	if *inputFile != "" {
		var err error
		raw, err = readInput(*inputFile)
		if err != nil {
			return err
		}
	}
	var inputConfig map[string]any
	if err := json.Unmarshal(raw, &inputConfig); err != nil {
		return fmt.Errorf("invalid input JSON: %w", err)
	}

	var code *gojq.Code
	if *filter != "" {
		query, err := gojq.Parse(*filter)
		if err != nil {
			return fmt.Errorf("invalid jq filter: %w", err)
		}
		code, err = gojq.Compile(query)
		if err != nil {
			return fmt.Errorf("invalid jq filter: %w", err)
		}
	}

	cc, err := common.clientConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *common.timeout)
	defer cancel()

	invoker := module.NewInvoker(reg, module.StaticClientConfig(cc))
	result, err := invoker.Invoke(ctx, fs.Arg(0), inputConfig)
	if err != nil {
		return err
	}

	var out any = result.Output()
	if *events {
		out = result
	}
	if code != nil {
		return runFilter(code, result.Output())
	}
	return printJSON(out)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// runFilter prints every value the jq program yields for payload.
func runFilter(code *gojq.Code, payload map[string]any) error {
	iter := code.Run(payload)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("jq: %w", err)
		}
		if err := printJSON(v); err != nil {
			return err
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runWhoami(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	region := fs.String("region", "us-east-1", "Region to send the request to")
	common := addInvokeFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flowsctl whoami [options]\n\nShow the identity behind the configured credentials.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cc, err := common.clientConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *common.timeout)
	defer cancel()

	awsCfg, err := cc.AWSConfig(ctx, *region)
	if err != nil {
		return err
	}
	id, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("failed to get caller identity: %w", err)
	}

	fmt.Fprintf(stdout, "Account: %s\nARN:     %s\nUserId:  %s\n",
		aws.ToString(id.Account), aws.ToString(id.Arn), aws.ToString(id.UserId))
	return nil
}
