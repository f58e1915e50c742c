// This binary splits a secret into threshold shares and combines shares back
// into the secret.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	glog "github.com/golang/glog"
	"github.com/google/subcommands"
	"sigs.k8s.io/yaml"

	"github.com/canopy-network/canopy/lib/shamir"
)

// The current version, displayed via the `version` subcommand.
const shamirVersion string = "0.1.0"

// loadConfig reads a YAML configuration file and overlays the non-zero flag
// values on top of it.
func loadConfig(path, field string, threshold, shares int) (shamir.Configuration, error) {
	var cfg shamir.Configuration

	if path != "" {
		yamlBytes, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(yamlBytes, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if field != "" {
		cfg.Field = shamir.FieldType(field)
	}
	if threshold != 0 {
		cfg.Threshold = threshold
	}
	if shares != 0 {
		cfg.TotalShares = shares
	}
	return cfg, nil
}

// parseSecret reads a decimal integer secret, or hashes the raw text when
// asBytes is set.
func parseSecret(field shamir.Field, text string, asBytes bool) (shamir.Element, error) {
	if asBytes {
		return shamir.SecretFromBytes(field, []byte(text))
	}

	v, ok := new(big.Int).SetString(strings.TrimSpace(text), 10)
	if !ok {
		return nil, fmt.Errorf("secret %q is not a decimal integer", text)
	}
	return shamir.ElementFromBigInt(field, v)
}

// readShares parses shares from args, or one per line from r when args is empty.
func readShares(field shamir.Field, args []string, r io.Reader) ([]*shamir.Share, error) {
	lines := args
	if len(lines) == 0 {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read shares: %w", err)
		}
	}

	shares := make([]*shamir.Share, 0, len(lines))
	for i, line := range lines {
		share, err := shamir.ParseShare(field, line)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shares = append(shares, share)
	}
	return shares, nil
}

// splitCmd handles CLI options for the split command.
type splitCmd struct {
	configFile string
	field      string
	threshold  int
	shares     int
	bytes      bool
	out        io.Writer
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "splits a secret into shares" }
func (*splitCmd) Usage() string {
	return `Usage: shamir split [--config-file=<file>] [--field=<field>] --threshold=<t> --shares=<n> [--bytes] <secret>

Examples:
  Split the integer 1234 into 5 shares, any 3 of which recover it:
    $ shamir split --threshold=3 --shares=5 1234

  Hash a passphrase to a field element and split it:
    $ shamir split --threshold=2 --shares=3 --bytes "correct horse"

Prints one share per line as <x>:<y> in hex.

Flags:
`
}

func (s *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configFile, "config-file", "", "Path to a YAML configuration file. Optional.")
	f.StringVar(&s.field, "field", "", "Field to share over: bn254, secp256k1 or ed25519. Defaults to bn254.")
	f.IntVar(&s.threshold, "threshold", 0, "Number of shares required to reconstruct.")
	f.IntVar(&s.shares, "shares", 0, "Number of shares to generate.")
	f.BoolVar(&s.bytes, "bytes", false, "Treat the secret as text and hash it to a field element.")
}

func (s *splitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		glog.Errorf("Expected exactly one secret argument, got %d", f.NArg())
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig(s.configFile, s.field, s.threshold, s.shares)
	if err != nil {
		glog.Errorf("Failed to load configuration: %v", err)
		return subcommands.ExitFailure
	}

	sharing, params, err := shamir.NewSecretSharingFromConfig(cfg, shamir.WithAuditHandler(&logAuditHandler{}))
	if err != nil {
		glog.Errorf("Invalid configuration: %v", err)
		return subcommands.ExitFailure
	}

	advice := shamir.NewDefaultThresholdValidator().ValidateSchemeParameters(params)
	for _, w := range advice.Warnings {
		glog.Warningf("%s: %s", params, w)
	}

	secret, err := parseSecret(sharing.Field(), f.Arg(0), s.bytes)
	if err != nil {
		glog.Errorf("Invalid secret: %v", err)
		return subcommands.ExitFailure
	}
	defer secret.Zeroize()

	shares, err := sharing.GenerateShares(params, secret, shamir.NewCryptoRandomSource())
	if err != nil {
		glog.Errorf("Failed to split secret: %v", err)
		return subcommands.ExitFailure
	}

	for _, share := range shares {
		fmt.Fprintln(s.out, share.String())
	}
	return subcommands.ExitSuccess
}

// combineCmd handles CLI options for the combine command.
type combineCmd struct {
	configFile string
	field      string
	threshold  int
	in         io.Reader
	out        io.Writer
}

func (*combineCmd) Name() string     { return "combine" }
func (*combineCmd) Synopsis() string { return "reconstructs a secret from shares" }
func (*combineCmd) Usage() string {
	return `Usage: shamir combine [--config-file=<file>] [--field=<field>] --threshold=<t> [<share>...]

Shares are read from the arguments, or one per line from stdin when none are
given. Only the first <t> shares are used. Prints the secret as a decimal integer.

Example:
  $ shamir split --threshold=3 --shares=5 1234 | head -3 | shamir combine --threshold=3
  1234

Flags:
`
}

func (c *combineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config-file", "", "Path to a YAML configuration file. Optional.")
	f.StringVar(&c.field, "field", "", "Field the shares belong to. Defaults to bn254.")
	f.IntVar(&c.threshold, "threshold", 0, "Number of shares required to reconstruct.")
}

func (c *combineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile, c.field, c.threshold, 0)
	if err != nil {
		glog.Errorf("Failed to load configuration: %v", err)
		return subcommands.ExitFailure
	}
	if cfg.Field == "" {
		cfg.Field = shamir.FieldBN254
	}

	field, err := shamir.NewField(cfg.Field)
	if err != nil {
		glog.Errorf("Invalid field: %v", err)
		return subcommands.ExitFailure
	}

	shares, err := readShares(field, f.Args(), c.in)
	if err != nil {
		glog.Errorf("Failed to parse shares: %v", err)
		return subcommands.ExitFailure
	}

	check := shamir.ValidateShareSet(shares, cfg.Threshold)
	for _, w := range check.Warnings {
		glog.Warning(w)
	}

	sharing := shamir.NewSecretSharing(field, shamir.WithAuditHandler(&logAuditHandler{}))
	secret, err := sharing.ReconstructSecret(shares, cfg.Threshold)
	if err != nil {
		glog.Errorf("Failed to reconstruct secret: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintln(c.out, shamir.ElementToBigInt(secret).String())
	return subcommands.ExitSuccess
}

// versionCmd handles the version command.
type versionCmd struct {
	out io.Writer
}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "prints the shamir version" }
func (*versionCmd) Usage() string            { return "Usage: shamir version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (v *versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(v.out, "shamir version %s\n", shamirVersion)
	return subcommands.ExitSuccess
}

func main() {
	flag.Parse()
	defer glog.Flush()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&splitCmd{out: os.Stdout}, "")
	subcommands.Register(&combineCmd{in: os.Stdin, out: os.Stdout}, "")
	subcommands.Register(&versionCmd{out: os.Stdout}, "")

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
