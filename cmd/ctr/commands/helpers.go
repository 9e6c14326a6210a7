package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/ctrclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	// Configuration keys.
	keyRegion               = "region"
	keyClientID             = "client_id"
	keyClientSecret         = "client_secret"
	keyAccessToken          = "access_token"
	keyBaseURL              = "base_url"
	keyIntelURL             = "intel_url"
	keyProxy                = "proxy"
	keyTimeout              = "timeout"
	keyOutput               = "output"
	keyVerbose              = "verbose"
	keyCachedToken          = "cached_token"
	keyCachedTokenExpiresAt = "cached_token_expires_at"

	Masked = "***"

	// A cached token is reused only when it outlives this margin.
	cachedTokenMargin = time.Minute
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidObservable = errors.New("observable must be given as type:value")
	ErrNoInput           = errors.New("no input given, pass text as arguments or '-' to read stdin")
)

// settableKeys lists the keys "ctr config set" accepts.
var settableKeys = []string{
	keyRegion,
	keyClientID,
	keyClientSecret,
	keyAccessToken,
	keyBaseURL,
	keyIntelURL,
	keyProxy,
	keyTimeout,
	keyOutput,
}

// secretKeys are masked by "ctr config show".
var secretKeys = map[string]bool{
	keyClientSecret: true,
	keyAccessToken:  true,
	keyCachedToken:  true,
}

// createClient builds a client from flags, environment and the config file.
func createClient(ctx context.Context, cmd *cobra.Command) (ctr.Client, error) {
	config, err := clientConfig(cmd)
	if err != nil {
		return nil, err
	}

	client, err := ctrclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// clientConfig assembles a ctr.Config from viper. A cached token is reused
// while it is valid; the credentials still allow renewal on 401.
func clientConfig(cmd *cobra.Command) (*ctr.Config, error) {
	config := &ctr.Config{
		Region:       ctr.Region(viper.GetString(keyRegion)),
		BaseURL:      viper.GetString(keyBaseURL),
		IntelURL:     viper.GetString(keyIntelURL),
		ClientID:     viper.GetString(keyClientID),
		ClientSecret: viper.GetString(keyClientSecret),
		AccessToken:  viper.GetString(keyAccessToken),
		ProxyURL:     viper.GetString(keyProxy),
		Timeout:      viper.GetDuration(keyTimeout),
		Logger:       newLogger(),
	}

	if config.ClientID != "" && config.ClientSecret == "" && config.AccessToken == "" {
		secret, err := promptSecret(cmd.ErrOrStderr(), "Client secret: ")
		if err != nil {
			return nil, err
		}

		config.ClientSecret = secret
	}

	if config.AccessToken == "" && config.ClientID == "" {
		return nil, constants.ErrNoCredentials
	}

	if config.AccessToken == "" {
		config.AccessToken = cachedToken()
		config.TokenPersister = NewConfigPersister()
	}

	return config, nil
}

// cachedToken returns the token saved by a previous run, or "" when it is
// missing or about to expire.
func cachedToken() string {
	token := viper.GetString(keyCachedToken)
	if token == "" {
		return ""
	}

	expiresAt, err := time.Parse(time.RFC3339, viper.GetString(keyCachedTokenExpiresAt))
	if err != nil || time.Until(expiresAt) < cachedTokenMargin {
		return ""
	}

	return token
}

// promptSecret reads a secret from the terminal without echo. Outside a
// terminal it returns "" so the client reports missing credentials.
func promptSecret(out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(out, prompt)

	secretBytes, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secretBytes)), nil
}

// newLogger returns a zap-backed logger. Without --verbose only warnings and
// errors are written.
func newLogger() ctr.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if viper.GetBool(keyVerbose) {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}

	if err != nil {
		return ctr.NopLogger{}
	}

	return ctr.NewZapLogger(logger)
}

// writeOutput writes value in the selected output format. renderTable fills
// the table used by the default format; a nil renderTable prints indented
// JSON instead.
func writeOutput(out io.Writer, value any, renderTable func(table *tablewriter.Table) error) error {
	format := viper.GetString(keyOutput)

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding output to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding output to YAML: %w", err)
		}

		return encoder.Close()
	case OutputFormatTable, "":
		if renderTable == nil {
			return writeIndentedJSON(out, value)
		}

		table := tablewriter.NewWriter(out)

		err := renderTable(table)
		if err != nil {
			return err
		}

		err = table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrUnsupportedOutput, format)
	}
}

func writeIndentedJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output to JSON: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))

	return err
}

// parseObservables parses "type:value" arguments. The value may itself
// contain colons, as IPv6 addresses do.
func parseObservables(args []string) ([]ctr.Observable, error) {
	observables := make([]ctr.Observable, 0, len(args))

	for _, arg := range args {
		kind, value, ok := strings.Cut(arg, ":")
		if !ok || kind == "" || value == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidObservable, arg)
		}

		observables = append(observables, ctr.Observable{Type: kind, Value: value})
	}

	if len(observables) == 0 {
		return nil, constants.ErrNoObservables
	}

	return observables, nil
}

// readText joins args into one text, or reads in when the only argument is "-".
func readText(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		args = []string{string(data)}
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", ErrNoInput
	}

	return text, nil
}

// parsePayload turns a command line argument into a route argument.
// "@path" loads a JSON or YAML file, arguments starting with '{' or '[' are
// decoded inline, and anything else is passed as a string.
func parsePayload(arg string) (any, error) {
	var data []byte

	switch {
	case strings.HasPrefix(arg, "@"):
		path := filepath.Clean(strings.TrimPrefix(arg, "@"))

		// #nosec G304 -- the path is supplied by the user on purpose
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}

		data = content
	case strings.HasPrefix(arg, "{"), strings.HasPrefix(arg, "["):
		data = []byte(arg)
	default:
		return arg, nil
	}

	var payload any

	err := yaml.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidPayload, err)
	}

	if payload == nil {
		return nil, constants.ErrInvalidPayload
	}

	return normalizeYAML(payload), nil
}

// normalizeYAML converts map[interface{}]interface{} nodes, which YAML allows
// for non-string keys, into JSON-compatible maps.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, item := range v {
			v[key] = normalizeYAML(item)
		}

		return v
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = normalizeYAML(item)
		}

		return converted
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeYAML(item)
		}

		return v
	default:
		return value
	}
}

// compactJSON renders value on one line for table cells.
func compactJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	var buf bytes.Buffer

	err = json.Compact(&buf, data)
	if err != nil {
		return string(data)
	}

	return buf.String()
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
