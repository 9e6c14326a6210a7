package client

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/threatresponse/pkg/routing"
)

// convertArg returns args[i] as a T. Values of another type, such as the
// generic JSON documents the CLI passes, are converted through JSON.
func convertArg[T any](args []any, i int) (T, error) {
	value, err := routing.Arg[T](args, i)
	if err == nil {
		return value, nil
	}

	if i < 0 || i >= len(args) {
		return value, err
	}

	data, marshalErr := json.Marshal(args[i])
	if marshalErr != nil {
		return value, err
	}

	var converted T

	unmarshalErr := json.Unmarshal(data, &converted)
	if unmarshalErr != nil {
		return value, fmt.Errorf("%w: argument %d: %w", routing.ErrBadArgument, i, unmarshalErr)
	}

	return converted, nil
}

// stringArg returns args[i] as a string.
func stringArg(args []any, i int) (string, error) {
	return routing.Arg[string](args, i)
}
