// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations no single flag validator can
// see. Text-only flags are ignored, with a warning, for other formats.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	if c.String("output") == output.FormatText {
		return nil
	}
	for _, name := range []string{"titles", "color"} {
		if c.Bool(name) {
			log.Warnf("--%s is ignored with --output %s", name, c.String("output"))
		}
	}
	return nil
}

func OutputValidator(value any) error {
	valid := []string{output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML}
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}

func PaddingValidator(value any) error {
	n, ok := value.(int)
	if !ok || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
