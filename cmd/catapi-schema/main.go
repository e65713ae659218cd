/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unikorn-cloud/catapi/pkg/logging"
	"github.com/unikorn-cloud/catapi/pkg/schema"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/yaml"
)

var ErrOutputFormat = errors.New("unsupported output format")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are shared by every sub command.
type options struct {
	logging logging.Options
	spec    string
	output  string
}

func (o *options) load() (*schema.Document, error) {
	log.Log.WithName("schema").V(1).Info("loading document", "path", o.spec)

	return schema.Load(o.spec)
}

// write renders a value in the selected output format.
func (o *options) write(w io.Writer, value any) error {
	var (
		data []byte
		err  error
	)

	switch o.output {
	case "json":
		data, err = json.MarshalIndent(value, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(value)
	default:
		return fmt.Errorf("%w: %q", ErrOutputFormat, o.output)
	}

	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w)

	return err
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "catapi-schema",
		Short:         "Inspect the TheCatAPI OpenAPI document and check payloads against it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.logging.Writer = cmd.ErrOrStderr()

			return o.logging.Setup()
		},
	}

	o.logging.AddFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&o.spec, "spec", "test_data/swagger.yaml", "OpenAPI document path")
	root.PersistentFlags().StringVarP(&o.output, "output", "o", "json", "Output format (json, yaml)")

	root.AddCommand(newResolveCmd(o))
	root.AddCommand(newValidateCmd(o))
	root.AddCommand(newLintCmd(o))
	root.AddCommand(newDumpCmd(o))

	return root
}

func newResolveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve KEY...",
		Short:   "Print the node found by walking the dereferenced document",
		Example: "catapi-schema resolve components schemas ImageBase",
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := o.load()
			if err != nil {
				return err
			}

			node, err := document.Lookup(args...)
			if err != nil {
				return err
			}

			return o.write(cmd.OutOrStdout(), node)
		},
	}
}

func newValidateCmd(o *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "validate KEY...",
		Short:   "Validate a JSON payload against the schema at the given path",
		Example: "curl -s https://api.thecatapi.com/v1/images/search | catapi-schema validate components schemas ImagesSearchNotAuthorizedResponse",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := o.load()
			if err != nil {
				return err
			}

			var body []byte

			if file == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(file)
			}

			if err != nil {
				return fmt.Errorf("reading payload: %w", err)
			}

			if err := schema.ValidateJSON(body, args, document); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")

			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Payload to validate, - reads standard input")

	return cmd
}

func newLintCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the document is valid OpenAPI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := o.load()
			if err != nil {
				return err
			}

			if err := document.Lint(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")

			return err
		},
	}
}

func newDumpCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the fully dereferenced document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := o.load()
			if err != nil {
				return err
			}

			return o.write(cmd.OutOrStdout(), document.Root())
		},
	}
}
