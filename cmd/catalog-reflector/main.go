/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements. See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/reflector"
	"github.com/noctarius/catalog-reflector/internal/supporting"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	spiconfig "github.com/noctarius/catalog-reflector/spi/config"
	"github.com/noctarius/catalog-reflector/spi/version"
	"github.com/noctarius/catalog-reflector/spi/wiring"
	"github.com/urfave/cli"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var (
	configurationFile string
	verbose           bool
	withCaller        bool
	logToStdErr       bool
	versionOnly       bool
	schema            string
	dbLink            string
	resolveSynonyms   bool
	offline           string
	withStats         bool
)

var config = &spiconfig.Config{}

func main() {
	kindFlag := cli.StringFlag{
		Name:  "kind,k",
		Usage: "Object kinds to reflect (TABLE, VIEW, MATERIALIZED_VIEW, TEMP_TABLE, ANY_VIEW, ANY, combined with |)",
	}

	app := &cli.App{
		Name:        version.BinName,
		Usage:       "Reflects tables, views and their constraints from the Oracle data dictionary",
		Version:     version.Version,
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config,c",
				Value:       "",
				Usage:       "Load configuration from `FILE`",
				Destination: &configurationFile,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "Show verbose output",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "caller",
				Usage:       "Collect caller information for log messages",
				Destination: &withCaller,
			},
			&cli.BoolFlag{
				Name:        "log-to-stderr",
				Usage:       "Redirects logging output to stderr, keeping stdout clean for the JSON output",
				Destination: &logToStdErr,
			},
			&cli.BoolFlag{
				Name:        "version",
				Usage:       "Prints the version and exits",
				Destination: &versionOnly,
			},
			&cli.StringFlag{
				Name:        "schema,s",
				Usage:       "Reflect objects of `SCHEMA` instead of the default schema",
				Destination: &schema,
			},
			&cli.StringFlag{
				Name:        "dblink",
				Usage:       "Reflect objects of the remote database behind database link `LINK`",
				Destination: &dbLink,
			},
			&cli.BoolFlag{
				Name:        "resolve-synonyms",
				Usage:       "Follow synonyms to their target objects",
				Destination: &resolveSynonyms,
			},
			&cli.StringFlag{
				Name:        "offline",
				Usage:       "Reflect the dictionary snapshot `FILE` instead of a live database",
				Destination: &offline,
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "Prints dictionary query metrics to stderr when done",
				Destination: &withStats,
			},
		},
		Before: setup,
		Commands: []cli.Command{
			{
				Name:   "names",
				Usage:  "Lists the names of all objects of the requested kinds",
				Flags:  []cli.Flag{kindFlag},
				Action: withReflector(names),
			},
			{
				Name:      "describe",
				Usage:     "Reflects a single object",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					kindFlag,
					cli.BoolFlag{
						Name:  "include-all",
						Usage: "Includes system generated NOT NULL check constraints",
					},
				},
				Action: withReflector(describe),
			},
			{
				Name:  "reflect",
				Usage: "Reflects all objects of the requested kinds",
				Flags: []cli.Flag{
					kindFlag,
					cli.BoolFlag{
						Name:  "include-all",
						Usage: "Includes system generated NOT NULL check constraints",
					},
				},
				Action: withReflector(reflect),
			},
			{
				Name:      "resolve",
				Usage:     "Follows the synonyms of a name to the final object",
				ArgsUsage: "NAME",
				Action:    withReflector(resolve),
			},
			{
				Name:      "type",
				Usage:     "Maps a native type declaration to its portable type and back",
				ArgsUsage: "NATIVE",
				Action:    mapType,
			},
			{
				Name:      "snapshot",
				Usage:     "Captures the dictionary of the given owners into a SQLite file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					cli.StringSliceFlag{
						Name:  "owner,o",
						Usage: "Owner to capture, may be repeated (default: the connected schema)",
					},
				},
				Action: withReflector(captureSnapshot),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(*cli.Context) error {
	fmt.Fprintf(os.Stderr, "%s version %s (git revision %s; branch %s)\n",
		version.BinName, version.Version, version.CommitHash, version.Branch,
	)

	if versionOnly {
		return cli.NewExitError("", 0)
	}

	logging.WithCaller = withCaller
	logging.WithVerbose = verbose

	// No configuration file set? Try env variable!
	if configurationFile == "" {
		if cf, present := os.LookupEnv("CATALOG_REFLECTOR_CONFIG"); present {
			fmt.Fprintf(os.Stderr, "Using configuration file from environment variable\n")
			configurationFile = cf
		}
	}

	if configurationFile != "" {
		fmt.Fprintf(os.Stderr, "Loading configuration file: %s\n", configurationFile)
		if _, err := os.Stat(configurationFile); err != nil {
			return cli.NewExitError(fmt.Sprintf("Configuration file couldn't be opened: %v\n", err), 3)
		}
		if err := spiconfig.LoadFile(configurationFile, config); err != nil {
			return cli.NewExitError(fmt.Sprintf("Configuration file couldn't be decoded: %v\n", err), 5)
		}
	}

	if schema != "" {
		config.Reflection.Schema = schema
	}
	if dbLink != "" {
		config.Reflection.DBLink = dbLink
	}
	if resolveSynonyms {
		config.Reflection.ResolveSynonyms = &resolveSynonyms
	}
	if offline != "" {
		config.Snapshot.Source = offline
	}
	if withStats {
		config.Stats.Enabled = &withStats
	}

	if err := logging.InitializeLogging(config, logToStdErr); err != nil {
		return supporting.AdaptErrorWithMessage(err, "Logging couldn't be initialized", 4)
	}
	return nil
}

type reflectorAction func(
	ctx context.Context, c *cli.Context, r *reflector.Reflector, options catalog.Options,
) (any, error)

// withReflector wires the reflector, runs the action and prints its
// result as JSON to stdout
func withReflector(
	action reflectorAction,
) func(c *cli.Context) error {

	return func(c *cli.Context) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		container, err := reflector.NewContainer(config)
		if err != nil {
			return supporting.AdaptErrorWithMessage(err, "Wiring failed", 6)
		}
		defer func() {
			if err := container.Shutdown(); err != nil {
				fmt.Fprintf(os.Stderr, "Hard error when closing the dictionary session: %v\n", err)
			}
		}()

		r, err := wiring.Lookup[*reflector.Reflector](container)
		if err != nil {
			return supporting.AdaptErrorWithMessage(err, "Dictionary session couldn't be opened", 7)
		}

		options, err := requestOptions(c, r.Defaults())
		if err != nil {
			return supporting.AdaptError(err, 8)
		}

		result, err := action(ctx, c, r, options)
		if err != nil {
			return supporting.AdaptError(err, 10)
		}

		if result != nil {
			if err := printJson(result); err != nil {
				return supporting.AdaptError(err, 11)
			}
		}

		if err := r.WriteStats(os.Stderr); err != nil {
			return supporting.AdaptError(err, 12)
		}
		return nil
	}
}

func requestOptions(
	c *cli.Context, defaults catalog.Options,
) (catalog.Options, error) {

	options := defaults
	if c.IsSet("kind") {
		kind, err := catalog.ParseObjectKind(c.String("kind"))
		if err != nil {
			return catalog.Options{}, err
		}
		options.Kind = kind
	}
	options.IncludeAll = c.Bool("include-all")
	return options, nil
}

func names(
	ctx context.Context, _ *cli.Context, r *reflector.Reflector, options catalog.Options,
) (any, error) {

	return r.Names(ctx, options)
}

func describe(
	ctx context.Context, c *cli.Context, r *reflector.Reflector, options catalog.Options,
) (any, error) {

	name, err := requiredArgument(c, "NAME")
	if err != nil {
		return nil, err
	}
	return r.Describe(ctx, name, options)
}

func reflect(
	ctx context.Context, _ *cli.Context, r *reflector.Reflector, options catalog.Options,
) (any, error) {

	return r.Reflect(ctx, options)
}

func resolve(
	ctx context.Context, c *cli.Context, r *reflector.Reflector, options catalog.Options,
) (any, error) {

	name, err := requiredArgument(c, "NAME")
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, name, options)
}

func captureSnapshot(
	ctx context.Context, c *cli.Context, r *reflector.Reflector, _ catalog.Options,
) (any, error) {

	path, err := requiredArgument(c, "FILE")
	if err != nil {
		return nil, err
	}

	owners := c.StringSlice("owner")
	if len(owners) == 0 {
		owners = spiconfig.GetOrDefault(config, spiconfig.PropertySnapshotOwners, []string{})
	}
	return nil, r.Snapshot(ctx, path, owners)
}

func mapType(
	c *cli.Context,
) error {

	declaration, err := requiredArgument(c, "NATIVE")
	if err != nil {
		return supporting.AdaptError(err, 8)
	}

	mapping, err := reflector.MapType(declaration)
	if err != nil {
		return supporting.AdaptError(err, 10)
	}
	if err := printJson(mapping); err != nil {
		return supporting.AdaptError(err, 11)
	}
	return nil
}

func requiredArgument(
	c *cli.Context, name string,
) (string, error) {

	if c.NArg() != 1 {
		return "", cli.NewExitError(fmt.Sprintf("exactly one argument %s required", name), 2)
	}
	return c.Args().First(), nil
}

func printJson(
	value any,
) error {

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(encoded))
	return err
}
