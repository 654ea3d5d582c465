// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	catalogFlag := &cli.StringFlag{
		Name:  "catalog",
		Usage: "Path to the BadgerDB catalog directory (defaults to the config's catalog_path)",
	}
	searchFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Aliases: []string{"u"},
			Usage:   "Origin the source endpoints are resolved against",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Query variant policy (default, exact)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
		},
		&cli.IntFlag{
			Name:  "max-per-source",
			Usage: "Keep at most N results from each source (0 keeps all)",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "Log every variant attempt and source outcome at debug level",
		},
	}

	return &cli.App{
		Name:  "omnisearch",
		Usage: "Federated as-you-type search across items, services, auctions, features and verticals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load fixtures into the development catalog",
				Action: seedCommand,
				Flags: []cli.Flag{
					catalogFlag,
					&cli.StringFlag{
						Name:    "fixtures",
						Aliases: []string{"f"},
						Usage:   "YAML fixtures file (defaults to the built-in sample catalog)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of listings stored per transaction",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N listings",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 100 * time.Millisecond,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the development catalog over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					catalogFlag,
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to listen on (defaults to the config's listen_addr)",
					},
					&cli.BoolFlag{
						Name:  "in-memory",
						Usage: "Serve an in-memory catalog seeded with the built-in sample",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run one federated search and print the merged results",
				ArgsUsage: "<query>",
				Action:    queryCommand,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				}, searchFlags...),
			},
			{
				Name:   "interactive",
				Usage:  "Drive a search session from stdin (text is input; :up :down :enter :esc :open :close :quit are keys)",
				Action: interactiveCommand,
				Flags: append([]cli.Flag{
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Quiet interval before input is submitted",
					},
				}, searchFlags...),
			},
		},
	}
}
