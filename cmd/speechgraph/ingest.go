package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/speechgraph"
	"github.com/siherrmann/speechgraph/helper"
	"github.com/siherrmann/speechgraph/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newIngestCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Extract a graph from a transcript, one utterance per line",
		Long:  "Reads finalized utterances line by line from a file (or stdin when no file or - is given) and prints the resulting graph.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return helper.NewError("open transcript", err)
				}
				defer f.Close()
				in = f
			}

			level, _ := config.SlogLevel()
			logger := helper.NewLogger(cmd.ErrOrStderr(), level)
			g := speechgraph.NewSpeechGraphWithLogger(config, logger)

			lines, err := ingestLines(g, in)
			if err != nil {
				return err
			}
			logger.Info("Ingested transcript", slog.Int("lines", lines))

			return writeGraph(cmd.OutOrStdout(), g.Graph(), format)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")

	return cmd
}

// maxLineSize bounds a single utterance read by ingest
const maxLineSize = 16 * 1024 * 1024

// ingestLines feeds every non-empty line as a final segment
func ingestLines(g *speechgraph.SpeechGraph, in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		g.Push(model.NewSegment(line, true))
		lines++
	}
	if err := scanner.Err(); err != nil {
		return lines, helper.NewError("read transcript", err)
	}
	return lines, nil
}

func writeGraph(w io.Writer, data model.GraphData, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return helper.NewError("encode json", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return helper.NewError("encode yaml", err)
		}
		return enc.Close()
	default:
		return helper.NewError("write graph", fmt.Errorf("unknown format %q", format))
	}
	return nil
}
