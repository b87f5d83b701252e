package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwantia/gofile/pkg/fileref"
	"github.com/spf13/cobra"
)

func NewInspectCommand() *cobra.Command {
	var asURL bool
	var asAsset bool
	var asBytes bool
	var knownSize int64
	var mimeType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <path|url>",
		Short: "Inspect a file reference",
		Long:  "Builds a file reference from a local path, network URL or asset path and prints its derived metadata.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ref, err := buildRef(args[0], asURL, asAsset, asBytes, knownSize, mimeType)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(ref, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printRef(ref)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asURL, "url", false, "treat the argument as a network URL")
	cmd.Flags().BoolVar(&asAsset, "asset", false, "treat the argument as a bundled asset path")
	cmd.Flags().BoolVar(&asBytes, "bytes", false, "read the file and reference its content as an in-memory buffer")
	cmd.Flags().Int64Var(&knownSize, "size", 0, "known size in bytes for URL or asset references")
	cmd.Flags().StringVar(&mimeType, "mime", "", "declared MIME type, skips name-based lookup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the wire-format map as JSON")

	return cmd
}

func buildRef(arg string, asURL, asAsset, asBytes bool, knownSize int64, mimeType string) (*fileref.Ref, error) {
	var opts []fileref.Option
	if knownSize > 0 {
		opts = append(opts, fileref.WithKnownSize(knownSize))
	}
	if mimeType != "" {
		opts = append(opts, fileref.WithMIMEType(mimeType))
	}

	switch {
	case asBytes:
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", arg, err)
		}
		return fileref.NewFromBytes(filepath.Base(arg), data, opts...), nil
	case asAsset:
		return fileref.NewFromAsset(arg, opts...), nil
	case asURL || strings.HasPrefix(arg, "http"):
		return fileref.NewFromURL(arg, opts...), nil
	default:
		return fileref.NewFromPath(arg, opts...)
	}
}

func printRef(ref *fileref.Ref) {
	fmt.Printf("Name:       %s\n", ref.Name())
	fmt.Printf("Origin:     %s\n", ref.Origin())
	fmt.Printf("Extension:  %s\n", ref.Extension())
	fmt.Printf("MIME type:  %s\n", valueOrDash(ref.MIMEType()))
	fmt.Printf("Media:      %s\n", ref.Media())
	fmt.Printf("Size:       %d (%s)\n", ref.Size(), ref.ReadableSize())
	fmt.Printf("Hash:       %s\n", ref.Hash())

	if key, err := ref.CacheKey(); err != nil {
		fmt.Printf("Cache key:  error: %v\n", err)
	} else {
		fmt.Printf("Cache key:  %s\n", key)
	}

	if ref.IsFromURL() {
		fmt.Printf("Full URL:   %s\n", ref.FullURL())
	}
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
