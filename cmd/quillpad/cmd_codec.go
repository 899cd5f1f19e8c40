package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/document"
)

// newDecodeCmd creates the decode subcommand.
func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode FILE",
		Short: "Print an RTF document as annotated text",
		Long: `Print an RTF document as text with inline style markers:
**bold**, *italic*, __underline__, ~~strike~~, [size=N]...[/size] and
[color=#rrggbb]...[/color]. Use - to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), rtf.Decode(text))
			return err
		},
	}
}

// newStripCmd creates the strip subcommand.
func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip FILE",
		Short: "Print an RTF document as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), rtf.DecodePlain(text))
			return err
		},
	}
}

// newEncodeCmd creates the encode subcommand.
func newEncodeCmd() *cobra.Command {
	var (
		font   string
		size   float64
		fg     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Convert a plain text file to RTF",
		Long: `Convert a plain text file to RTF with one document-wide style.
Style flags default to the [style] section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			style := rtf.Style{
				FontFamily: cfg.Style.FontFamily,
				FontSize:   cfg.Style.FontSize,
				FontColor:  cfg.Style.FontColor,
			}
			flags := cmd.Flags()
			if flags.Changed("font") {
				style.FontFamily = font
			}
			if flags.Changed("size") {
				style.FontSize = size
			}
			if flags.Changed("color") {
				style.FontColor = fg
			}

			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}

			style = style.WithDefaults()
			if output == "" || output == "-" {
				return rtf.EncodeWriter(cmd.OutOrStdout(), text, style)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := rtf.EncodeWriter(f, text, style); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&font, "font", rtf.DefaultFontFamily, "font family")
	cmd.Flags().Float64Var(&size, "size", rtf.DefaultFontSize, "font size in pixels")
	cmd.Flags().StringVar(&fg, "color", rtf.DefaultFontColor, "font colour as #rrggbb")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}

// readText reads path, or standard input for "-", and decodes it to a string.
func readText(cmd *cobra.Command, path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	enc := document.DetectEncoding(raw)
	if enc != document.EncodingUTF16LE && enc != document.EncodingUTF16BE && document.IsBinary(raw) {
		return "", fmt.Errorf("%s: %w", path, document.ErrBinaryFile)
	}
	text, _ := document.DecodeText(raw)
	return text, nil
}
