package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whatcheers/racklinkctl/internal/escape"
	"github.com/whatcheers/racklinkctl/internal/hexfmt"
	"github.com/whatcheers/racklinkctl/internal/logging"
	"github.com/whatcheers/racklinkctl/internal/protocol"
	"github.com/whatcheers/racklinkctl/internal/simulator"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verboseFlag bool
	namesFlag   string
)

var (
	logger   *zap.Logger
	registry *protocol.Registry
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "racklinkctl",
		Short: "Inspect and craft RackLink PDU protocol frames",
		Long: `racklinkctl is a tool for working with the Middle Atlantic RackLink
PDU control protocol (I-00472 series).

It encodes command envelopes into wire frames, decodes captured or
hand-crafted byte sequences into a field-by-field breakdown, and can
simulate device responses without hardware on the wire.

Frames are given as hex text; any non-hex characters are ignored:

  racklinkctl decode "FE 03 00 21 02 24 FF"`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&namesFlag, "names", "", "YAML file extending the command name tables")

	decodeCmd := &cobra.Command{
		Use:   "decode <hex bytes...>",
		Short: "Break a frame down field by field",
		Long: `Decode an arbitrary byte sequence into a labeled breakdown.

Decoding is best-effort and never rejects input: invalid header, checksum
or tail bytes are flagged on their field and the rest is still shown, so
the command works as an inspection aid for malformed traffic too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDecode,
	}

	encodeCmd := &cobra.Command{
		Use:   "encode <hex envelope bytes...>",
		Short: "Build a wire frame from a data envelope",
		Long: `Build a complete frame from envelope bytes
(destination, command, subcommand, parameters).

Example, outlet name GET for outlet 1:

  racklinkctl encode "00 21 02 01"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEncode,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate <hex frame bytes...>",
		Short: "Run a request frame against the device simulator",
		Long: `Decode a request frame, apply the stock device policy and print the
response frame the simulated device would send. Commands outside the
simulated set produce no response.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSimulate,
	}

	commandsCmd := &cobra.Command{
		Use:   "commands",
		Short: "List known command and subcommand codes",
		RunE:  runCommands,
	}

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Exercise the codec and simulator",
		Long: `Round-trip every byte value through the escaper and the frame codec,
verify the documented example frames and run the simulator response
table. Exits non-zero if any check fails.`,
		RunE: runSelftest,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("racklinkctl %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}

	rootCmd.AddCommand(decodeCmd, encodeCmd, simulateCmd, commandsCmd, selftestCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = logging.New(verboseFlag)
	if err != nil {
		return err
	}

	registry = protocol.NewRegistry()
	if namesFlag != "" {
		registry, err = protocol.LoadNames(namesFlag)
		if err != nil {
			return err
		}
		logger.Debug("loaded name tables", zap.String("file", namesFlag))
	}
	return nil
}

func parseHexArgs(args []string) []byte {
	return hexfmt.Parse(strings.Join(args, " "))
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw := parseHexArgs(args)
	logger.Debug("decoding frame",
		zap.Int("length", len(raw)),
		zap.String("bytes", hexfmt.Format(raw)))

	fields := protocol.NewDecoder(registry).Decode(raw)
	if len(fields) == 0 {
		fmt.Printf("Insufficient data: %d byte(s), a frame needs at least %d\n",
			len(raw), protocol.MinFrameLen)
		return nil
	}

	printBreakdown(fields)
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	envelope := parseHexArgs(args)
	if len(envelope) == 0 {
		return fmt.Errorf("no envelope bytes in input")
	}
	if len(envelope) > protocol.MaxEnvelopeLen {
		return fmt.Errorf("envelope is %d bytes, the length byte allows at most %d",
			len(envelope), protocol.MaxEnvelopeLen)
	}

	frame := protocol.BuildFrame(envelope)
	logger.Debug("built frame",
		zap.Int("envelope_length", len(envelope)),
		zap.String("frame", hexfmt.Format(frame)))

	fmt.Printf("Envelope: %s\n", hexfmt.Format(envelope))
	fmt.Printf("Frame:    %s\n", hexfmt.Format(frame))
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	request := parseHexArgs(args)
	logger.Debug("simulating request", zap.String("frame", hexfmt.Format(request)))

	response := simulator.New(nil).Respond(request)
	if response == nil {
		fmt.Println("No response (command not simulated or request malformed)")
		return nil
	}

	fmt.Printf("Response: %s\n\n", hexfmt.Format(response))
	printBreakdown(protocol.NewDecoder(registry).Decode(response))
	return nil
}

func runCommands(cmd *cobra.Command, args []string) error {
	fmt.Println("Command codes:")
	for code := 0; code < 256; code++ {
		name := registry.CommandName(byte(code))
		if name != "Unknown Command" {
			fmt.Printf("  0x%02X  %s\n", code, name)
		}
	}

	fmt.Println("\nSubcommand codes:")
	for code := 0; code < 256; code++ {
		name := registry.SubcommandName(byte(code))
		if name != "Param/Data" {
			fmt.Printf("  0x%02X  %s\n", code, name)
		}
	}
	return nil
}

func printBreakdown(fields []protocol.Field) {
	for _, f := range fields {
		fmt.Printf("%-14s %-18s %s\n", f.Label, hexfmt.Format(f.Bytes), f.Desc)
	}
}

func runSelftest(cmd *cobra.Command, args []string) error {
	failures := 0

	bar := progressbar.NewOptions(256,
		progressbar.OptionSetDescription("Round-tripping byte values"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for v := 0; v < 256; v++ {
		b := byte(v)

		// Escaper idempotence
		if out := escape.Unescape(escape.Escape([]byte{b})); !bytes.Equal(out, []byte{b}) {
			fmt.Printf("\nFAIL: escape round trip for 0x%02X gave % X\n", b, out)
			failures++
		}

		// Full frame round trip
		envelope := []byte{0x00, b, protocol.SubGet, b}
		got, ok := protocol.ParseEnvelope(protocol.BuildFrame(envelope))
		if !ok || !bytes.Equal(got, envelope) {
			fmt.Printf("\nFAIL: frame round trip for 0x%02X gave % X\n", b, got)
			failures++
		}

		bar.Add(1)
	}
	bar.Finish()

	// Documented example frames
	examples := []struct {
		envelope []byte
		frame    []byte
	}{
		{[]byte{0x00, 0x21, 0x02}, []byte{0xFE, 0x03, 0x00, 0x21, 0x02, 0x24, 0xFF}},
		{[]byte{0x00, 0x20, 0x02, 0x01}, []byte{0xFE, 0x04, 0x00, 0x20, 0x02, 0x01, 0x25, 0xFF}},
	}
	for _, ex := range examples {
		if frame := protocol.BuildFrame(ex.envelope); !bytes.Equal(frame, ex.frame) {
			fmt.Printf("FAIL: BuildFrame(% X) = % X, want % X\n", ex.envelope, frame, ex.frame)
			failures++
		}
	}

	// Simulator response table
	sim := simulator.New(nil)
	ping := protocol.BuildFrame(protocol.NewEnvelope(0x00, protocol.CmdPing, protocol.SubGet))
	if resp := sim.Respond(ping); resp == nil {
		fmt.Println("FAIL: simulator did not answer ping")
		failures++
	}
	unknown := protocol.BuildFrame(protocol.NewEnvelope(0x00, 0x99, protocol.SubGet))
	if resp := sim.Respond(unknown); resp != nil {
		fmt.Printf("FAIL: simulator answered unknown command: % X\n", resp)
		failures++
	}

	if failures > 0 {
		return fmt.Errorf("selftest: %d check(s) failed", failures)
	}
	fmt.Println("Selftest passed")
	return nil
}
