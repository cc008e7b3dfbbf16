package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/slashdevops/browserid"
	"github.com/slashdevops/browserid/internal/simhost"
	"github.com/slashdevops/browserid/internal/version"
)

const applicationName = "browserid"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	// Host options
	profilePath := flag.String("profile", "", "YAML host profile to simulate (default: built-in desktop browser)")

	// Actions
	validate := flag.String("validate", "", "Validate a fingerprint hash against the simulated host")
	diagnostics := flag.Bool("diagnostics", false, "Show diagnostic information about collected signals")
	jsonOutput := flag.Bool("json", false, "Output the full fingerprint record as JSON")
	canvasOut := flag.String("canvas", "", "Write the rendered canvas fingerprint to a PNG file")
	verbose := flag.Bool("v", false, "Log collection details to stderr")

	// Info flags
	versionFlag := flag.Bool("version", false, "Show version information")
	versionLongFlag := flag.Bool("version.long", false, "Show detailed version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "browserid - Fingerprint a simulated browser host\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  browserid [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  browserid                                     Hash of the built-in profile\n")
		fmt.Fprintf(os.Stderr, "  browserid -profile host.yaml -json            Full record as JSON\n")
		fmt.Fprintf(os.Stderr, "  browserid -profile host.yaml -diagnostics     Show defaulted signals\n")
		fmt.Fprintf(os.Stderr, "  browserid -profile host.yaml -validate <hash> Validate a stored hash\n")
		fmt.Fprintf(os.Stderr, "  browserid -canvas canvas.png                  Save the canvas raster\n")
		fmt.Fprintf(os.Stderr, "  browserid -version                            Show version\n")
		fmt.Fprintf(os.Stderr, "  browserid -version.long                       Show detailed version\n")
	}

	flag.Parse()

	// Handle version flag
	if *versionFlag {
		fmt.Printf("%s version: %s\n", applicationName, moduleVersion())
		os.Exit(0)
	}

	// Handle detailed version flag
	if *versionLongFlag {
		fmt.Print(longVersion())
		os.Exit(0)
	}

	profile := simhost.DefaultProfile()
	if *profilePath != "" {
		p, err := simhost.LoadProfile(*profilePath)
		if err != nil {
			slog.Error("failed to load profile", "path", *profilePath, "error", err)
			os.Exit(1)
		}
		profile = p
	}

	host, err := simhost.New(profile)
	if err != nil {
		slog.Error("invalid profile", "error", err)
		os.Exit(1)
	}

	session := browserid.New().WithHost(host)
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		session.WithLogger(logger)
		host.WithLogger(logger)
	}

	// Validate mode
	if *validate != "" {
		handleValidate(session, *validate, *jsonOutput)
		return
	}

	record, err := session.Collect()
	if err != nil {
		slog.Error("failed to collect fingerprint", "error", err)
		os.Exit(1)
	}

	var canvasSize int
	if *canvasOut != "" {
		canvasSize = writeCanvas(host, *canvasOut)
	}

	// Output
	if *jsonOutput {
		if !*diagnostics {
			printJSON(record)
			return
		}
		printJSON(map[string]any{
			"fingerprint": record,
			"diagnostics": formatDiagnostics(session),
		})
		return
	}

	fmt.Println(record.FingerprintHash)

	if *diagnostics {
		printDiagnostics(session, record)
	}
	if *canvasOut != "" {
		fmt.Fprintf(os.Stderr, "canvas: %s written to %s\n", humanize.Bytes(uint64(canvasSize)), *canvasOut)
	}
}

func moduleVersion() string {
	if version.Version == "0.0.0" {
		if info, ok := debug.ReadBuildInfo(); ok {
			return info.Main.Version
		}
	}

	return version.Version
}

func longVersion() string {
	var sb strings.Builder

	if version.Version == "0.0.0" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(&sb, "%s version: %s, ", applicationName, info.Main.Version)
			fmt.Fprintf(&sb, "Git commit: %s, ", info.Main.Sum)
			fmt.Fprintf(&sb, "Go version: %s\n", info.GoVersion)

			return sb.String()
		}
	}

	fmt.Fprintf(&sb, "%s version: %s, ", applicationName, version.Version)
	fmt.Fprintf(&sb, "Build date: %s, ", version.BuildDate)
	fmt.Fprintf(&sb, "Build user: %s, ", version.BuildUser)
	fmt.Fprintf(&sb, "Git commit: %s, ", version.GitCommit)
	fmt.Fprintf(&sb, "Git branch: %s, ", version.GitBranch)
	fmt.Fprintf(&sb, "Go version: %s\n", version.GoVersion)

	return sb.String()
}

func handleValidate(session *browserid.Session, expected string, jsonOut bool) {
	valid, err := session.Validate(expected)
	if err != nil {
		slog.Error("validation failed", "error", err)
		os.Exit(1)
	}

	if jsonOut {
		printJSON(map[string]any{
			"valid":        valid,
			"expectedHash": expected,
		})
		if !valid {
			os.Exit(1)
		}
		return
	}

	if valid {
		fmt.Println("valid: fingerprint hash matches")
	} else {
		fmt.Println("invalid: fingerprint hash does not match")
		os.Exit(1)
	}
}

// writeCanvas renders the canvas program with the host's fonts and saves it.
func writeCanvas(host *simhost.Host, path string) int {
	data, err := host.RenderPNG(browserid.CanvasWidth, browserid.CanvasHeight, browserid.DrawFingerprintProgram)
	if err != nil {
		slog.Error("failed to render canvas", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("failed to write canvas", "path", path, "error", err)
		os.Exit(1)
	}

	return len(data)
}

func printDiagnostics(session *browserid.Session, record *browserid.Fingerprint) {
	diag := session.Diagnostics()
	if diag == nil {
		fmt.Fprintln(os.Stderr, "no diagnostic information available")
		return
	}

	fmt.Fprintln(os.Stderr, "\nDiagnostics:")
	fmt.Fprintf(os.Stderr, "  Hashed fields: %s\n", strings.Join(browserid.HashedFields(), ", "))
	fmt.Fprintf(os.Stderr, "  Canvas: %s\n", record.CanvasFingerprint)
	fmt.Fprintf(os.Stderr, "  WebGL: %s / %s (%s extensions)\n",
		record.WebGLVendor, record.WebGLRenderer, humanize.Comma(int64(len(record.WebGLExtensions))))
	if len(diag.Collected) > 0 {
		fmt.Fprintf(os.Stderr, "  Collected: %s\n", strings.Join(diag.Collected, ", "))
	}
	if len(diag.Defaulted) > 0 {
		fmt.Fprintln(os.Stderr, "  Defaulted:")
		for _, signal := range sortedKeys(diag.Defaulted) {
			fmt.Fprintf(os.Stderr, "    %s: %v\n", signal, diag.Defaulted[signal])
		}
	}
}

func formatDiagnostics(session *browserid.Session) map[string]any {
	diag := session.Diagnostics()
	if diag == nil {
		return nil
	}

	result := map[string]any{
		"collected":     diag.Collected,
		"hashed_fields": browserid.HashedFields(),
	}

	if len(diag.Defaulted) > 0 {
		defaulted := make(map[string]string, len(diag.Defaulted))
		for signal, err := range diag.Defaulted {
			defaulted[signal] = err.Error()
		}
		result["defaulted"] = defaulted
	}

	return result
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("failed to encode JSON", "error", err)
		os.Exit(1)
	}
}
