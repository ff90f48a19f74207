package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/live-labs/shed/cmd"
	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/randtext"
	"github.com/live-labs/shed/internal/transcode"
)

// multiFlag collects a repeatable string flag
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encrypt":
		runEncrypt(ctx, os.Args[2:])
	case "decrypt":
		runDecrypt(ctx, os.Args[2:])
	case "randstr":
		runRandstr(ctx, os.Args[2:])
	case "eol":
		runEol(ctx, os.Args[2:])
	case "port":
		runPort(ctx, os.Args[2:])
	case "tcp":
		runTcp(ctx, os.Args[2:])
	case "transcode":
		runTranscode(ctx, os.Args[2:])
	case "prune":
		runPrune(ctx, os.Args[2:])
	case "history":
		runHistory(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "elevated":
		runElevated(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runEncrypt(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	output := fs.String("output", "", "Output file or directory")
	fs.StringVar(output, "o", "", "Output file or directory")
	recurse := fs.Bool("recurse", false, "Process directories recursively")
	fs.BoolVar(recurse, "R", false, "Process directories recursively")
	force := fs.Bool("force", false, "Overwrite existing outputs")
	removeShort := fs.Bool("r", false, "Remove original files after encrypting")
	removeLong := fs.Bool("remove", false, "Remove original files after encrypting")
	dryRun := fs.Bool("dry-run", false, "Report planned actions without touching files")
	keyringProfile := fs.String("keyring", "", "Read the passphrase from this keyring profile")
	noJournal := fs.Bool("no-journal", false, "Skip journaling this run")
	var include, exclude multiFlag
	fs.Var(&include, "include", "Only process files whose name matches this glob (repeatable)")
	fs.Var(&exclude, "exclude", "Skip files whose name matches this glob (repeatable)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: shed encrypt [flags] <path> [path...]")
		os.Exit(1)
	}

	opts := core.Options{
		Output:       *output,
		Recurse:      *recurse,
		Force:        *force,
		RemoveSource: *removeShort || *removeLong,
		DryRun:       *dryRun,
		Include:      include,
		Exclude:      exclude,
	}
	cmd.Encrypt(ctx, opts, fs.Args(), *keyringProfile, *noJournal)
}

func runDecrypt(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	output := fs.String("output", "", "Output file or directory")
	fs.StringVar(output, "o", "", "Output file or directory")
	recurse := fs.Bool("recurse", false, "Process directories recursively")
	fs.BoolVar(recurse, "R", false, "Process directories recursively")
	force := fs.Bool("force", false, "Overwrite existing outputs")
	keep := fs.Bool("keep", false, "Keep the encrypted source after decrypting")
	dryRun := fs.Bool("dry-run", false, "Report planned actions without touching files")
	keyringProfile := fs.String("keyring", "", "Read the passphrase from this keyring profile")
	noJournal := fs.Bool("no-journal", false, "Skip journaling this run")
	var include, exclude multiFlag
	fs.Var(&include, "include", "Only process files whose name matches this glob (repeatable)")
	fs.Var(&exclude, "exclude", "Skip files whose name matches this glob (repeatable)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: shed decrypt [flags] <path> [path...]")
		os.Exit(1)
	}

	opts := core.Options{
		Output:       *output,
		Recurse:      *recurse,
		Force:        *force,
		RemoveSource: !*keep,
		DryRun:       *dryRun,
		Include:      include,
		Exclude:      exclude,
	}
	cmd.Decrypt(ctx, opts, fs.Args(), *keyringProfile, *noJournal)
}

func runRandstr(_ context.Context, args []string) {
	fs := flag.NewFlagSet("randstr", flag.ExitOnError)
	length := fs.Int("n", 16, "String length")
	count := fs.Int("count", 1, "How many strings to generate")
	fs.IntVar(count, "c", 1, "How many strings to generate")
	noLower := fs.Bool("no-lower", false, "Exclude lowercase letters")
	noUpper := fs.Bool("no-upper", false, "Exclude uppercase letters")
	noDigits := fs.Bool("no-digits", false, "Exclude digits")
	noSymbols := fs.Bool("no-symbols", false, "Exclude symbols")
	exclude := fs.String("exclude", "", "Individual characters to exclude")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	opts := randtext.Options{
		NoLower:   *noLower,
		NoUpper:   *noUpper,
		NoDigits:  *noDigits,
		NoSymbols: *noSymbols,
		Exclude:   *exclude,
	}
	cmd.Randstr(*length, *count, opts)
}

func runEol(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("eol", flag.ExitOnError)
	to := fs.String("to", "lf", "Target line ending style (lf or crlf)")
	recurse := fs.Bool("recurse", false, "Process directories recursively")
	fs.BoolVar(recurse, "R", false, "Process directories recursively")
	dryRun := fs.Bool("dry-run", false, "Report planned conversions without writing")
	showDiff := fs.Bool("diff", false, "Print a unified diff of each conversion")
	noJournal := fs.Bool("no-journal", false, "Skip journaling this run")
	var include, exclude multiFlag
	fs.Var(&include, "include", "Only process files whose name matches this glob (repeatable)")
	fs.Var(&exclude, "exclude", "Skip files whose name matches this glob (repeatable)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: shed eol [flags] <path> [path...]")
		os.Exit(1)
	}

	opts := cmd.EolOptions{
		To:        *to,
		Recurse:   *recurse,
		DryRun:    *dryRun,
		ShowDiff:  *showDiff,
		Include:   include,
		Exclude:   exclude,
		NoJournal: *noJournal,
	}
	cmd.Eol(ctx, opts, fs.Args())
}

func runPort(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("port", flag.ExitOnError)
	udp := fs.Bool("udp", false, "Probe UDP instead of TCP")
	timeout := fs.Duration("timeout", 5*time.Second, "Probe timeout")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: shed port [flags] <host> <port> [port...]")
		os.Exit(1)
	}

	host := fs.Args()[0]
	var ports []int
	for _, arg := range fs.Args()[1:] {
		port, err := strconv.Atoi(arg)
		if err != nil || port < 1 || port > 65535 {
			fmt.Fprintf(os.Stderr, "Error: invalid port %q\n", arg)
			os.Exit(1)
		}
		ports = append(ports, port)
	}
	cmd.Port(ctx, host, ports, *udp, *timeout)
}

func runTcp(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("tcp", flag.ExitOnError)
	crlf := fs.Bool("crlf", false, "Append CRLF to the payload")
	timeout := fs.Duration("timeout", 5*time.Second, "Connection and read timeout")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shed tcp [flags] <host:port> [payload]")
		os.Exit(1)
	}

	payload := ""
	if len(fs.Args()) > 1 {
		payload = strings.Join(fs.Args()[1:], " ")
	}
	cmd.Tcp(ctx, fs.Args()[0], payload, *crlf, *timeout)
}

func runTranscode(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("transcode", flag.ExitOnError)
	preset := fs.String("preset", "h264", "Encoding preset: "+strings.Join(transcode.PresetNames(), ", "))
	crf := fs.Int("crf", 0, "Quality (constant rate factor), 0 uses the preset default")
	scale := fs.String("scale", "", "Scale filter, e.g. 1280:-2")
	audioCopy := fs.Bool("audio-copy", false, "Copy the audio stream instead of re-encoding")
	output := fs.String("output", "", "Output file (single input only)")
	fs.StringVar(output, "o", "", "Output file (single input only)")
	force := fs.Bool("force", false, "Overwrite existing outputs")
	dryRun := fs.Bool("dry-run", false, "Print the encoder command without running it")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: shed transcode [flags] <file> [file...]")
		os.Exit(1)
	}
	if *output != "" && len(fs.Args()) > 1 {
		fmt.Fprintln(os.Stderr, "Error: --output requires a single input file")
		os.Exit(1)
	}

	opts := transcode.Options{
		Preset:    *preset,
		CRF:       *crf,
		Scale:     *scale,
		AudioCopy: *audioCopy,
		Output:    *output,
		Force:     *force,
		DryRun:    *dryRun,
	}
	cmd.Transcode(ctx, opts, fs.Args())
}

func runPrune(_ context.Context, args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "List removals without deleting anything")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: shed prune [--dry-run] <root>")
		os.Exit(1)
	}
	cmd.Prune(fs.Args()[0], *dryRun)
}

func runHistory(_ context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "How many runs to show (0 shows all)")
	keep := fs.Int("prune", -1, "Prune the journal down to this many runs")
	verbose := fs.Bool("v", false, "Show per-file entries")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.History(*limit, *keep, *verbose)
}

func runKeyring(_ context.Context, args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: shed keyring <save|delete|check> <profile>")
		os.Exit(1)
	}
	cmd.Keyring(fs.Args()[0], fs.Args()[1])
}

func runElevated(_ context.Context, args []string) {
	fs := flag.NewFlagSet("elevated", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Elevated()
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shed completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("shed - a small toolkit for files and shells")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  shed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  encrypt     Encrypt files with a passphrase")
	fmt.Println("  decrypt     Decrypt previously encrypted files")
	fmt.Println("  randstr     Generate random strings")
	fmt.Println("  eol         Convert line endings between LF and CRLF")
	fmt.Println("  port        Test TCP/UDP port reachability")
	fmt.Println("  tcp         Send a raw TCP request and print the response")
	fmt.Println("  transcode   Re-encode video files with ffmpeg")
	fmt.Println("  prune       Remove outdated versioned directories")
	fmt.Println("  history     Show past encrypt/decrypt runs")
	fmt.Println("  keyring     Manage passphrases in the OS keyring")
	fmt.Println("  elevated    Check for administrative privileges")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  shed encrypt secrets.txt -r        # Encrypt and remove the original")
	fmt.Println("  shed decrypt secrets.txt.enc       # Decrypt back")
	fmt.Println("  shed randstr -n 24 --no-symbols    # 24-character password")
	fmt.Println("  shed eol --to lf -R src/           # Normalize line endings")
	fmt.Println()
	fmt.Println("Use 'shed help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "encrypt":
		fmt.Println("shed encrypt [flags] <path> [path...]")
		fmt.Println()
		fmt.Println("Encrypts each file with AES-256-CBC under a key derived from a")
		fmt.Println("passphrase (PBKDF2, 100,000 iterations). Each output is")
		fmt.Println("<input>.enc next to the input unless --output is given.")
		fmt.Println("Directories are processed file by file; one file's failure does")
		fmt.Println("not stop the rest.")
		fmt.Println()
		fmt.Println("The passphrase comes from SHED_PASSWORD, a keyring profile")
		fmt.Println("(--keyring), or an interactive prompt with confirmation.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o, --output     Output file or directory")
		fmt.Println("  -R, --recurse    Descend into subdirectories")
		fmt.Println("  -r, --remove     Remove originals after successful encryption")
		fmt.Println("  --force          Overwrite existing outputs instead of skipping")
		fmt.Println("  --dry-run        Report planned actions without touching files")
		fmt.Println("  --include GLOB   Only process matching file names (repeatable)")
		fmt.Println("  --exclude GLOB   Skip matching file names (repeatable)")
		fmt.Println("  --keyring NAME   Use the passphrase stored under this profile")
		fmt.Println("  --no-journal     Do not record this run in the history journal")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  shed encrypt .env")
		fmt.Println("  shed encrypt -R --include '*.key' certs/")
		fmt.Println("  shed encrypt -r -o /mnt/backup secrets.txt")
	case "decrypt":
		fmt.Println("shed decrypt [flags] <path> [path...]")
		fmt.Println()
		fmt.Println("Decrypts files produced by 'shed encrypt'. A trailing .enc is")
		fmt.Println("stripped from the output name; otherwise .dec is appended.")
		fmt.Println("The encrypted source is removed after success unless --keep is")
		fmt.Println("set. A wrong passphrase or corrupted file fails that file only,")
		fmt.Println("and no partial output is ever left behind.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o, --output     Output file or directory")
		fmt.Println("  -R, --recurse    Descend into subdirectories")
		fmt.Println("  --keep           Keep the encrypted source after decrypting")
		fmt.Println("  --force          Overwrite existing outputs instead of skipping")
		fmt.Println("  --dry-run        Report planned actions without touching files")
		fmt.Println("  --include GLOB   Only process matching file names (repeatable)")
		fmt.Println("  --exclude GLOB   Skip matching file names (repeatable)")
		fmt.Println("  --keyring NAME   Use the passphrase stored under this profile")
		fmt.Println("  --no-journal     Do not record this run in the history journal")
	case "randstr":
		fmt.Println("shed randstr [flags]")
		fmt.Println()
		fmt.Println("Generates random strings from lowercase, uppercase, digit and")
		fmt.Println("symbol classes using cryptographic randomness.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -n N             String length (default 16)")
		fmt.Println("  -c, --count N    How many strings to print (default 1)")
		fmt.Println("  --no-lower, --no-upper, --no-digits, --no-symbols")
		fmt.Println("  --exclude CHARS  Drop these characters from the charset")
		fmt.Println()
		fmt.Println("Excluding every character is an error.")
	case "eol":
		fmt.Println("shed eol [flags] <path> [path...]")
		fmt.Println()
		fmt.Println("Rewrites text files to LF or CRLF line endings. Binary files")
		fmt.Println("are detected and skipped. Lone carriage returns are treated as")
		fmt.Println("line breaks and normalized too.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --to STYLE       lf or crlf (default lf)")
		fmt.Println("  -R, --recurse    Descend into subdirectories")
		fmt.Println("  --dry-run        Report planned conversions without writing")
		fmt.Println("  --diff           Print a unified diff of each conversion")
		fmt.Println("  --include GLOB   Only process matching file names (repeatable)")
		fmt.Println("  --exclude GLOB   Skip matching file names (repeatable)")
	case "port":
		fmt.Println("shed port [flags] <host> <port> [port...]")
		fmt.Println()
		fmt.Println("Tests whether ports accept connections. TCP reports open on a")
		fmt.Println("completed handshake. UDP sends a probe datagram; silence counts")
		fmt.Println("as open since an unanswered probe proves nothing.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --udp            Probe UDP instead of TCP")
		fmt.Println("  --timeout D      Probe timeout (default 5s)")
		fmt.Println()
		fmt.Println("Exits non-zero if any probed port is unreachable.")
	case "tcp":
		fmt.Println("shed tcp [flags] <host:port> [payload]")
		fmt.Println()
		fmt.Println("Connects, writes the payload, and prints everything the peer")
		fmt.Println("sends until it closes the connection or the timeout expires.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --crlf           Append CRLF to the payload")
		fmt.Println("  --timeout D      Connection and read timeout (default 5s)")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  shed tcp --crlf example.com:80 'HEAD / HTTP/1.0'")
	case "transcode":
		fmt.Println("shed transcode [flags] <file> [file...]")
		fmt.Println()
		fmt.Println("Re-encodes video files by driving ffmpeg with a preset. The")
		fmt.Println("output keeps the input's base name with the preset's container")
		fmt.Println("extension. Existing outputs are skipped unless --force is set.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --preset NAME    " + strings.Join(transcode.PresetNames(), ", ") + " (default h264)")
		fmt.Println("  --crf N          Quality override (lower is better)")
		fmt.Println("  --scale W:H      Scale filter, e.g. 1280:-2")
		fmt.Println("  --audio-copy     Copy audio instead of re-encoding")
		fmt.Println("  -o, --output     Output file (single input only)")
		fmt.Println("  --force          Overwrite existing outputs")
		fmt.Println("  --dry-run        Print the encoder command without running it")
	case "prune":
		fmt.Println("shed prune [--dry-run] <root>")
		fmt.Println()
		fmt.Println("Treats <root> as a tree of <name>/<version>/ directories and")
		fmt.Println("removes every version but the highest per name. Only dotted-")
		fmt.Println("numeric directory names (like 2.4.1) count as versions.")
	case "history":
		fmt.Println("shed history [flags]")
		fmt.Println()
		fmt.Println("Shows the journal of past encrypt, decrypt and eol runs,")
		fmt.Println("newest first. The journal lives at ~/.shed.db and stores only")
		fmt.Println("paths and outcomes, never passphrases or content.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -n N             How many runs to show (default 20, 0 = all)")
		fmt.Println("  -v               Show per-file entries")
		fmt.Println("  --prune N        Keep only the newest N runs and compact")
	case "keyring":
		fmt.Println("shed keyring <save|delete|check> <profile>")
		fmt.Println()
		fmt.Println("Stores a passphrase in the operating system keyring under a")
		fmt.Println("profile name, for use with encrypt/decrypt --keyring.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  shed keyring save backups")
		fmt.Println("  shed encrypt --keyring backups -R ~/documents")
	case "elevated":
		fmt.Println("shed elevated")
		fmt.Println()
		fmt.Println("Prints whether the process has administrative privileges and")
		fmt.Println("exits 0 when elevated, 1 otherwise.")
	case "completion":
		fmt.Println("shed completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(shed completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(shed completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  shed completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
