package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/opbatch/internal/config"
	"github.com/rogersnm/opbatch/internal/logging"
	"github.com/rogersnm/opbatch/internal/repofile"
	"github.com/rogersnm/opbatch/internal/store"
	"github.com/rogersnm/opbatch/internal/validate"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	dataDir   string
	batchFile string
	verbosity int
	cfg       *config.Config
	now       = time.Now
)

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".opbatch.d")
	}
	return filepath.Join(dir, "opbatch")
}

var rootCmd = &cobra.Command{
	Use:     "opbatch",
	Short:   "Build, validate and share batches of slide-editing operations",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetupLogger(verbosity)

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().StringVarP(&batchFile, "file", "f", "", "batch file (overrides the linked and default batch)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"new": {
				Examples: []mtp.Example{
					{Description: "Start an empty batch", Command: "opbatch new deck.md"},
				},
			},
			"add": {
				Stdin: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "One operation object or an array of operation objects",
				},
				Examples: []mtp.Example{
					{Description: "Append a shape", Command: `echo '{"createShape":{"objectId":"box_1","shapeType":"RECTANGLE","elementProperties":{"pageObjectId":"slide_1"}}}' | opbatch add deck.md`},
				},
			},
			"update": {
				Stdin: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "The replacement operation object",
				},
				Examples: []mtp.Example{
					{Description: "Replace the second operation", Command: `echo '{"deleteObject":{"objectId":"box_1"}}' | opbatch update 2 deck.md`},
				},
			},
			"remove": {
				Examples: []mtp.Example{
					{Description: "Remove the third operation", Command: "opbatch remove 3 deck.md"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of operations with index, kind, description and validation status",
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "The batch as markdown, rendered for the terminal unless --raw is given",
				},
				Examples: []mtp.Example{
					{Description: "Print the shareable markdown", Command: "opbatch show deck.md --raw"},
					{Description: "Show one operation", Command: "opbatch show deck.md --op 2"},
				},
			},
			"validate": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Validation report; a JSON report with --json. Exits non-zero when invalid",
				},
				Examples: []mtp.Example{
					{Description: "Validate the linked batch", Command: "opbatch validate"},
					{Description: "Machine-readable report", Command: "opbatch validate deck.md --json"},
				},
			},
			"import": {
				Examples: []mtp.Example{
					{Description: "Replace the batch with operations from JSON", Command: "opbatch import requests.json deck.md"},
					{Description: "Append operations from another batch", Command: "opbatch import other.md deck.md --append"},
				},
			},
			"export": {
				Stdout: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "The operations as a JSON array (or markdown with --format markdown)",
				},
				Examples: []mtp.Example{
					{Description: "Export requests for the document API", Command: "opbatch export deck.md > requests.json"},
				},
			},
			"select": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "The operation that creates or edits the object, highlighted in the operation table",
				},
			},
			"graph": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "ASCII tree of which operations use objects created by others",
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Matching operations with index, kind, description and snippet",
				},
				Examples: []mtp.Example{
					{Description: "Find operations touching an object", Command: "opbatch search box_1 deck.md"},
				},
			},
			"clear": {
				Examples: []mtp.Example{
					{Description: "Empty a batch (interactive confirm)", Command: "opbatch clear deck.md"},
					{Description: "Empty a batch (skip confirm)", Command: "opbatch clear deck.md --force"},
				},
			},
			"convert": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "The converted value",
				},
				Examples: []mtp.Example{
					{Description: "Points to EMU", Command: "opbatch convert 12 --from pt --to emu"},
					{Description: "Pixels at 144 dpi to points", Command: "opbatch convert 300 --from px --to pt --dpi 144"},
				},
			},
			"newid": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "A fresh object ID such as slide_K7Q2M",
				},
				Examples: []mtp.Example{
					{Description: "ID for a new slide", Command: "opbatch newid slide"},
				},
			},
			"link": {
				Examples: []mtp.Example{
					{Description: "Make deck.md the default batch below this directory", Command: "opbatch link deck.md"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveBatch picks the batch file from the positional arg at pos, --file,
// the repo-local .opbatch link, or the configured default.
func resolveBatch(args []string, pos int) (string, error) {
	if len(args) > pos && args[pos] != "" {
		return args[pos], nil
	}
	if batchFile != "" {
		return batchFile, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		if p, _, _ := repofile.Find(cwd); p != "" {
			return p, nil
		}
	}
	if cfg != nil && cfg.DefaultBatch != "" {
		return cfg.DefaultBatch, nil
	}
	return "", fmt.Errorf("no batch file given (pass a path, use --file, link one with: opbatch link <file>, or set a default with: opbatch config set-default <file>)")
}

func loadBatch(args []string, pos int) (string, *store.Session, error) {
	path, err := resolveBatch(args, pos)
	if err != nil {
		return "", nil, err
	}
	s, err := store.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, s, nil
}

func saveBatch(path string, s store.Store) error {
	return store.Save(path, s, now())
}

func validator() *validate.Validator {
	return validate.New(cfg.ValidatorOptions())
}

// readInput reads piped stdin. A terminal on stdin is an error rather than a
// silent wait.
func readInput(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("expected operation JSON on stdin")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}
