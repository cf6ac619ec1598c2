// Package cli implements zsynth's command-line subcommands.
package cli

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/zsynth/internal/config"
	"github.com/zarlcorp/zsynth/internal/hierarchy"
	"github.com/zarlcorp/zsynth/internal/record"
	"github.com/zarlcorp/zsynth/internal/store"
	"golang.org/x/term"
)

// ErrUsage is returned when a command is invoked with bad arguments.
var ErrUsage = errors.New("usage")

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenStore prompts for a password and opens the batch store in dir.
func OpenStore(dir string) (*store.Store, error) {
	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, err
	}
	return store.Open(dir, pass)
}

// RandomSeed returns a seed drawn from the system CSPRNG.
func RandomSeed() (uint64, error) {
	b, err := zcrypto.RandBytes(8)
	if err != nil {
		return 0, fmt.Errorf("random seed: %w", err)
	}
	return binary.BigEndian.Uint64(b), nil
}

// Batches is the subset of the batch store the commands use.
type Batches interface {
	Save(b store.Batch) error
	Get(id string) (store.Batch, error)
	List() ([]store.Batch, error)
	Delete(id string) error
	Close()
}

// Env carries what every command needs.
type Env struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer
	// Open opens the store; tests replace it to skip the password prompt.
	Open func(dir string) (Batches, error)
}

// NewEnv returns an Env writing to stdout/stderr and prompting for the
// store password on the terminal.
func NewEnv(cfg config.Config) Env {
	return Env{
		Config: cfg,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Open: func(dir string) (Batches, error) {
			s, err := OpenStore(dir)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}
}

// SplitGlobal strips the flags that may precede the subcommand. --debug is
// the only one.
func SplitGlobal(args []string) (debug bool, rest []string) {
	for len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "--debug", "-debug":
			debug = true
			args = args[1:]
		default:
			return debug, args
		}
	}
	return debug, args
}

// generateOptions are the parsed flags of the generate command.
type generateOptions struct {
	kind   record.Kind
	count  int
	seed   uint64
	ref    time.Time
	asJSON bool
	save   bool
	tree   bool
}

func parseGenerate(cfg config.Config, args []string) (generateOptions, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	kind := fs.String("kind", cfg.Kind, "record kind (employee|student)")
	count := fs.Int("count", cfg.Count, "number of records")
	seed := fs.Uint64("seed", cfg.Seed, "generator seed (0 = random)")
	ref := fs.String("ref", cfg.ReferenceDate, "reference date YYYY-MM-DD (default today)")
	asJSON := fs.Bool("json", false, "print JSON")
	save := fs.Bool("save", false, "save the batch to the encrypted store")
	tree := fs.Bool("tree", false, "print each record's hierarchy as an outline")

	if err := fs.Parse(args); err != nil {
		return generateOptions{}, fmt.Errorf("%w: generate: %w", ErrUsage, err)
	}

	k, err := record.ParseKind(*kind)
	if err != nil {
		return generateOptions{}, fmt.Errorf("%w: generate: %w", ErrUsage, err)
	}
	if *count < 1 {
		return generateOptions{}, fmt.Errorf("%w: generate: --count must be at least 1", ErrUsage)
	}

	opts := generateOptions{
		kind:   k,
		count:  *count,
		seed:   *seed,
		asJSON: *asJSON,
		save:   *save,
		tree:   *tree,
	}

	c := cfg
	c.ReferenceDate = *ref
	if *ref != "" {
		if _, err := time.Parse(time.DateOnly, *ref); err != nil {
			return generateOptions{}, fmt.Errorf("%w: generate: --ref: %w", ErrUsage, err)
		}
	}
	opts.ref = c.Reference()

	return opts, nil
}

// CmdGenerate generates a batch of records and prints it.
func CmdGenerate(env Env, args []string) error {
	opts, err := parseGenerate(env.Config, args)
	if err != nil {
		return err
	}

	if opts.seed == 0 {
		if opts.seed, err = RandomSeed(); err != nil {
			return err
		}
	}

	b, err := store.Generate(opts.kind, opts.count, opts.seed, opts.ref, env.Config.Ranges)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Err, "seed %d\n", b.Seed)

	if opts.asJSON {
		if err := printJSON(env.Out, b.Records); err != nil {
			return err
		}
	} else {
		for _, r := range b.Records {
			printRecord(env.Out, r, opts.tree)
		}
	}

	if !opts.save {
		return nil
	}

	s, err := env.Open(env.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(b); err != nil {
		return err
	}
	fmt.Fprintf(env.Err, "saved %s\n", b.ShortID())
	return nil
}

// CmdList lists all saved batches.
func CmdList(env Env, args []string) error {
	s, err := env.Open(env.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	batches, err := s.List()
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		return printJSON(env.Out, batches)
	}

	if len(batches) == 0 {
		fmt.Fprintln(env.Out, "no saved batches")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(env.Out, "  %-10s %-9s %5d  seed %-20d %s\n",
			b.ShortID(),
			b.Kind,
			len(b.Records),
			b.Seed,
			b.CreatedAt.Format("2006-01-02"),
		)
	}
	return nil
}

// CmdShow prints a saved batch.
func CmdShow(env Env, args []string) error {
	id := firstArg(args)
	if id == "" {
		return fmt.Errorf("%w: zsynth show <batch-id> [--json] [--tree]", ErrUsage)
	}

	s, err := env.Open(env.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.Get(id)
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		return printJSON(env.Out, b)
	}

	fmt.Fprintf(env.Out, "batch %s  %s x%d  seed %d  reference %s\n\n",
		b.ID, b.Kind, len(b.Records), b.Seed, b.ReferenceDate)
	tree := hasFlag(args, "--tree")
	for _, r := range b.Records {
		printRecord(env.Out, r, tree)
	}
	return nil
}

// CmdVerify regenerates a saved batch from its seed and reports whether the
// stored records still match.
func CmdVerify(env Env, args []string) error {
	id := firstArg(args)
	if id == "" {
		return fmt.Errorf("%w: zsynth verify <batch-id>", ErrUsage)
	}

	s, err := env.Open(env.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.Get(id)
	if err != nil {
		return err
	}

	ok, err := b.Verify()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("batch %s does not match its seed", b.ShortID())
	}
	fmt.Fprintf(env.Out, "batch %s reproduces from seed %d\n", b.ShortID(), b.Seed)
	return nil
}

// CmdForget deletes a saved batch by ID.
func CmdForget(env Env, args []string) error {
	id := firstArg(args)
	if id == "" {
		return fmt.Errorf("%w: zsynth forget <batch-id>", ErrUsage)
	}

	s, err := env.Open(env.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "deleted %s\n", id)
	return nil
}

func printRecord(w io.Writer, r record.Record, tree bool) {
	fmt.Fprintln(w, r.String())
	if tree {
		for _, line := range strings.Split(strings.TrimSuffix(hierarchy.Render(r.Managers), "\n"), "\n") {
			fmt.Fprintln(w, "    "+line)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// firstArg returns the first argument that is not a flag.
func firstArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
