// Command kleene runs the regular expression and automaton pipeline from the shell.
//
//	kleene [flags] parse|simplify|nfa|dfa|min|regexp <regexp>
//	kleene [flags] equiv <regexp> <regexp>
//
// Defaults for -alphabet, -format and -log-level come from KLEENE_ALPHABET, KLEENE_FORMAT
// and KLEENE_LOG_LEVEL.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/gobuffalo/envy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/geange/kleene"
)

var errUsage = errors.New("usage: kleene [flags] parse|simplify|nfa|dfa|min|regexp <regexp> | equiv <regexp> <regexp>")

// errDifferent signals that equiv found the languages to differ.
var errDifferent = errors.New("languages differ")

type config struct {
	alphabet  string
	format    string
	logLevel  string
	maxPasses int
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errDifferent):
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		logrus.WithError(err).Error("kleene failed")
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("kleene", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.alphabet, "alphabet", envy.Get("KLEENE_ALPHABET", ""), "extra alphabet symbols")
	fs.StringVar(&cfg.format, "format", envy.Get("KLEENE_FORMAT", "text"), "output format: text, json or yaml")
	fs.StringVar(&cfg.logLevel, "log-level", envy.Get("KLEENE_LOG_LEVEL", "warn"), "logrus level")
	fs.IntVar(&cfg.maxPasses, "max-passes", 64, "simplifier pass limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(level)
	kleene.SetLogger(log)
	defer kleene.SetLogger(nil)

	out, err := newEmitter(cfg.format, stdout)
	if err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return errUsage
	}
	cmd, operands := rest[0], rest[1:]
	want := 1
	if cmd == "equiv" {
		want = 2
	}
	if len(operands) != want {
		return errUsage
	}

	exprs := make([]*kleene.RegExp, len(operands))
	for i, s := range operands {
		r, err := kleene.Parse(s)
		if err != nil {
			return errors.Wrapf(err, "parse %q", s)
		}
		exprs[i] = r
	}
	r := exprs[0]
	sigma := kleene.Symbols(cfg.alphabet)
	simplifier := kleene.NewSimplifier(kleene.WithMaxPasses(cfg.maxPasses), kleene.WithLogger(log))

	log.WithFields(logrus.Fields{"command": cmd, "regexp": r.String()}).Debug("running")

	switch cmd {
	case "parse":
		return out.expression(r)
	case "simplify":
		s, err := simplifier.Simplify(r)
		if err != nil {
			log.WithError(err).Warn("simplification incomplete")
		}
		return out.expression(s)
	case "nfa":
		return out.record(kleene.RegExpToNFA(r, sigma).Record())
	case "dfa":
		return out.record(kleene.RegExpToDFA(r, sigma).Record())
	case "min":
		return out.record(kleene.Minimize(kleene.RegExpToDFA(r, sigma)).Record())
	case "regexp":
		s, err := simplifier.Simplify(kleene.ToRegExp(kleene.Minimize(kleene.RegExpToDFA(r, sigma))))
		if err != nil {
			log.WithError(err).Warn("simplification incomplete")
		}
		return out.expression(s)
	case "equiv":
		word, differ := kleene.Distinguish(exprs[0], exprs[1], sigma)
		if err := out.verdict(!differ, word); err != nil {
			return err
		}
		if differ {
			return errDifferent
		}
		return nil
	}
	return errors.Wrapf(errUsage, "unknown command %q", cmd)
}
