package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	"github.com/slotools/mdocx/pkg/mdocx"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var (
		author     = flag.String("author", "", "document author (default: git user.name, then $USER)")
		title      = flag.String("title", "", "document title (default: first level-one heading)")
		configPath = flag.String("config", "", "path to a YAML configuration file")
		dump       = flag.Bool("dump", false, "print the parsed block tree instead of converting")
		quiet      = flag.Bool("q", false, "suppress warnings")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.md> [output.docx]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *configPath != "" {
		cfg, err := mdocx.LoadConfigFile(*configPath)
		if err != nil {
			fail(err)
		}
		mdocx.SetGlobalConfig(cfg)
	}

	meta := map[string]string{
		"author": resolveAuthor(*author),
		"title":  *title,
	}

	input := flag.Arg(0)
	output := flag.Arg(1)

	if *dump {
		if err := dumpTree(input); err != nil {
			fail(err)
		}
		return
	}

	result, err := mdocx.ConvertFile(input, output, mdocx.Options{Metadata: meta})
	if err != nil {
		fail(err)
	}

	if !*quiet {
		for _, w := range result.Warnings {
			fmt.Fprintln(os.Stderr, warnStyle.Render("warning: "+w.String()))
		}
	}
	if output == "" {
		output = mdocx.OutputPath(input)
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("%s -> %s (%s)",
		input, output, humanize.Bytes(uint64(len(result.Package))))))
}

func dumpTree(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, warns, err := mdocx.Parse(source)
	if err != nil {
		return err
	}
	pp.Println(doc)
	for _, w := range warns {
		fmt.Fprintln(os.Stderr, warnStyle.Render("warning: "+w.String()))
	}
	return nil
}

// resolveAuthor picks the explicit flag, then the git identity, then the
// login name.
func resolveAuthor(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if out, err := exec.Command("git", "config", "user.name").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "Unknown"
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
	os.Exit(1)
}
