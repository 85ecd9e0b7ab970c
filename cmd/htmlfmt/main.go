package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	humanize "github.com/dustin/go-humanize"
	"github.com/matryer/try"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2/js"
	"golang.org/x/sync/errgroup"

	"github.com/tdewolff/htmlfmt"
	"github.com/tdewolff/htmlfmt/dom"
)

// Version is the current htmlfmt version.
var Version = "built from source"

// extensions holds the filename extensions that are formatted when walking directories.
var extensions = map[string]bool{
	"gohtml": true,
	"htm":    true,
	"html":   true,
	"php":    true,
	"shtml":  true,
	"tmpl":   true,
	"xhtml":  true,
}

var (
	hidden             bool
	list               bool
	matches            []string
	matchesRegexp      []*regexp.Regexp
	filters            []string
	filtersRegexp      []*regexp.Regexp
	recursive          bool
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	preserve           []string
	preserveMode       bool
	preserveOwnership  bool
	preserveTimestamps bool

	config   htmlfmt.Config
	minifier htmlfmt.Minifier
	parser   func(io.Reader) (*dom.Node, error)
	logger   *log.Logger
)

type Matches struct {
	matches *[]string
}

func (scanner Matches) Scan(s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.matches = append(*scanner.matches, item)
		n++
	}
	return n, nil
}

func (typenamer Matches) TypeName() string {
	return "[]string"
}

// Filters collects inclusion or exclusion patterns, prefixed by + or - respectively.
type Filters struct {
	filters *[]string
	prefix  string
}

func (scanner Filters) Scan(s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.filters = append(*scanner.filters, scanner.prefix+item)
		n++
	}
	return n, nil
}

func (typenamer Filters) TypeName() string {
	return "[]string"
}

// Task is a format task.
type Task struct {
	root string
	src  string
	dst  string
}

// NewTask returns a new Task.
func NewTask(root, input, output string) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		output = filepath.Join(output, rel)
	}
	return Task{root, input, output}, nil
}

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string
	var configFile string
	var parserName string
	var exts []string

	var indent, lineBreak, imgAlt, selfClose, attrCase, sortAttrs string
	var noImgAlt, attrShortTag, noMinifyScript, keepComments bool
	jsMinifier := js.Minifier{}

	defaultPreserve := []string{"mode", "timestamps"}
	if supportsGetOwnership {
		defaultPreserve = []string{"mode", "ownership", "timestamps"}
	}

	f := argp.New("htmlfmt")
	f.AddRest(&inputs, "inputs", "Input files or directories, leave blank to use stdin")
	f.AddOpt(&output, "o", "output", nil, "Output file or directory, leave blank to use stdout")
	f.AddOpt(&configFile, "c", "config", nil, "TOML file with formatting options, flags take precedence")
	f.AddOpt(&parserName, "", "parser", "lexer", "HTML parser, lexer keeps the document as written while html5 applies the HTML5 tree construction rules")
	f.AddOpt(Matches{&matches}, "", "match", nil, "Filename matching pattern, only matching filenames are processed")
	f.AddOpt(Filters{&filters, "+"}, "", "include", nil, "Path inclusion pattern, includes paths previously excluded")
	f.AddOpt(Filters{&filters, "-"}, "", "exclude", nil, "Path exclusion pattern, excludes paths from being processed")
	f.AddOpt(&exts, "", "ext", nil, "Additional filename extensions to format in directories (eg. vue)")
	f.AddOpt(&recursive, "r", "recursive", false, "Recursively format directories")
	f.AddOpt(&hidden, "a", "all", false, "Format all files, including hidden files and files in hidden directories")
	f.AddOpt(&list, "l", "list", false, "List all accepted filename extensions")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{I: &verbose}, "v", "verbose", nil, "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", false, "Watch files and format upon changes")
	f.AddOpt(&preserve, "p", "preserve", defaultPreserve, "Preserve options (mode, ownership, timestamps, all)")
	f.AddOpt(&version, "", "version", false, "Version")

	f.AddOpt(&indent, "", "indent", nil, "Indentation unit, escape sequences such as \\t are accepted (default one space)")
	f.AddOpt(&lineBreak, "", "linebreak", nil, "Line break string, escape sequences such as \\r\\n are accepted (default \\n)")
	f.AddOpt(&imgAlt, "", "img-alt", nil, "Alt text added to images without one (default empty)")
	f.AddOpt(&noImgAlt, "", "no-img-alt", false, "Do not add alt attributes to images")
	f.AddOpt(&selfClose, "", "self-close", nil, "String written before the closing bracket of self-closing tags (eg. \" /\")")
	f.AddOpt(&attrShortTag, "", "attr-shorttag", false, "Write attributes whose value equals their name without value (eg. checked)")
	f.AddOpt(&attrCase, "", "attr-case", nil, "Case of attribute names (none, lower, upper)")
	f.AddOpt(&sortAttrs, "", "sort-attrs", nil, "Sort attributes by name (none, asc, desc)")
	f.AddOpt(&noMinifyScript, "", "no-minify-script", false, "Keep the content of script elements as is")
	f.AddOpt(&keepComments, "", "keep-comments", false, "Preserve all comments")
	f.AddOpt(&jsMinifier.Precision, "", "js-precision", 0, "Number of significant digits to preserve in numbers, 0 is all")
	f.AddOpt(&jsMinifier.KeepVarNames, "", "js-keep-var-names", false, "Preserve original variable names")
	f.AddOpt(&jsMinifier.Version, "", "js-version", 0, "ECMAScript version to toggle supported optimizations (e.g. 2019, 2020), by default 0 is the latest version")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("htmlfmt %s\n", Version)
		}
		return 0
	}

	for _, ext := range exts {
		extensions[strings.TrimPrefix(ext, ".")] = true
	}

	if list {
		if !quiet {
			keys := make([]string, 0, len(extensions))
			for k := range extensions {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Println(k)
			}
		}
		return 0
	}

	logger = newLogger(os.Stderr, quiet, verbose)

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	} else if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	// compile matches and regexps
	var err error
	if 0 < len(matches) {
		matchesRegexp = make([]*regexp.Regexp, len(matches))
		for i, pattern := range matches {
			if matchesRegexp[i], err = compilePattern(pattern); err != nil {
				logger.Error(err)
				return 1
			}
		}
	}
	if 0 < len(filters) {
		filtersRegexp = make([]*regexp.Regexp, len(filters))
		for i, pattern := range filters {
			if filtersRegexp[i], err = compilePattern(pattern[1:]); err != nil {
				logger.Error(err)
				return 1
			}
		}
	}

	// formatting options, the configuration file is overridden by flags
	config = htmlfmt.DefaultConfig()
	if configFile != "" {
		if config, err = htmlfmt.LoadConfig(configFile); err != nil {
			logger.Error("cannot load configuration", "err", err)
			return 1
		}
		logger.Info("use configuration", "file", configFile)
	}
	if f.IsSet("indent") {
		if config.Indent, err = unescape(indent); err != nil {
			logger.Error("invalid --indent", "err", err)
			return 1
		}
	}
	if f.IsSet("linebreak") {
		if config.LineBreak, err = unescape(lineBreak); err != nil {
			logger.Error("invalid --linebreak", "err", err)
			return 1
		}
	}
	if noImgAlt {
		config.ImgAlt = nil
	} else if f.IsSet("img-alt") {
		config.ImgAlt = &imgAlt
	}
	if f.IsSet("self-close") {
		config.SelfCloseStr = &selfClose
	}
	if attrShortTag {
		config.AttrShortTag = &attrShortTag
	}
	if f.IsSet("attr-case") {
		if err := config.AttrCase.UnmarshalText([]byte(attrCase)); err != nil {
			logger.Error(err)
			return 1
		}
	}
	if f.IsSet("sort-attrs") {
		if err := config.SortAttrs.UnmarshalText([]byte(sortAttrs)); err != nil {
			logger.Error(err)
			return 1
		}
	}
	if noMinifyScript {
		config.MinifyScript = false
	}
	if keepComments {
		config.StripComments = false
	}
	minifier = htmlfmt.NewJSMinifier(jsMinifier)

	switch parserName {
	case "lexer":
		parser = dom.Parse
	case "html5":
		parser = dom.ParseHTML5
	default:
		logger.Error("unknown parser, expected lexer or html5", "parser", parserName)
		return 1
	}

	if useStdin && watch {
		logger.Error("--watch doesn't work with stdin, specify input and output")
		return 1
	} else if output == "" && watch {
		logger.Error("--watch doesn't work with stdout, specify output")
		return 1
	} else if useStdin && recursive {
		logger.Error("--recursive doesn't work with stdin, specify input")
		return 1
	} else if output == "" && recursive {
		logger.Error("--recursive doesn't work with stdout, specify output")
		return 1
	}
	if f.IsSet("preserve") && (useStdin || output == "") {
		logger.Error("--preserve cannot be used together with stdin or stdout")
		return 1
	}
	for _, option := range preserve {
		switch option {
		case "all":
			preserveMode = true
			preserveOwnership = true
			preserveTimestamps = true
		case "mode":
			preserveMode = true
		case "ownership":
			preserveOwnership = true
		case "timestamps":
			preserveTimestamps = true
		default:
			logger.Error("unknown preserve option", "option", option)
			return 1
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		logger.Warn("preserve ownership not supported on platform")
	}

	////////////////

	for i, input := range inputs {
		if input == "-" {
			logger.Error("cannot mix files and stdin as input")
			return 1
		}
		inputs[i] = filepath.Clean(input)
		if input[len(input)-1] == os.PathSeparator {
			inputs[i] += string(os.PathSeparator)
		}
	}

	// set output file or directory, empty means stdout
	dirDst := false
	if output != "" {
		dirDst = IsDir(output)
		if !dirDst {
			if 1 < len(inputs) {
				logger.Errorf("stat %v: no such file or directory", output)
				return 1
			} else if len(inputs) == 1 {
				if info, err := os.Lstat(inputs[0]); err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0 {
					dirDst = true
				}
			}
		}

		output = filepath.Clean(output)
		if dirDst {
			output += string(os.PathSeparator)
		}
	} else if 1 < len(inputs) {
		logger.Error("must specify output directory for multiple input files")
		return 1
	}
	if output == "" {
		logger.Info("format to stdout")
	} else if !dirDst {
		logger.Info("format to output file", "file", output)
	} else {
		logger.Info("format to output directory", "dir", output)
	}

	var tasks []Task
	var roots []string
	if useStdin {
		logger.Info("format from stdin")
		tasks = append(tasks, Task{"", "", output})
		roots = append(roots, "")
	} else {
		fsys := NewFS()
		tasks, roots, err = createTasks(fsys, inputs, output)
		if err != nil {
			logger.Error(err)
			return 1
		}
	}

	// make output directory
	if dirDst {
		if err := os.MkdirAll(output, 0777); err != nil {
			logger.Error(err)
			return 1
		}
	}

	////////////////

	var fails atomic.Int64
	start := time.Now()

	numWorkers := runtime.NumCPU()
	if 1 < verbose {
		numWorkers = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(numWorkers)
	submit := func(task Task) {
		g.Go(func() error {
			if !format(task) {
				fails.Add(1)
			}
			return nil
		})
	}

	if !watch {
		for _, task := range tasks {
			submit(task)
		}
	} else {
		watcher, err := NewWatcher(recursive)
		if err != nil {
			logger.Error(err)
			return 1
		}
		defer watcher.Close()
		changes := watcher.Run()

		for _, filename := range inputs {
			if err := watcher.AddPath(filename); err != nil {
				logger.Error(err)
				return 1
			}
		}
		for _, task := range tasks {
			watcher.IgnoreNext(task.dst)
			submit(task)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		interrupt := ctx.Done()
		for changes != nil {
			select {
			case <-interrupt:
				watcher.Close()
				interrupt = nil
			case file, ok := <-changes:
				if !ok {
					changes = nil
					break
				}
				file = filepath.Clean(file)

				// find longest common path among roots
				root := ""
				for _, path := range roots {
					pathRel, err1 := filepath.Rel(path, file)
					rootRel, err2 := filepath.Rel(root, file)
					if err2 != nil || err1 == nil && len(pathRel) < len(rootRel) {
						root = path
					}
				}

				task, err := NewTask(root, file, output)
				if err != nil {
					logger.Error(err)
					break
				}
				watcher.IgnoreNext(task.dst) // skip change on output
				submit(task)
			}
		}
	}
	_ = g.Wait()

	if !watch {
		logger.Info("finished", "files", len(tasks), "time", time.Since(start))
	}
	if 0 < fails.Load() {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, quiet bool, verbose int) *log.Logger {
	if quiet {
		w = io.Discard
	}
	level := log.ErrorLevel
	if 1 < verbose {
		level = log.DebugLevel
	} else if 0 < verbose {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: 0 < verbose,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// unescape interprets Go escape sequences such as \t and \n in s.
func unescape(s string) (string, error) {
	return strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
}

// compilePattern returns *regexp.Regexp or glob.Glob
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if len(pattern) == 0 || pattern[0] != '~' {
		if strings.HasPrefix(pattern, `\~`) {
			pattern = pattern[1:]
		}
		pattern = regexp.QuoteMeta(pattern)
		pattern = strings.ReplaceAll(pattern, `\*\*`, `.*`)
		pattern = strings.ReplaceAll(pattern, `\*`, fmt.Sprintf(`[^%c]*`, filepath.Separator))
		pattern = strings.ReplaceAll(pattern, `\?`, fmt.Sprintf(`[^%c]?`, filepath.Separator))
		pattern = "^" + pattern + "$"
	} else {
		pattern = pattern[1:]
	}
	return regexp.Compile(pattern)
}

func fileFilter(filename string) bool {
	if 0 < len(matches) {
		match := false
		base := filepath.Base(filename)
		for _, re := range matchesRegexp {
			if re.MatchString(base) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	match := true
	for i, re := range filtersRegexp {
		if re.MatchString(filename) {
			match = filters[i][0] == '+'
		}
	}
	return match
}

func fileMatches(filename string) bool {
	if !fileFilter(filename) {
		return false
	}
	ext := filepath.Ext(filename)
	if 0 < len(ext) {
		ext = ext[1:]
	}
	return extensions[strings.ToLower(ext)]
}

func createTasks(fsys fs.FS, inputs []string, output string) ([]Task, []string, error) {
	tasks := []Task{}
	roots := []string{}
	for _, input := range inputs {
		root := filepath.Clean(filepath.Dir(input))
		input = filepath.Clean(input)

		// follow and dereference symlinks
		info, err := fs.Stat(fsys, input)
		if err != nil {
			return nil, nil, err
		}

		if info.Mode().IsRegular() {
			if fileFilter(input) { // explicit inputs are not filtered by extension
				task, err := NewTask(root, input, output)
				if err != nil {
					return nil, nil, err
				}
				tasks = append(tasks, task)
			}
		} else if info.Mode().IsDir() {
			if !recursive {
				logger.Warn("--recursive not specified, omitting directory", "dir", input)
				continue
			}

			var walkFn func(string, fs.DirEntry, error) error
			walkFn = func(input string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				} else if d.Name() == "." || d.Name() == ".." {
					return nil
				} else if d.Name() == "" || !hidden && d.Name()[0] == '.' {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}

				if d.Type()&os.ModeSymlink != 0 {
					info, err := fs.Stat(fsys, input)
					if err != nil {
						return err
					}
					if info.IsDir() {
						return fs.WalkDir(fsys, input, walkFn)
					}
					d = fs.FileInfoToDirEntry(info)
				}

				if d.Type().IsRegular() && fileMatches(input) {
					task, err := NewTask(root, input, output)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				return nil
			}
			if err := fs.WalkDir(fsys, input, walkFn); err != nil {
				return nil, nil, err
			}
			roots = append(roots, root)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

// newFormatter returns a Formatter for a single file, formatters are not shared between goroutines.
func newFormatter(l *log.Logger) *htmlfmt.Formatter {
	fmter := htmlfmt.New(config)
	fmter.Minifier = minifier
	fmter.Logger = l
	return fmter
}

func format(t Task) bool {
	srcName := t.src
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := t.dst
	if dstName == "" {
		dstName = "stdout"
	}
	l := logger.With("file", srcName)

	// rename original when overwriting
	src := t.src
	if t.dst != "" {
		if sameFile, _ := SameFile(src, t.dst); sameFile {
			src += ".bak"
			err := try.Do(func(attempt int) (bool, error) {
				ferr := os.Rename(t.dst, src)
				return attempt < 5, ferr
			})
			if err != nil {
				l.Error(err)
				return false
			}
		}
	}

	fr, err := openInputFile(src)
	if err != nil {
		l.Error(err)
		return false
	}
	b, err := io.ReadAll(fr)
	fr.Close()
	if err != nil {
		l.Error("cannot read", "err", err)
		return false
	}

	success := true
	startTime := time.Now()
	w := bytes.NewBuffer(make([]byte, 0, len(b)+len(b)/4))
	root, err := parser(bytes.NewReader(b))
	if err != nil {
		l.Error("cannot parse", "err", err)
		w = bytes.NewBuffer(b) // copy original
		success = false
	} else {
		fmter := newFormatter(l)
		fmter.Format(root)
		if err := root.Render(w); err != nil {
			l.Error("cannot render", "err", err)
			w = bytes.NewBuffer(b)
			success = false
		}
	}
	dur := time.Since(startTime)
	rLen, wLen := len(b), w.Len()

	fw, err := openOutputFile(t.dst)
	if err == nil {
		_, err = io.Copy(fw, w)
		if t.dst != "" {
			if cerr := fw.Close(); err == nil {
				err = cerr
			}
		}
	}
	if err != nil {
		l.Error(err)
		success = false
	}

	// remove original that was renamed, or restore it when writing failed
	if src != t.src {
		if err == nil {
			err = os.Remove(src)
		} else if err = os.Remove(t.dst); err == nil {
			err = os.Rename(src, t.dst)
		}
		if err != nil {
			l.Error(err)
			return false
		}
	}

	speed := "Inf MB"
	if 0 < dur {
		speed = humanize.Bytes(uint64(float64(rLen) / dur.Seconds()))
	}
	ratio := 1.0
	if 0 < rLen {
		ratio = float64(wLen) / float64(rLen)
	}
	l.Info("formatted", "dst", dstName, "time", dur, "in", humanize.Bytes(uint64(rLen)), "out", humanize.Bytes(uint64(wLen)), "ratio", fmt.Sprintf("%.1f%%", ratio*100), "speed", speed+"/s")

	preserveAttributes(t.src, t.root, t.dst)
	return success
}
