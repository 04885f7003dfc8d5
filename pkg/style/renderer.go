package style

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer writes command output in one format
type Renderer interface {
	RenderResult(r types.OperationResult) error
	RenderSummary(s *types.RunSummary) error
	RenderClassification(path string, c rules.Classification) error
	RenderConfig(cfg *config.Config) error
	RenderError(err error) error
}

// NewRenderer creates a renderer for f. FormatAuto inspects w when it is a
// file and falls back to plain text otherwise.
func NewRenderer(w io.Writer, f Format) Renderer {
	if f == FormatAuto {
		f = FormatText
		if file, ok := w.(*os.File); ok {
			f = DetectFormat(file)
		}
	}

	switch f {
	case FormatTerminal:
		return &TerminalRenderer{out: w}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &JSONRenderer{enc: enc}
	default:
		return &PlainRenderer{out: w}
	}
}

// TerminalRenderer renders with colours and boxes
type TerminalRenderer struct {
	out io.Writer
}

func (r *TerminalRenderer) RenderResult(res types.OperationResult) error {
	_, err := fmt.Fprintln(r.out, StyledResultLine(res))
	return err
}

func (r *TerminalRenderer) RenderSummary(s *types.RunSummary) error {
	_, err := fmt.Fprintln(r.out, BoxStyle.Render(Render(summaryMarkup(s))))
	return err
}

func (r *TerminalRenderer) RenderClassification(path string, c rules.Classification) error {
	_, err := fmt.Fprintln(r.out, Render(classificationMarkup(path, c)))
	return err
}

func (r *TerminalRenderer) RenderConfig(cfg *config.Config) error {
	out, err := configTables(cfg, pterm.DefaultTable.WithHasHeader())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.out, Render(out))
	return err
}

func (r *TerminalRenderer) RenderError(e error) error {
	line := ErrorIndicator + " " + ErrorStyle.Render("Error:") + " " + e.Error()
	_, err := fmt.Fprintln(r.out, line)
	return err
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct {
	out io.Writer
}

func (r *PlainRenderer) RenderResult(res types.OperationResult) error {
	_, err := fmt.Fprintln(r.out, strings.TrimSpace(ResultLine(res)))
	return err
}

func (r *PlainRenderer) RenderSummary(s *types.RunSummary) error {
	_, err := fmt.Fprintln(r.out, Strip(summaryMarkup(s)))
	return err
}

func (r *PlainRenderer) RenderClassification(path string, c rules.Classification) error {
	_, err := fmt.Fprintln(r.out, Strip(classificationMarkup(path, c)))
	return err
}

func (r *PlainRenderer) RenderConfig(cfg *config.Config) error {
	plain := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle()).
		WithSeparatorStyle(pterm.NewStyle())
	out, err := configTables(cfg, plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.out, Strip(out))
	return err
}

func (r *PlainRenderer) RenderError(e error) error {
	_, err := fmt.Fprintln(r.out, "Error: "+e.Error())
	return err
}

// JSONRenderer provides JSON output for machine consumption, one document
// per call
type JSONRenderer struct {
	enc *json.Encoder
}

type jsonResult struct {
	types.OperationResult
	Error string `json:"error,omitempty"`
}

type jsonClassification struct {
	Path      string `json:"path"`
	Verdict   string `json:"verdict"`
	Extension string `json:"extension,omitempty"`
	Category  string `json:"category,omitempty"`
	TargetDir string `json:"targetDir,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (r *JSONRenderer) RenderResult(res types.OperationResult) error {
	out := jsonResult{OperationResult: res}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return r.enc.Encode(out)
}

func (r *JSONRenderer) RenderSummary(s *types.RunSummary) error {
	return r.enc.Encode(s)
}

func (r *JSONRenderer) RenderClassification(path string, c rules.Classification) error {
	return r.enc.Encode(jsonClassification{
		Path:      path,
		Verdict:   c.Verdict.String(),
		Extension: c.Extension,
		Category:  c.Category,
		TargetDir: c.TargetDir,
		Reason:    c.Reason,
	})
}

func (r *JSONRenderer) RenderConfig(cfg *config.Config) error {
	data, err := config.Marshal(cfg, config.FormatJSON)
	if err != nil {
		return err
	}
	return r.enc.Encode(json.RawMessage(data))
}

func (r *JSONRenderer) RenderError(e error) error {
	obj := map[string]interface{}{
		"error": e.Error(),
		"code":  string(errors.GetErrorCode(e)),
	}
	if details := errors.GetErrorDetails(e); len(details) > 0 {
		obj["details"] = details
	}
	return r.enc.Encode(obj)
}

// summaryMarkup is shared by the terminal and plain renderers
func summaryMarkup(s *types.RunSummary) string {
	var b strings.Builder

	title := "Summary"
	if s.DryRun {
		title += " (dry run, nothing was moved)"
	}
	b.WriteString("[title]" + title + "[/title]\n")

	moved := s.Moved
	verb := "moved"
	if s.DryRun {
		moved = s.Simulated
		verb = "would move"
	}
	fmt.Fprintf(&b, "[success]%d[/success] %s, %d skipped, %d ignored, %d unmatched",
		moved, verb, s.Skipped, s.Ignored, s.Unmatched)
	if s.Errored > 0 {
		fmt.Fprintf(&b, ", [error]%d failed[/error]", s.Errored)
	} else {
		b.WriteString(", 0 failed")
	}

	for _, name := range s.Categories() {
		fmt.Fprintf(&b, "\n  [category]%s[/category]: %d", name, s.ByCategory[name])
	}

	fmt.Fprintf(&b, "\n[muted]run %s in %s[/muted]", shortID(s.RunID), s.Duration().Round(time.Millisecond))
	return b.String()
}

func classificationMarkup(path string, c rules.Classification) string {
	switch c.Verdict {
	case rules.Matched:
		return fmt.Sprintf("[path]%s[/path] -> [category]%s[/category] %s", path, c.Category, c.TargetDir)
	case rules.Ignored:
		return fmt.Sprintf("[path]%s[/path] [muted]ignored: %s[/muted]", path, c.Reason)
	default:
		return fmt.Sprintf("[path]%s[/path] [warning]unmatched[/warning]: %s", path, c.Reason)
	}
}

// configTables renders the rules table and the settings table
func configTables(cfg *config.Config, table *pterm.TablePrinter) (string, error) {
	var b strings.Builder

	if cfg.Source != "" {
		b.WriteString("[muted]source: " + cfg.Source + "[/muted]\n\n")
	}
	b.WriteString("[subtitle]Watch directories[/subtitle]\n")
	for _, dir := range cfg.WatchDirectories {
		b.WriteString("  " + dir + "\n")
	}
	b.WriteString("\n[subtitle]Rules[/subtitle]\n")

	ruleRows := [][]string{{"Category", "Extensions", "Target"}}
	for _, r := range cfg.Rules {
		ruleRows = append(ruleRows, []string{r.Name, strings.Join(r.Extensions, " "), r.TargetFolder})
	}
	rulesOut, err := table.WithData(ruleRows).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render rules table")
	}
	b.WriteString(rulesOut + "\n\n[subtitle]Settings[/subtitle]\n")

	st := cfg.Settings
	w := cfg.Watcher
	settingRows := [][]string{
		{"Setting", "Value"},
		{"organize_by_date", fmt.Sprint(st.OrganizeByDate)},
		{"date_format", st.DateFormat},
		{"date_source", st.DateSource.String()},
		{"duplicate_handling", st.DuplicateHandling.String()},
		{"max_rename_attempts", fmt.Sprint(st.MaxRenameAttempts)},
		{"extras_folder", st.ExtrasFolder},
		{"ignore_extensions", strings.Join(st.IgnoreExtensions, " ")},
		{"ignore_files", strings.Join(st.IgnoreFiles, " ")},
		{"ignore_patterns", strings.Join(st.IgnorePatterns, " ")},
		{"dry_run", fmt.Sprint(st.DryRun)},
		{"enable_logging", fmt.Sprint(st.EnableLogging)},
		{"log_level", st.LogLevel},
		{"log_file", st.LogFile},
		{"watcher.organize_first", fmt.Sprint(w.OrganizeFirst)},
		{"watcher.poll_interval", w.PollInterval.String()},
		{"watcher.stable_checks", fmt.Sprint(w.StableChecks)},
		{"watcher.stability_timeout", w.StabilityTimeout.String()},
		{"watcher.lock", fmt.Sprint(w.Lock)},
	}
	settingsOut, err := table.WithData(settingRows).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render settings table")
	}
	b.WriteString(settingsOut + "\n")
	return b.String(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
