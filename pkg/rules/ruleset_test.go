package rules

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Rules = []config.RuleSpec{
		{Name: "Images", Extensions: []string{"JPG", ".png", ".tmp"}, TargetFolder: "/org/Images"},
		{Name: "Documents", Extensions: []string{".pdf", ".txt", ".jpg"}, TargetFolder: "/org/Docs"},
	}
	cfg.Settings.IgnoreExtensions = []string{".TMP"}
	cfg.Settings.IgnoreFiles = []string{".DS_Store"}
	cfg.Settings.IgnorePatterns = []string{"*.crdownload", "~$*"}
	cfg.Settings.ExtrasFolder = ""
	cfg.Settings.OrganizeByDate = false
	return cfg
}

func compile(t *testing.T, cfg *config.Config) *RuleSet {
	t.Helper()
	rs, err := Compile(cfg)
	require.NoError(t, err)
	return rs
}

func TestClassify(t *testing.T) {
	rs := compile(t, testConfig())

	tests := []struct {
		name     string
		file     string
		verdict  Verdict
		category string
		target   string
		reason   string
	}{
		{"lowercase_match", "/in/photo.jpg", Matched, "Images", "/org/Images", ""},
		{"uppercase_extension", "/in/PHOTO.JPG", Matched, "Images", "/org/Images", ""},
		{"second_rule", "/in/report.pdf", Matched, "Documents", "/org/Docs", ""},
		{"ignore_extension_beats_rule", "/in/app.tmp", Ignored, "", "", "ignored extension .tmp"},
		{"ignore_file", "/in/.DS_Store", Ignored, "", "", "ignored file name"},
		{"ignore_pattern", "/in/movie.mp4.crdownload", Ignored, "", "", "matches ignore pattern *.crdownload"},
		{"office_lock_file", "/in/~$report.docx", Ignored, "", "", "matches ignore pattern ~$*"},
		{"unknown_extension", "/in/song.xyz", Unmatched, "", "", "no rule for .xyz"},
		{"no_extension", "/in/README", Unmatched, "", "", "no extension"},
		{"dotfile_has_no_extension", "/in/.bashrc", Unmatched, "", "", "no extension"},
		{"only_last_extension_counts", "/in/backup.tar.gz", Unmatched, "", "", "no rule for .gz"},
		{"trailing_dot", "/in/weird.", Unmatched, "", "", "no extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Classify(FileMeta{Path: tt.file})

			assert.Equal(t, tt.verdict, got.Verdict, got.Reason)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.target, got.TargetDir)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	rs := compile(t, testConfig())
	meta := FileMeta{Path: "/does/not/exist/photo.jpg"}

	first := rs.Classify(meta)
	second := rs.Classify(meta)
	assert.Equal(t, first, second)
	assert.Equal(t, Matched, first.Verdict)
}

func TestCompile(t *testing.T) {
	t.Run("first_rule_wins_overlap", func(t *testing.T) {
		rs := compile(t, testConfig())

		rules := rs.Rules()
		require.Len(t, rules, 2)
		assert.Equal(t, []string{".jpg", ".png", ".tmp"}, rules[0].Extensions)
		// .jpg was already claimed by Images
		assert.Equal(t, []string{".pdf", ".txt"}, rules[1].Extensions)
	})

	t.Run("duplicate_extension_within_rule", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rules = []config.RuleSpec{{Name: "Docs", Extensions: []string{".txt", "TXT"}, TargetFolder: "/d"}}

		rs := compile(t, cfg)
		assert.Equal(t, []string{".txt"}, rs.Rules()[0].Extensions)
	})

	t.Run("empty_extension_rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rules[0].Extensions = []string{" . "}

		_, err := Compile(cfg)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("bad_pattern_rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.IgnorePatterns = []string{"[z-"}

		_, err := Compile(cfg)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("target_folders", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.ExtrasFolder = "/org/Extras"

		rs := compile(t, cfg)
		assert.Equal(t, []string{"/org/Images", "/org/Docs", "/org/Extras"}, rs.TargetFolders())
	})
}

func TestExtrasFolder(t *testing.T) {
	cfg := testConfig()
	cfg.Settings.ExtrasFolder = "/org/Extras"
	rs := compile(t, cfg)

	got := rs.Classify(FileMeta{Path: "/in/song.xyz"})
	assert.Equal(t, Matched, got.Verdict)
	assert.Equal(t, ExtrasCategory, got.Category)
	assert.Equal(t, "/org/Extras", got.TargetDir)

	// ignores still win over extras
	assert.Equal(t, Ignored, rs.Classify(FileMeta{Path: "/in/app.tmp"}).Verdict)
}

func TestOrganizeByDate(t *testing.T) {
	march := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	t.Run("default_format", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.OrganizeByDate = true
		rs := compile(t, cfg)

		got := rs.Classify(FileMeta{Path: "/in/photo.jpg", ModTime: march})
		assert.Equal(t, filepath.Join("/org/Images", "2024-03"), got.TargetDir)
	})

	t.Run("nested_format", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.OrganizeByDate = true
		cfg.Settings.DateFormat = "%Y/%m"
		rs := compile(t, cfg)

		got := rs.Classify(FileMeta{Path: "/in/report.pdf", ModTime: march})
		assert.Equal(t, filepath.Join("/org/Docs", "2024", "03"), got.TargetDir)
	})

	t.Run("applies_to_extras", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.OrganizeByDate = true
		cfg.Settings.ExtrasFolder = "/org/Extras"
		rs := compile(t, cfg)

		got := rs.Classify(FileMeta{Path: "/in/x.bin", ModTime: march})
		assert.Equal(t, filepath.Join("/org/Extras", "2024-03"), got.TargetDir)
	})

	t.Run("zero_time_skips_date", func(t *testing.T) {
		cfg := testConfig()
		cfg.Settings.OrganizeByDate = true
		rs := compile(t, cfg)

		assert.Equal(t, "/org/Images", rs.Classify(FileMeta{Path: "/in/a.jpg"}).TargetDir)
	})
}

func TestDateFolder(t *testing.T) {
	ts := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2023-12", DateFolder("%Y-%m", ts))
	assert.Equal(t, filepath.Join("2023", "Dec"), DateFolder("%Y/%b", ts))
	assert.Equal(t, "2023", DateFolder("../%Y/", ts))
	assert.Equal(t, "", DateFolder("", ts))
}

func TestExtensionHelpers(t *testing.T) {
	assert.Equal(t, ".jpg", NormalizeExtension("JPG"))
	assert.Equal(t, ".jpg", NormalizeExtension(" .Jpg "))
	assert.Equal(t, "", NormalizeExtension("..."))

	assert.Equal(t, ".pdf", Extension("Report.PDF"))
	assert.Equal(t, "", Extension(".profile"))
	assert.Equal(t, ".gz", Extension("a.tar.gz"))
}

func TestCaptureTime(t *testing.T) {
	_, err := CaptureTime(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	assert.True(t, HasExif(".jpg"))
	assert.False(t, HasExif(".png"))
}
