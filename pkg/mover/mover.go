package mover

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mover moves files on a types.FS
type Mover struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Mover operating on fsys
func New(fsys types.FS) *Mover {
	return &Mover{
		fs:     fsys,
		logger: logging.GetLogger("mover"),
	}
}

// Move relocates task.Source to task.FinalPath. With replace set an
// existing regular file at the destination is removed first. In dry-run
// mode the destination is validated and nothing is touched.
func (m *Mover) Move(task types.FileTask, replace, dryRun bool) types.OperationResult {
	result := types.OperationResult{
		Source:      task.Source,
		Destination: task.FinalPath,
		Category:    task.Category,
	}

	if err := ValidateDestination(task.FinalPath); err != nil {
		return failed(result, err)
	}

	info, err := m.fs.Lstat(task.Source)
	if err != nil {
		return failed(result, mapError(err, task.Source, "cannot read source"))
	}
	if !info.Mode().IsRegular() {
		return failed(result, errors.Newf(errors.ErrMoveFailed, "%s is not a regular file", task.Source))
	}

	if dryRun {
		result.Status = types.StatusSimulated
		result.Reason = "dry run"
		return result
	}

	destDir := filepath.Dir(task.FinalPath)
	if err := m.fs.MkdirAll(destDir, 0755); err != nil {
		code := mapCode(err)
		if code == errors.ErrMoveFailed {
			code = errors.ErrDirCreate
		}
		return failed(result, errors.Wrapf(err, code, "cannot create %s", destDir))
	}

	existing, err := m.fs.Lstat(task.FinalPath)
	switch {
	case err == nil && !replace:
		// Someone created the file after the conflict check
		return failed(result, errors.Newf(errors.ErrNameCollision, "%s already exists", task.FinalPath))
	case err == nil && !existing.Mode().IsRegular():
		return failed(result, errors.Newf(errors.ErrMoveFailed, "refusing to replace %s: not a regular file", task.FinalPath))
	case err == nil:
		if err := m.fs.Remove(task.FinalPath); err != nil {
			return failed(result, mapError(err, task.FinalPath, "cannot replace existing file"))
		}
		m.logger.Debug().Str("path", task.FinalPath).Msg("Removed existing destination")
	case !stderrors.Is(err, fs.ErrNotExist):
		return failed(result, mapError(err, task.FinalPath, "cannot inspect destination"))
	}

	if err := m.fs.Rename(task.Source, task.FinalPath); err != nil {
		if !isCrossDevice(err) {
			return failed(result, mapError(err, task.Source, "move failed"))
		}
		m.logger.Debug().
			Str("source", task.Source).
			Str("destination", task.FinalPath).
			Msg("Rename crossed devices, copying instead")
		if err := m.copyAcross(task.Source, task.FinalPath, info); err != nil {
			return failed(result, err)
		}
	}

	result.Status = types.StatusMoved
	if replace {
		result.Reason = "replaced existing file"
	}
	return result
}

// copyAcross moves a file between filesystems
func (m *Mover) copyAcross(src, dst string, info fs.FileInfo) error {
	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tidyup", filepath.Base(dst), uuid.NewString()[:8]))

	if err := m.copyFile(src, tmp, info); err != nil {
		_ = m.fs.Remove(tmp)
		return err
	}

	if err := m.fs.Rename(tmp, dst); err != nil {
		_ = m.fs.Remove(tmp)
		return mapError(err, dst, "cannot place copied file")
	}

	if err := m.fs.Remove(src); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrCrossDevice, "copied to %s but cannot remove source", dst).
			WithDetail("destination", dst)
	}
	return nil
}

func (m *Mover) copyFile(src, dst string, info fs.FileInfo) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return mapError(err, src, "cannot open source")
	}
	defer func() { _ = in.Close() }()

	out, err := m.fs.Create(dst, info.Mode().Perm())
	if err != nil {
		return mapError(err, dst, "cannot create copy")
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return mapError(err, dst, "copy failed")
	}
	if err := out.Close(); err != nil {
		return mapError(err, dst, "copy failed")
	}

	if err := m.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		m.logger.Warn().Err(err).Str("path", dst).Msg("Could not preserve modification time")
	}
	return nil
}

// ValidateDestination checks that a destination is well formed: absolute,
// clean, free of NUL bytes and with a non-empty final component
func ValidateDestination(path string) error {
	switch {
	case path == "":
		return errors.New(errors.ErrBadDest, "destination is empty")
	case strings.ContainsRune(path, 0):
		return errors.Newf(errors.ErrBadDest, "destination %q contains a NUL byte", path)
	case !filepath.IsAbs(path):
		return errors.Newf(errors.ErrBadDest, "destination %q is not absolute", path)
	case filepath.Clean(path) != path:
		return errors.Newf(errors.ErrBadDest, "destination %q is not clean", path)
	}

	base := filepath.Base(path)
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return errors.Newf(errors.ErrBadDest, "destination %q has no file name", path)
	}
	return nil
}

func failed(result types.OperationResult, err error) types.OperationResult {
	result.Status = types.StatusError
	result.Err = err
	result.Reason = Reason(err)
	return result
}

// Reason turns a mover error into the short text shown to users
func Reason(err error) string {
	switch errors.GetErrorCode(err) {
	case errors.ErrFileVanished:
		return "source vanished"
	case errors.ErrFileAccess:
		return "permission denied"
	case errors.ErrDiskFull:
		return "disk full"
	case errors.ErrCrossDevice:
		return "cross-device move failed"
	case errors.ErrNameCollision:
		return "destination already exists"
	case errors.ErrBadDest:
		return "invalid destination"
	case errors.ErrDirCreate:
		return "cannot create destination folder"
	}
	var tidyErr *errors.TidyError
	if stderrors.As(err, &tidyErr) {
		return tidyErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func mapError(err error, path, message string) error {
	return errors.Wrapf(err, mapCode(err), "%s: %s", message, path).WithDetail("path", path)
}

func mapCode(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.ErrFileVanished
	case stderrors.Is(err, fs.ErrPermission):
		return errors.ErrFileAccess
	case stderrors.Is(err, syscall.ENOSPC):
		return errors.ErrDiskFull
	case isCrossDevice(err):
		return errors.ErrCrossDevice
	}
	return errors.ErrMoveFailed
}

func isCrossDevice(err error) bool {
	return stderrors.Is(err, syscall.EXDEV)
}
