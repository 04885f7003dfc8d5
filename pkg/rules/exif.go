package rules

import (
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// exifExtensions are the formats goexif can decode
var exifExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// HasExif reports whether files with this extension may carry EXIF data
func HasExif(ext string) bool {
	return exifExtensions[ext]
}

// CaptureTime reads the time a photo was taken. DateTimeOriginal is
// preferred, then DateTimeDigitized, then the generic DateTime tag.
func CaptureTime(r io.Reader) (time.Time, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, errors.Wrap(err, errors.ErrNotFound, "no EXIF data")
	}

	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		raw = strings.TrimRight(strings.TrimSpace(raw), "\x00")
		if t, err := time.ParseInLocation(exifTimeLayout, raw, time.Local); err == nil {
			return t, nil
		}
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, errors.Wrap(err, errors.ErrNotFound, "no EXIF date")
	}
	return t, nil
}
