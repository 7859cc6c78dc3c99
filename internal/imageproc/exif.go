package imageproc

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/curblens/curbsign/internal/cds"
)

// extractLocation pulls a GeoJSON point out of the image's EXIF GPS block.
// goexif applies the hemisphere reference signs (S and W negate), so the
// returned coordinates are already signed decimal degrees. Every failure
// mode here -- no EXIF, no GPS tags, out-of-range values -- yields nil.
func (p *Processor) extractLocation(path string) *cds.Location {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		p.logger.Debug("no EXIF metadata", "path", path, "error", err)
		return nil
	}

	lat, lon, err := meta.LatLong()
	if err != nil {
		p.logger.Debug("no GPS data in EXIF", "path", path, "error", err)
		return nil
	}

	loc, err := cds.NewLocation(lon, lat)
	if err != nil {
		p.logger.Warn("EXIF GPS coordinates out of bounds", "path", path, "lat", lat, "lon", lon)
		return nil
	}

	p.logger.Info("extracted GPS coordinates", "path", path, "lat", lat, "lon", lon)
	return loc
}
