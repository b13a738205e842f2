// Package discimage loads a raw 2352-byte-sector CD-ROM image (.bin)
// from disk and exposes it through psx/cdrom.Disc, the same way
// jeebie/memory.Cartridge parses a ROM byte slice into a typed value a
// constructor hands back.
package discimage

import (
	"fmt"
	"os"
)

// SectorSize is the raw CD-ROM sector size used throughout this image
// reader (2048 user bytes plus header/EDC/ECC, spec §4.2 "raw sector").
const SectorSize = 2352

// Image is a single-track raw CD-ROM image backing psx/cdrom.Disc.
type Image struct {
	data    []byte
	sectors int
}

// Load reads a whole .bin image into memory. Real discs are gigabytes;
// this loader is for manual/integration exercise of the core (spec §2
// "CLI / front door"), not a production disc-streaming path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("discimage: %w", err)
	}
	if len(data)%SectorSize != 0 {
		return nil, fmt.Errorf("discimage: %s is not a multiple of %d bytes", path, SectorSize)
	}
	return &Image{data: data, sectors: len(data) / SectorSize}, nil
}

// ReadSector returns the raw 2352-byte sector at the given LBA.
func (img *Image) ReadSector(lba uint32) ([]byte, bool) {
	if int(lba) >= img.sectors {
		return nil, false
	}
	off := int(lba) * SectorSize
	return img.data[off : off+SectorSize], true
}

// ReadSubchannelQ reports a single fabricated data track spanning the
// whole image; single-track .bin images carry no real Q subchannel.
func (img *Image) ReadSubchannelQ(lba uint32) (track, index int, relLBA, absLBA uint32, ok bool) {
	if int(lba) >= img.sectors {
		return 0, 0, 0, 0, false
	}
	return 1, 1, lba, lba, true
}

func (img *Image) Seek(lba uint32) {}

func (img *Image) Tell() uint32 { return 0 }

// TrackCount always reports one data track for a raw .bin image.
func (img *Image) TrackCount() int { return 1 }

// TrackStart returns LBA 0 for the sole track, an error for any other.
func (img *Image) TrackStart(track int) (uint32, bool) {
	if track != 1 {
		return 0, false
	}
	return 0, true
}

func (img *Image) Inserted() bool { return img.sectors > 0 }
