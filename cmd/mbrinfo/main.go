// mbrinfo prints the MBR partition table of disks and disk images
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	mbrview "github.com/diskfs/go-mbrview"
	"github.com/diskfs/go-mbrview/disk"
	"github.com/diskfs/go-mbrview/disk/formats"
	"github.com/diskfs/go-mbrview/partition"
	"github.com/diskfs/go-mbrview/partition/mbr"
)

// stdinImage reads a raw sector 0 from standard input
const stdinImage = "-"

var (
	defaultLogFormatter = &log.TextFormatter{}
)

// infoFormatter overrides the default format for Info() log events to
// provide an easier to read output
type infoFormatter struct {
}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("mbrinfo", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "USAGE: %s [options] IMAGE...\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flags.Output(), "Print the MBR partition table of disks and disk images.\n")
		fmt.Fprintf(flags.Output(), "Raw, qcow2, xz and lz4 images are detected automatically.\n")
		fmt.Fprintf(flags.Output(), "An IMAGE of - reads a raw first sector from standard input.\n\n")
		fmt.Fprintf(flags.Output(), "Options:\n")
		flags.PrintDefaults()
	}
	flagQuiet := flags.Bool("q", false, "Quiet execution")
	flagVerbose := flags.Bool("v", false, "Verbose execution")
	flagConfig := flags.String("config", configPath(), "Path to the config file")
	flagOutput := flags.String("o", "", "Output format: text, json or yaml")
	flagSectorSize := flags.Int("sector-size", 0, "Logical sector size, 512 or 4096 (default: detect)")
	flagAll := flags.Bool("all", false, "Show empty partition slots")
	flagHexdump := flags.Bool("hexdump", false, "Dump the raw sector (text output only)")

	// Set up logging
	log.SetFormatter(new(infoFormatter))
	log.SetLevel(log.InfoLevel)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *flagQuiet && *flagVerbose {
		log.Error("Can't set quiet and verbose flag at the same time")
		return 2
	}
	if *flagQuiet {
		log.SetLevel(log.ErrorLevel)
	}
	if *flagVerbose {
		// Switch back to the standard formatter
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := readConfig(*flagConfig)
	if err != nil {
		log.Error(err)
		return 1
	}
	// flags override the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *flagOutput
		case "sector-size":
			cfg.SectorSize = *flagSectorSize
		case "all":
			cfg.ShowEmpty = *flagAll
		case "hexdump":
			cfg.Hexdump = *flagHexdump
		}
	})
	if err := cfg.validate(); err != nil {
		log.Error(err)
		return 2
	}

	images := flags.Args()
	if len(images) < 1 {
		fmt.Fprintf(flags.Output(), "Please specify an image.\n\n")
		flags.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var opts []mbrview.OpenOpt
	if cfg.SectorSize != 0 {
		opts = append(opts, mbrview.WithSectorSize(mbrview.SectorSize(cfg.SectorSize)))
	}

	var (
		reports []*Report
		failed  bool
	)
	for _, image := range images {
		r, err := inspect(ctx, image, int64(cfg.SectorSize), opts...)
		if err != nil {
			log.Errorf("%s: %v", image, err)
			failed = true
			continue
		}
		reports = append(reports, r)
	}

	if err := render(os.Stdout, reports, renderOpts{output: cfg.Output, showEmpty: cfg.ShowEmpty, hexdump: cfg.Hexdump}); err != nil {
		log.Error(err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

// inspect opens an image and reports on its partition table
func inspect(ctx context.Context, image string, blocksize int64, opts ...mbrview.OpenOpt) (*Report, error) {
	if image == stdinImage {
		return inspectStream(os.Stdin, blocksize)
	}
	d, err := mbrview.Open(image, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	m, err := d.ReadMBR(ctx)
	if err != nil {
		return nil, err
	}
	r := newReport(image, d, m)
	ft, err := fileTimes(image)
	if err != nil {
		log.Debugf("%v", err)
	} else {
		r.Times = ft
	}
	return r, nil
}

// inspectStream reports on a raw first sector read from r. Nothing is known about the disk
// it came from.
func inspectStream(r io.Reader, blocksize int64) (*Report, error) {
	if blocksize == 0 {
		blocksize = mbr.Size
	}
	m, err := partition.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	d := &disk.Disk{
		Type:              disk.DeviceTypeUnknown,
		Format:            formats.Raw,
		LogicalBlocksize:  blocksize,
		PhysicalBlocksize: blocksize,
	}
	return newReport(stdinImage, d, m), nil
}
