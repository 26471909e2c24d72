package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v2"

	"github.com/diskfs/go-mbrview/util"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type renderOpts struct {
	output    string
	showEmpty bool
	hexdump   bool
}

func render(w io.Writer, reports []*Report, opts renderOpts) error {
	switch opts.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(filterEmpty(reports, opts.showEmpty))
	case outputYAML:
		b, err := yaml.Marshal(filterEmpty(reports, opts.showEmpty))
		if err != nil {
			return fmt.Errorf("could not encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case outputText:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderText(w, r, opts); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}

// filterEmpty drops the empty slots from copies of the reports, unless showEmpty is set
func filterEmpty(reports []*Report, showEmpty bool) []*Report {
	if showEmpty {
		return reports
	}
	out := make([]*Report, 0, len(reports))
	for _, r := range reports {
		c := *r
		c.Partitions = nil
		for _, p := range r.Partitions {
			if !p.Empty {
				c.Partitions = append(c.Partitions, p)
			}
		}
		out = append(out, &c)
	}
	return out
}

func renderText(w io.Writer, r *Report, opts renderOpts) error {
	size := "unknown size"
	if r.Size > 0 {
		size = units.BytesSize(float64(r.Size))
	}
	fmt.Fprintf(w, "%s: %s %s, %s, %d-byte sectors\n", r.Path, r.Format, r.DeviceType, size, r.SectorSize)
	if r.Times != nil {
		fmt.Fprintf(w, "modified %s, accessed %s", r.Times.Modified.Format(time.RFC3339), r.Times.Accessed.Format(time.RFC3339))
		if r.Times.Born != nil {
			fmt.Fprintf(w, ", created %s", r.Times.Born.Format(time.RFC3339))
		}
		fmt.Fprintln(w)
	}
	valid := "valid"
	if !r.Valid {
		valid = "invalid"
	}
	fmt.Fprintf(w, "boot signature %s (%s)\n", r.Signature, valid)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tSTATUS\tTYPE\tNAME\tSTART\tSECTORS\tSIZE")
	for _, p := range r.Partitions {
		if p.Empty && !opts.showEmpty {
			continue
		}
		fmt.Fprintf(tw, "%d\t0x%02x\t0x%02x\t%s\t%d\t%d\t%s\n",
			p.Index, p.Status, p.Type, p.TypeName, p.Start, p.Sectors, units.BytesSize(float64(p.Bytes)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if opts.hexdump && len(r.sector) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, util.DumpByteSlice(r.sector, 16, true, true, false, nil))
	}
	return nil
}
