package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/diskfs/go-mbrview/partition/mbr"
)

func testReport(t *testing.T) *Report {
	t.Helper()
	m, err := mbr.FromBytes(testSector(
		testEntry{status: 0x80, ptype: 0x83, start: 2048, sectors: 65536},
		testEntry{ptype: 0x82, start: 67584, sectors: 4096},
	))
	require.NoError(t, err)
	return newReport("disk.img", testDisk(testDiskSize), m)
}

func TestRenderText(t *testing.T) {
	t.Run("used only", func(t *testing.T) {
		var buf bytes.Buffer
		err := render(&buf, []*Report{testReport(t)}, renderOpts{output: outputText})
		require.NoError(t, err)
		expected := strings.Join([]string{
			"disk.img: raw file, 100MiB, 512-byte sectors",
			"boot signature 55aa (valid)",
			"SLOT  STATUS  TYPE  NAME                  START  SECTORS  SIZE",
			"0     0x80    0x83  Linux                 2048   65536    32MiB",
			"1     0x00    0x82  Linux swap / Solaris  67584  4096     2MiB",
			"",
		}, "\n")
		if diff := cmp.Diff(expected, buf.String()); diff != "" {
			t.Errorf("mismatched output (-want +got):\n%s", diff)
		}
	})
	t.Run("empty slots and warnings", func(t *testing.T) {
		r := testReport(t)
		r.Size = 0
		r.Warnings = []string{"partitions 0 and 1 overlap"}
		var buf bytes.Buffer
		err := render(&buf, []*Report{r}, renderOpts{output: outputText, showEmpty: true})
		require.NoError(t, err)
		expected := strings.Join([]string{
			"disk.img: raw file, unknown size, 512-byte sectors",
			"boot signature 55aa (valid)",
			"SLOT  STATUS  TYPE  NAME                  START  SECTORS  SIZE",
			"0     0x80    0x83  Linux                 2048   65536    32MiB",
			"1     0x00    0x82  Linux swap / Solaris  67584  4096     2MiB",
			"2     0x00    0x00  Empty                 0      0        0B",
			"3     0x00    0x00  Empty                 0      0        0B",
			"warning: partitions 0 and 1 overlap",
			"",
		}, "\n")
		if diff := cmp.Diff(expected, buf.String()); diff != "" {
			t.Errorf("mismatched output (-want +got):\n%s", diff)
		}
	})
	t.Run("hexdump", func(t *testing.T) {
		var buf bytes.Buffer
		err := render(&buf, []*Report{testReport(t)}, renderOpts{output: outputText, hexdump: true})
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		// header, signature, table of three rows, blank line, then 32 rows of 16 bytes
		if len(lines) != 5+1+32 {
			t.Fatalf("got %d lines instead of %d", len(lines), 5+1+32)
		}
		last := lines[len(lines)-1]
		if !strings.HasPrefix(last, "000001f0 :") || !strings.Contains(last, " 55 aa") {
			t.Errorf("mismatched last hexdump row %q", last)
		}
	})
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, []*Report{testReport(t)}, renderOpts{output: outputJSON})
	require.NoError(t, err)
	var reports []Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 1)
	if len(reports[0].Partitions) != 2 {
		t.Errorf("got %d partitions instead of the 2 in use", len(reports[0].Partitions))
	}
	if reports[0].Partitions[1].TypeName != "Linux swap / Solaris" {
		t.Errorf("mismatched type name %q", reports[0].Partitions[1].TypeName)
	}
}

func TestRenderYAML(t *testing.T) {
	original := testReport(t)
	var buf bytes.Buffer
	err := render(&buf, []*Report{original}, renderOpts{output: outputYAML, showEmpty: true})
	require.NoError(t, err)
	var reports []Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 1)
	if diff := cmp.Diff(original.Partitions, reports[0].Partitions); diff != "" {
		t.Errorf("mismatched partitions (-want +got):\n%s", diff)
	}
}

func TestRenderUnknown(t *testing.T) {
	err := render(&bytes.Buffer{}, nil, renderOpts{output: "xml"})
	if err == nil || err.Error() != `unknown output format "xml"` {
		t.Errorf("mismatched error %v", err)
	}
}

func TestFilterEmptyKeepsOriginal(t *testing.T) {
	r := testReport(t)
	filtered := filterEmpty([]*Report{r}, false)
	if len(filtered[0].Partitions) != 2 {
		t.Errorf("filtered report has %d partitions instead of 2", len(filtered[0].Partitions))
	}
	if len(r.Partitions) != mbr.EntryCount {
		t.Errorf("original report changed to %d partitions", len(r.Partitions))
	}
}
