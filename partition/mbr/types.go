package mbr

// Type a partition type code. The core accessors return the raw uint8; Type exists only
// to give well-known codes a name.
type Type byte

// List of well-known MBR partition types.
// See https://en.wikipedia.org/wiki/Partition_type#List_of_partition_IDs
const (
	Empty         Type = 0x00
	Fat12         Type = 0x01
	XenixRoot     Type = 0x02
	XenixUsr      Type = 0x03
	Fat16         Type = 0x04
	ExtendedCHS   Type = 0x05
	Fat16b        Type = 0x06
	NTFS          Type = 0x07
	Fat32CHS      Type = 0x0b
	Fat32LBA      Type = 0x0c
	Fat16bLBA     Type = 0x0e
	ExtendedLBA   Type = 0x0f
	HiddenFat32   Type = 0x1b
	HiddenFat32L  Type = 0x1c
	WinRecovery   Type = 0x27
	Plan9         Type = 0x39
	Minix         Type = 0x81
	LinuxSwap     Type = 0x82
	Linux         Type = 0x83
	Hibernation   Type = 0x84
	LinuxExtended Type = 0x85
	LinuxLVM      Type = 0x8e
	FreeBSD       Type = 0xa5
	OpenBSD       Type = 0xa6
	MacOSX        Type = 0xa8
	NetBSD        Type = 0xa9
	MacOSXBoot    Type = 0xab
	MacOSXHFS     Type = 0xaf
	Solaris       Type = 0xbf
	GPTProtective Type = 0xee
	EFISystem     Type = 0xef
	LinuxRAID     Type = 0xfd
)

var typeNames = map[Type]string{
	Empty:         "Empty",
	Fat12:         "FAT12",
	XenixRoot:     "XENIX root",
	XenixUsr:      "XENIX usr",
	Fat16:         "FAT16 <32M",
	ExtendedCHS:   "Extended",
	Fat16b:        "FAT16",
	NTFS:          "HPFS/NTFS/exFAT",
	Fat32CHS:      "W95 FAT32",
	Fat32LBA:      "W95 FAT32 (LBA)",
	Fat16bLBA:     "W95 FAT16 (LBA)",
	ExtendedLBA:   "W95 Ext'd (LBA)",
	HiddenFat32:   "Hidden W95 FAT32",
	HiddenFat32L:  "Hidden W95 FAT32 (LBA)",
	WinRecovery:   "Hidden NTFS WinRE",
	Plan9:         "Plan 9",
	Minix:         "Minix / old Linux",
	LinuxSwap:     "Linux swap / Solaris",
	Linux:         "Linux",
	Hibernation:   "OS/2 hidden or Intel hibernation",
	LinuxExtended: "Linux extended",
	LinuxLVM:      "Linux LVM",
	FreeBSD:       "FreeBSD",
	OpenBSD:       "OpenBSD",
	MacOSX:        "Darwin UFS",
	NetBSD:        "NetBSD",
	MacOSXBoot:    "Darwin boot",
	MacOSXHFS:     "HFS / HFS+",
	Solaris:       "Solaris",
	GPTProtective: "GPT",
	EFISystem:     "EFI (FAT-12/16/32)",
	LinuxRAID:     "Linux raid autodetect",
}

// TypeName a human-readable name for a partition type code, or "Unknown" if the code is not
// in the table
func TypeName(code uint8) string {
	return Type(code).String()
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}
