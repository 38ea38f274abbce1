package types

// ScanMode is accepted from callers and stored with the result. The
// scanner does not branch on it.
type ScanMode string

const (
	ScanModeFull ScanMode = "full"
)

func (m ScanMode) String() string {
	return string(m)
}

// ScanModeOrDefault returns ScanModeFull for an empty mode.
func ScanModeOrDefault(mode string) ScanMode {
	if mode == "" {
		return ScanModeFull
	}
	return ScanMode(mode)
}
