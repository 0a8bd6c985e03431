package detector

// Detect exposes the pure detection rule.
func Detect(isTTY bool, ci string) OutputMode {
	return detect(isTTY, ci)
}
