package main

import (
	"strings"

	"github.com/martinhoefling/goxkcdpwgen/xkcdpwgen"
)

const exportPassphraseWords = 4

// generateExportPassphrase produces the passphrase protecting an encrypted
// export. Word-based so operators can retype it from the sidecar file.
func generateExportPassphrase() string {
	g := xkcdpwgen.NewGenerator()
	g.SetNumWords(exportPassphraseWords)
	g.SetCapitalize(false)
	g.SetDelimiter("-")
	return strings.TrimSpace(g.GeneratePasswordString())
}
