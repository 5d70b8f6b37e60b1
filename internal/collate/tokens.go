package collate

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tiktokenOnce sync.Once
	tiktokenEnc  *tiktoken.Tiktoken
)

// countTiktoken counts BPE tokens with cl100k_base. Loading the encoding can
// fail (it may need to fetch vocabulary data on first use); the metric then
// degrades to character counting rather than failing the collation.
func countTiktoken(text string) int {
	tiktokenOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			slog.Warn("Cannot load tiktoken encoding, falling back to character count.",
				"encoding", tiktoken.MODEL_CL100K_BASE, "error", err)
			return
		}
		tiktokenEnc = enc
	})
	if tiktokenEnc == nil {
		return utf8.RuneCountInString(text)
	}
	return len(tiktokenEnc.Encode(text, nil, nil))
}
